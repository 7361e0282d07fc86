// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package solver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/consensys/go-boxsolve/pkg/smt"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Dump is a procedure which writes every query passed to another procedure,
// along with its outcome, into a directory.  Each query is written to its own
// file, named by a random identifier, such that it can be replayed directly
// with a solver.  The outcome is appended as a trailing comment.
type Dump struct {
	inner Procedure
	dir   string
}

// NOTE: This is used for compile time type checking if the given type
// satisfies the given interface.
var _ Procedure = (*Dump)(nil)

// NewDump wraps a given procedure such that queries are written into a given
// directory, which is created if it does not already exist.
func NewDump(inner Procedure, dir string) (*Dump, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create dump directory: %w", err)
	}
	//
	return &Dump{inner, dir}, nil
}

// Name returns the name of the underlying procedure.
func (p *Dump) Name() string {
	return p.inner.Name()
}

// Check answers a given query, writing it (and its outcome) to disk.  Failure to
// write the file is logged, but does not affect the answer.
func (p *Dump) Check(ctx context.Context, req Request) (smt.Answer, error) {
	answer, err := p.inner.Check(ctx, req)
	//
	var builder strings.Builder
	//
	fmt.Fprintf(&builder, "; backend: %s\n", p.inner.Name())
	builder.WriteString(req.Text)
	//
	if err != nil {
		fmt.Fprintf(&builder, "; error: %s\n", strings.ReplaceAll(err.Error(), "\n", " "))
	} else {
		fmt.Fprintf(&builder, "; answer: %s\n", answer)
	}
	//
	filename := filepath.Join(p.dir, uuid.NewString()+".smt2")
	//
	if werr := os.WriteFile(filename, []byte(builder.String()), 0o644); werr != nil {
		log.Warnf("cannot dump query: %v", werr)
	} else {
		log.Debugf("dumped query to %s", filename)
	}
	//
	return answer, err
}
