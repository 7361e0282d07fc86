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
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"github.com/consensys/go-boxsolve/pkg/smt"
	log "github.com/sirupsen/logrus"
)

// AnswerStore persists answers across runs.
type AnswerStore interface {
	// Lookup the answer recorded for a given key, if any.
	Lookup(ctx context.Context, key string) (smt.Answer, bool, error)
	// Record the answer for a given key.
	Record(ctx context.Context, key string, backend string, answer smt.Answer) error
}

// Memo is a procedure which remembers the answers given by another.  Queries
// are identified by the name of the underlying procedure and their exact text.
// Only definite answers are remembered, since an unknown answer (e.g. due to a
// timeout) may be resolved by asking again.  Answers are held in memory and,
// optionally, in a persistent store.  Errors from the store are logged but
// otherwise ignored.
type Memo struct {
	inner Procedure
	store AnswerStore
	mux   sync.Mutex
	cache map[string]smt.Answer
	// Number of queries answered from memory or the store.
	hits uint64
}

// NOTE: This is used for compile time type checking if the given type
// satisfies the given interface.
var _ Procedure = (*Memo)(nil)

// NewMemo wraps a given procedure with memoisation.  The store may be nil.
func NewMemo(inner Procedure, store AnswerStore) *Memo {
	return &Memo{inner: inner, store: store, cache: make(map[string]smt.Answer)}
}

// Name returns the name of the underlying procedure.
func (p *Memo) Name() string {
	return p.inner.Name()
}

// Hits returns the number of queries answered without consulting the
// underlying procedure.
func (p *Memo) Hits() uint64 {
	p.mux.Lock()
	defer p.mux.Unlock()
	//
	return p.hits
}

// Check answers a given query, reusing a previous answer where possible.
func (p *Memo) Check(ctx context.Context, req Request) (smt.Answer, error) {
	key := Key(p.inner.Name(), req.Text)
	//
	if answer, ok := p.lookup(ctx, key); ok {
		return answer, nil
	}
	//
	answer, err := p.inner.Check(ctx, req)
	//
	if err != nil || answer == smt.Unknown {
		return answer, err
	}
	//
	p.mux.Lock()
	p.cache[key] = answer
	p.mux.Unlock()
	//
	if p.store != nil {
		if serr := p.store.Record(ctx, key, p.inner.Name(), answer); serr != nil {
			log.Warnf("cannot record answer: %v", serr)
		}
	}
	//
	return answer, nil
}

func (p *Memo) lookup(ctx context.Context, key string) (smt.Answer, bool) {
	p.mux.Lock()
	answer, ok := p.cache[key]
	p.mux.Unlock()
	//
	if !ok && p.store != nil {
		var err error
		//
		if answer, ok, err = p.store.Lookup(ctx, key); err != nil {
			log.Warnf("cannot lookup answer: %v", err)
		}
	}
	//
	if ok {
		p.mux.Lock()
		p.cache[key] = answer
		p.hits++
		p.mux.Unlock()
	}
	//
	return answer, ok
}

// Key computes the cache key identifying a query for a given procedure.
func Key(backend string, text string) string {
	hash := sha256.New()
	hash.Write([]byte(backend))
	hash.Write([]byte{0})
	hash.Write([]byte(text))
	//
	return hex.EncodeToString(hash.Sum(nil))
}
