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
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/consensys/go-boxsolve/pkg/smt"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS answers (
	key TEXT PRIMARY KEY,
	backend TEXT NOT NULL,
	answer TEXT NOT NULL,
	created_at INTEGER NOT NULL
)`

// Store is a persistent cache of solver answers, held in a SQLite database.
// Answers are keyed by a digest of the backend and query text, hence the same
// database can be shared between problems and backends.
type Store struct {
	sqlDB *sql.DB
}

// Open opens (or creates) an answer store at a given path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	//
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	//
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	} else if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	} else if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	//
	return &Store{sqlDB}, nil
}

// Close releases the SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	//
	return s.sqlDB.Close()
}

// Lookup the answer recorded against a given key.
func (s *Store) Lookup(ctx context.Context, key string) (smt.Answer, bool, error) {
	var text string
	//
	row := s.sqlDB.QueryRowContext(ctx, `SELECT answer FROM answers WHERE key = ?`, key)
	//
	if err := row.Scan(&text); errors.Is(err, sql.ErrNoRows) {
		return smt.Unknown, false, nil
	} else if err != nil {
		return smt.Unknown, false, fmt.Errorf("lookup answer: %w", err)
	}
	//
	answer, err := smt.ParseAnswer([]byte(text))
	//
	if err != nil {
		return smt.Unknown, false, fmt.Errorf("corrupt answer for %s: %w", key, err)
	}
	//
	return answer, true, nil
}

// Record the answer for a given key, replacing any existing entry.
func (s *Store) Record(ctx context.Context, key string, backend string, answer smt.Answer) error {
	if answer == smt.Unknown {
		return fmt.Errorf("cannot record unknown answer")
	}
	//
	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO answers (key, backend, answer, created_at) VALUES (?, ?, ?, ?)
ON CONFLICT(key) DO UPDATE SET backend = excluded.backend, answer = excluded.answer, created_at = excluded.created_at
`,
		key,
		backend,
		answer.String(),
		time.Now().UTC().UnixMilli(),
	)
	//
	if err != nil {
		return fmt.Errorf("record answer: %w", err)
	}
	//
	return nil
}

// Count returns the number of answers recorded.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	//
	if err := s.sqlDB.QueryRowContext(ctx, `SELECT COUNT(*) FROM answers`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count answers: %w", err)
	}
	//
	return n, nil
}
