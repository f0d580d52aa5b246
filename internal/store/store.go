/*
Copyright 2025 Bankview Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package store is the durable local key-value state behind the session:
// the bearer token, the cached user profile and the selected-account
// pointer. It survives process restarts and is cleared on logout.
package store

import (
	"database/sql"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

// Keys used by the session layer. They match the storage schema of the
// hosted client so the two remain interchangeable.
const (
	KeyToken           = "token"
	KeyUser            = "user"
	KeySelectedAccount = "selectedAccountNumber"
)

// Store is a durable string KV on SQLite. All operations hold an internal
// mutex: writers are serialized and readers always observe the latest
// completed write.
type Store struct {
	mu sync.Mutex
	db *sql.DB
}

// Open opens (or creates) the backing database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "open local store")
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS kv (key TEXT PRIMARY KEY, value TEXT NOT NULL)`)
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "init local store schema")
	}

	return &Store{db: db}, nil
}

// Put stores value under key, replacing any previous value.
func (s *Store) Put(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	return errors.Wrapf(err, "put %q", key)
}

// PutAll stores every pair in a single transaction, so a credential and its
// cached user land together or not at all.
func (s *Store) PutAll(pairs map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return errors.Wrap(err, "begin put")
	}
	for key, value := range pairs {
		if _, err := tx.Exec(`INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value); err != nil {
			_ = tx.Rollback()
			return errors.Wrapf(err, "put %q", key)
		}
	}
	return errors.Wrap(tx.Commit(), "commit put")
}

// Get returns the value under key and whether it was present.
func (s *Store) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrapf(err, "get %q", key)
	}
	return value, true, nil
}

// Delete removes the given keys. Missing keys are not an error.
func (s *Store) Delete(keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return errors.Wrap(err, "begin delete")
	}
	for _, key := range keys {
		if _, err := tx.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
			_ = tx.Rollback()
			return errors.Wrapf(err, "delete %q", key)
		}
	}
	return errors.Wrap(tx.Commit(), "commit delete")
}

// ClearCredentials drops the bearer token and the cached user in one step.
// Subsequent transport calls go out unauthenticated.
func (s *Store) ClearCredentials() error {
	return s.Delete(KeyToken, KeyUser)
}

func (s *Store) Close() error {
	return s.db.Close()
}
