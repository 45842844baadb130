// Package store keeps the per-submission results of one run.
package store

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/programme-lv/batchjudge/api"
	"github.com/puzpuzpuz/xsync/v3"
)

// ErrFrozen is returned by writes after the run finished.
var ErrFrozen = errors.New("result store is frozen")

// Store maps (contestant, problem) to the latest result. Each key is
// written only by the worker that owns the job, so writes never race on
// the same key; readers may take snapshots at any time.
type Store struct {
	entries *xsync.MapOf[api.SubmissionKey, api.SubmissionResult]
	order   []api.SubmissionKey
	frozen  atomic.Bool
}

// New creates a store with every key Pending. Duplicate keys share one
// entry and keep the position of their first occurrence.
func New(keys []api.SubmissionKey) *Store {
	s := &Store{entries: xsync.NewMapOf[api.SubmissionKey, api.SubmissionResult]()}
	for _, key := range keys {
		if _, loaded := s.entries.LoadOrStore(key, api.NewPendingResult(key)); !loaded {
			s.order = append(s.order, key)
		}
	}
	return s
}

// Put replaces the entry of res.Key.
func (s *Store) Put(res api.SubmissionResult) error {
	if s.frozen.Load() {
		return ErrFrozen
	}
	if _, ok := s.entries.Load(res.Key); !ok {
		return fmt.Errorf("unknown submission %s", res.Key)
	}
	s.entries.Store(res.Key, res)
	return nil
}

func (s *Store) Get(key api.SubmissionKey) (api.SubmissionResult, bool) {
	return s.entries.Load(key)
}

// Snapshot copies all entries.
func (s *Store) Snapshot() map[api.SubmissionKey]api.SubmissionResult {
	snap := make(map[api.SubmissionKey]api.SubmissionResult, s.entries.Size())
	s.entries.Range(func(key api.SubmissionKey, res api.SubmissionResult) bool {
		snap[key] = res
		return true
	})
	return snap
}

// Results lists entries in job arrival order.
func (s *Store) Results() []api.SubmissionResult {
	res := make([]api.SubmissionResult, 0, len(s.order))
	for _, key := range s.order {
		if r, ok := s.entries.Load(key); ok {
			res = append(res, r)
		}
	}
	return res
}

func (s *Store) Len() int {
	return len(s.order)
}

// Freeze makes the store read-only.
func (s *Store) Freeze() {
	s.frozen.Store(true)
}

func (s *Store) Frozen() bool {
	return s.frozen.Load()
}
