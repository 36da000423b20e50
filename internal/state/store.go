package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/tagview/internal/tags"
)

// CategoryCount is one entry of the category index.
type CategoryCount struct {
	Name  string
	Count int
}

// Snapshot is an immutable view of the tag cache as of one refresh. Readers
// always see either the previous or the next snapshot in full.
type Snapshot struct {
	tags       []tags.Tag
	byName     map[string]int
	categories []CategoryCount
	catIndex   map[string]int

	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int
}

// Len returns the number of cached tags.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.tags)
}

// Get returns the tag stored under name.
func (s *Snapshot) Get(name string) (tags.Tag, bool) {
	if s == nil {
		return tags.Tag{}, false
	}
	i, ok := s.byName[name]
	if !ok {
		return tags.Tag{}, false
	}
	return s.tags[i], true
}

// All returns the cached tags in snapshot order. The slice is a copy.
func (s *Snapshot) All() []tags.Tag {
	if s == nil || len(s.tags) == 0 {
		return nil
	}
	dup := make([]tags.Tag, len(s.tags))
	copy(dup, s.tags)
	return dup
}

// Each calls fn for every tag in snapshot order without copying the slice.
func (s *Snapshot) Each(fn func(tags.Tag)) {
	if s == nil {
		return
	}
	for _, t := range s.tags {
		fn(t)
	}
}

// Categories returns the category index ordered by first appearance.
func (s *Snapshot) Categories() []CategoryCount {
	if s == nil || len(s.categories) == 0 {
		return nil
	}
	dup := make([]CategoryCount, len(s.categories))
	copy(dup, s.categories)
	return dup
}

// CategoryCount returns the number of tags in category, or zero.
func (s *Snapshot) CategoryCount(category string) int {
	if s == nil {
		return 0
	}
	i, ok := s.catIndex[category]
	if !ok {
		return 0
	}
	return s.categories[i].Count
}

// IsOffline returns true when the server has been unreachable for multiple polls.
func (s *Snapshot) IsOffline() bool {
	return s != nil && s.ConsecutiveFailures >= 2
}

// HasData reports whether at least one refresh has succeeded.
func (s *Snapshot) HasData() bool {
	return s != nil && s.byName != nil
}

// Store owns the current snapshot. Replace swaps it wholesale; there is no
// incremental update.
type Store struct {
	mu       sync.RWMutex
	snapshot *Snapshot
}

// Replace installs a new snapshot built from list. Tags absent from list are
// dropped. When a name repeats, the later record wins but keeps the first
// position.
func (s *Store) Replace(list []tags.Tag) {
	next := build(list)
	next.LastUpdated = time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = next
}

// RecordFailure keeps the cached tags and category index but records err.
func (s *Store) RecordFailure(err error) {
	if err == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	next := &Snapshot{}
	if s.snapshot != nil {
		*next = *s.snapshot
	}
	next.LastError = fmt.Errorf("%w", err)
	next.ConsecutiveFailures++
	s.snapshot = next
}

// Snapshot returns the current snapshot. It never returns nil.
func (s *Store) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snapshot == nil {
		return &Snapshot{}
	}
	return s.snapshot
}

func build(list []tags.Tag) *Snapshot {
	snap := &Snapshot{
		tags:     make([]tags.Tag, 0, len(list)),
		byName:   make(map[string]int, len(list)),
		catIndex: make(map[string]int),
	}
	for _, t := range list {
		if i, ok := snap.byName[t.Name]; ok {
			snap.tags[i] = t
			continue
		}
		snap.byName[t.Name] = len(snap.tags)
		snap.tags = append(snap.tags, t)
	}
	for _, t := range snap.tags {
		cat := t.CategoryOrDefault()
		if i, ok := snap.catIndex[cat]; ok {
			snap.categories[i].Count++
			continue
		}
		snap.catIndex[cat] = len(snap.categories)
		snap.categories = append(snap.categories, CategoryCount{Name: cat, Count: 1})
	}
	return snap
}
