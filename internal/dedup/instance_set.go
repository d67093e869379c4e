// Package dedup provides a per-call scratch structure for deduplicating
// instances by id across many snapshots of one instance domain.
//
// An InstanceSet is created fresh by the caller for the duration of one
// Catalog.GetIndomUnion call and discarded afterward, so there is no
// shared mutable state for concurrent queries to race on.
package dedup

import "github.com/cespare/xxhash/v2"

// InstanceSet tracks instance ids seen so far during a union scan,
// preserving the name first seen for each id. The hash only selects a
// bucket; membership is always decided by comparing the stored ids, so
// colliding ids chain within their bucket instead of shadowing each
// other.
//
// Small instance domains (a handful of instances per snapshot) are
// better served by a linear scan over a slice; InstanceSet is meant for
// the larger case where a hash lookup beats a linear scan.
type InstanceSet struct {
	buckets map[uint64][]instanceEntry
	n       int
}

type instanceEntry struct {
	id   int32
	name string
}

// NewInstanceSet creates an empty InstanceSet sized for capacity
// instances.
func NewInstanceSet(capacity int) *InstanceSet {
	return &InstanceSet{buckets: make(map[uint64][]instanceEntry, capacity)}
}

func bucketKey(id int32) uint64 {
	var b [4]byte
	b[0] = byte(id)
	b[1] = byte(id >> 8)
	b[2] = byte(id >> 16)
	b[3] = byte(id >> 24)

	return xxhash.Sum64(b[:])
}

// AddIfAbsent records (id, name) if id has not been seen before, and
// reports whether it was newly added. The first-seen name for an id
// wins on subsequent calls with the same id.
func (s *InstanceSet) AddIfAbsent(id int32, name string) bool {
	key := bucketKey(id)
	for _, e := range s.buckets[key] {
		if e.id == id {
			return false
		}
	}

	s.buckets[key] = append(s.buckets[key], instanceEntry{id: id, name: name})
	s.n++

	return true
}

// Len returns the number of distinct instance ids recorded so far.
func (s *InstanceSet) Len() int { return s.n }

// Instances returns the recorded (id, name) pairs. The order is
// unspecified; callers that need a stable order should sort the result.
func (s *InstanceSet) Instances() (ids []int32, names []string) {
	ids = make([]int32, 0, s.n)
	names = make([]string, 0, s.n)
	for _, bucket := range s.buckets {
		for _, e := range bucket {
			ids = append(ids, e.id)
			names = append(names, e.name)
		}
	}

	return ids, names
}
