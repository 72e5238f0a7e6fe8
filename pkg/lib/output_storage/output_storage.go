package output_storage

import (
	"sync"
	"sync/atomic"
)

// node is an element of the append-only list. Readers walk the list through the
// atomic next pointers and never take the writer lock.
type node struct {
	data []byte
	next atomic.Pointer[node]
}

// OutputStorage is the ordered, append-only output buffer of a run or a pipeline
// transcript. Entries keep arrival order. Appends are serialized; reads are
// lock-free and see a consistent prefix of the list, so a running process can
// be inspected while its output is still arriving.
type OutputStorage struct {
	head *node // sentinel, never holds data

	mu   sync.Mutex
	tail *node
}

// NewOutputStorage creates an empty storage.
func NewOutputStorage() *OutputStorage {
	sentinel := &node{}
	return &OutputStorage{
		head: sentinel,
		tail: sentinel,
	}
}

// Append stores data as-is; callers must not mutate the slice afterwards.
func (s *OutputStorage) Append(data []byte) {
	if s == nil {
		return
	}

	n := &node{data: data}

	s.mu.Lock()
	s.tail.next.Store(n)
	s.tail = n
	s.mu.Unlock()
}

// AppendLine stores text followed by a newline.
func (s *OutputStorage) AppendLine(text string) {
	s.Append([]byte(text + "\n"))
}

// ForEach iterates over all stored entries in insertion order until iter returns false.
func (s *OutputStorage) ForEach(iter func([]byte) bool) {
	if s == nil || iter == nil {
		return
	}
	for cur := s.head.next.Load(); cur != nil; cur = cur.next.Load() {
		if !iter(cur.data) {
			return
		}
	}
}

// Bytes concatenates all stored entries.
func (s *OutputStorage) Bytes() []byte {
	total := 0
	s.ForEach(func(b []byte) bool {
		total += len(b)
		return true
	})

	out := make([]byte, 0, total)
	s.ForEach(func(b []byte) bool {
		if len(out)+len(b) > total {
			// entries appended between the two walks are left for the next read
			return false
		}
		out = append(out, b...)
		return true
	})
	return out
}

// String returns all stored entries concatenated into a single string.
func (s *OutputStorage) String() string {
	return string(s.Bytes())
}
