package blobstore

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
)

type memoryEntry struct {
	data       []byte
	generation uint64
}

// MemoryStore keeps index blobs in process memory. It is safe for concurrent
// use and mostly serves tests and small embedded indexes.
//
// Like the remote stores, a blob handle is pinned to the generation it was
// opened on: once the name is overwritten or deleted, reads through the old
// handle fail with ErrChanged.
type MemoryStore struct {
	mu         sync.RWMutex
	blobs      map[string]memoryEntry
	generation uint64
}

// NewMemoryStore creates an empty in-memory blob store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		blobs: make(map[string]memoryEntry),
	}
}

// Open opens a blob for reading. Memory blobs are not Mappable, so loaders
// exercise their ranged-read path against them.
func (m *MemoryStore) Open(_ context.Context, name string) (Blob, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.blobs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return &memoryBlob{store: m, name: name, data: e.data, generation: e.generation}, nil
}

// Put stores a private copy of data under name.
func (m *MemoryStore) Put(_ context.Context, name string, data []byte) error {
	copied := make([]byte, len(data))
	copy(copied, data)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.generation++
	m.blobs[name] = memoryEntry{data: copied, generation: m.generation}
	return nil
}

// Delete removes name. Deleting a missing blob is not an error.
func (m *MemoryStore) Delete(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.blobs, name)
	return nil
}

// List returns the sorted names of all blobs with the given prefix.
func (m *MemoryStore) List(_ context.Context, prefix string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var names []string
	for name := range m.blobs {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (m *MemoryStore) current(name string, generation uint64) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.blobs[name]
	return ok && e.generation == generation
}

type memoryBlob struct {
	store      *MemoryStore
	name       string
	data       []byte
	generation uint64
}

func (b *memoryBlob) ReadAt(_ context.Context, p []byte, off int64) (int, error) {
	if !b.store.current(b.name, b.generation) {
		return 0, fmt.Errorf("%w: %s", ErrChanged, b.name)
	}
	if off < 0 || off >= int64(len(b.data)) {
		return 0, io.EOF
	}
	n := copy(p, b.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (b *memoryBlob) Close() error {
	return nil
}

func (b *memoryBlob) Size() int64 {
	return int64(len(b.data))
}
