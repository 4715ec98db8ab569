package idmap

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/RoaringBitmap/roaring/v2/roaring64"

	"github.com/hupe1980/dagset"
	"github.com/hupe1980/dagset/core"
)

// ErrIdNotFound is returned when an id has no vertex assigned.
var ErrIdNotFound = errors.New("id not assigned in map")

// MemIdMap is an in-memory implementation of dagset.IdConvert backed by Go
// maps plus a roaring bitmap tracking which ids are resolvable locally.
// Ids outside the bitmap are still resolvable, but only through the batched
// lookup path, mimicking a lazy remote-backed map.
type MemIdMap struct {
	mu       sync.RWMutex
	idToName map[core.Id]core.Vertex
	nameToID map[string]core.Id
	local    *roaring64.Bitmap
	version  dagset.Version
}

var _ dagset.IdConvert = (*MemIdMap)(nil)

// NewMem creates an empty map with a fresh version lineage.
func NewMem() *MemIdMap {
	return &MemIdMap{
		idToName: make(map[core.Id]core.Vertex),
		nameToID: make(map[string]core.Id),
		local:    roaring64.New(),
		version:  dagset.NewVersion(),
	}
}

// Insert assigns a vertex to an id and marks the id locally resolvable.
// Reassigning either side to a different partner is an error.
func (m *MemIdMap) Insert(id core.Id, v core.Vertex) error {
	if err := m.insert(id, v); err != nil {
		return err
	}
	m.mu.Lock()
	m.local.Add(uint64(id))
	m.mu.Unlock()
	return nil
}

// InsertRemote assigns a vertex to an id without marking it locally
// resolvable, so resolving it goes through the batched lookup path.
func (m *MemIdMap) InsertRemote(id core.Id, v core.Vertex) error {
	return m.insert(id, v)
}

func (m *MemIdMap) insert(id core.Id, v core.Vertex) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.idToName[id]; ok && !existing.Equal(v) {
		return fmt.Errorf("id %s already assigned to %s", id, existing)
	}
	if existing, ok := m.nameToID[string(v)]; ok && existing != id {
		return fmt.Errorf("vertex %s already assigned id %s", v, existing)
	}
	m.idToName[id] = v.Clone()
	m.nameToID[string(v)] = id
	m.version = m.version.Bump()
	return nil
}

// MarkLocal marks ids as resolvable without a round trip.
func (m *MemIdMap) MarkLocal(ids ...core.Id) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range ids {
		m.local.Add(uint64(id))
	}
}

// Fork returns a deep copy sharing the version lineage. Inserts into the
// fork advance its generation, so the fork compares newer than the original
// while staying comparable to it.
func (m *MemIdMap) Fork() *MemIdMap {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := &MemIdMap{
		idToName: make(map[core.Id]core.Vertex, len(m.idToName)),
		nameToID: make(map[string]core.Id, len(m.nameToID)),
		local:    m.local.Clone(),
		version:  m.version,
	}
	for id, v := range m.idToName {
		out.idToName[id] = v
	}
	for name, id := range m.nameToID {
		out.nameToID[name] = id
	}
	return out
}

// VertexName resolves a single id.
func (m *MemIdMap) VertexName(_ context.Context, id core.Id) (core.Vertex, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.idToName[id]
	if !ok {
		return nil, fmt.Errorf("id %s: %w", id, ErrIdNotFound)
	}
	return v, nil
}

// VertexNameBatch resolves ids in one pass, one result per input id.
func (m *MemIdMap) VertexNameBatch(_ context.Context, ids []core.Id) ([]core.Vertex, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]core.Vertex, len(ids))
	for i, id := range ids {
		v, ok := m.idToName[id]
		if !ok {
			return nil, fmt.Errorf("id %s: %w", id, ErrIdNotFound)
		}
		out[i] = v
	}
	return out, nil
}

// ContainsVertexIdLocally reports which ids resolve without a round trip.
func (m *MemIdMap) ContainsVertexIdLocally(_ context.Context, ids []core.Id) ([]bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]bool, len(ids))
	for i, id := range ids {
		out[i] = m.local.Contains(uint64(id))
	}
	return out, nil
}

// VertexIdWithMaxGroup looks up the id for a vertex, considering only groups
// up to maxGroup.
func (m *MemIdMap) VertexIdWithMaxGroup(_ context.Context, v core.Vertex, maxGroup core.Group) (core.Id, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.nameToID[string(v)]
	if !ok || id.Group() > maxGroup {
		return 0, false, nil
	}
	return id, true, nil
}

// MapVersion identifies the current snapshot of the map.
func (m *MemIdMap) MapVersion() dagset.Version {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.version
}
