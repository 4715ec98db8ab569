package dagset

import (
	"context"
	"sync/atomic"

	"github.com/hupe1980/dagset/core"
)

// IdConvert maps ids to vertex hashes and back. It is the external
// collaborator every StaticSet is bound to; single lookups and batch lookups
// may hit the network, while ContainsVertexIdLocally must answer without a
// round trip.
//
// Implementations must be safe for concurrent use.
type IdConvert interface {
	// VertexName resolves a single id to its vertex hash.
	VertexName(ctx context.Context, id core.Id) (core.Vertex, error)

	// VertexNameBatch resolves ids in one request. It must return exactly
	// one vertex per input id, in input order.
	VertexNameBatch(ctx context.Context, ids []core.Id) ([]core.Vertex, error)

	// ContainsVertexIdLocally reports, per input id, whether the id can be
	// resolved without a remote round trip. One result per input id.
	ContainsVertexIdLocally(ctx context.Context, ids []core.Id) ([]bool, error)

	// VertexIdWithMaxGroup looks up the id assigned to a vertex, considering
	// only groups up to maxGroup. ok is false when the vertex is unknown.
	VertexIdWithMaxGroup(ctx context.Context, v core.Vertex, maxGroup core.Group) (id core.Id, ok bool, err error)

	// MapVersion identifies the id map snapshot this converter serves.
	MapVersion() Version
}

// DagAlgorithm is the opaque graph-algorithm provider handle carried
// alongside a converter so that a combined set can be rebound to the newer
// of two snapshots. The engine never calls into it.
type DagAlgorithm interface{}

// Version identifies a snapshot lineage of an id map. Versions form a
// partial order: two versions are comparable only when they descend from the
// same root, and are then ordered by generation.
//
// The zero Version is the "unversioned" lineage; it compares equal to other
// zero Versions.
type Version struct {
	root uint64
	gen  uint64
}

var versionRoots atomic.Uint64

// NewVersion starts a fresh lineage, incomparable to every existing one.
func NewVersion() Version {
	return Version{root: versionRoots.Add(1)}
}

// Bump returns the next generation of the same lineage.
func (v Version) Bump() Version {
	return Version{root: v.root, gen: v.gen + 1}
}

// Compare orders two versions. ok is false when the versions descend from
// different roots and therefore cannot be compared.
func (v Version) Compare(other Version) (cmp int, ok bool) {
	if v.root != other.root {
		return 0, false
	}
	switch {
	case v.gen < other.gen:
		return -1, true
	case v.gen > other.gen:
		return 1, true
	default:
		return 0, true
	}
}
