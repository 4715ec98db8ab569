package core

import (
	"encoding/hex"
	"fmt"
)

// Id is a dense, monotonically allocated identifier for a vertex in the
// commit graph. Ids are totally ordered and allocated so that a parent's
// id is always smaller than its descendants' ids within a group.
// The top GroupBits bits encode the allocation Group.
type Id uint64

// Group is the allocation group encoded in the high bits of an Id.
// Lower groups are more stable: ids in GroupMaster never move, while
// GroupNonMaster and GroupVirtual ids may be reassigned.
type Group uint8

// GroupBits is the number of high Id bits reserved for the Group.
const GroupBits = 8

const (
	// GroupMaster holds ids of commits reachable from stable heads.
	GroupMaster Group = 0
	// GroupNonMaster holds ids of draft commits.
	GroupNonMaster Group = 1
	// GroupVirtual holds ids of ephemeral vertexes (working copy, null).
	GroupVirtual Group = 2

	// GroupMax is the highest valid group.
	GroupMax = GroupVirtual
)

// MinId is the smallest valid Id.
const MinId Id = 0

// MaxId is the largest valid Id (the last id of the highest group).
const MaxId = Id(GroupMax+1)<<(64-GroupBits) - 1

// Group returns the allocation group the id belongs to.
func (i Id) Group() Group {
	return Group(i >> (64 - GroupBits))
}

// MinId returns the first id of the group.
func (g Group) MinId() Id {
	return Id(g) << (64 - GroupBits)
}

// MaxId returns the last id of the group.
func (g Group) MaxId() Id {
	return Id(g+1)<<(64-GroupBits) - 1
}

// String formats master ids as plain numbers and prefixes other groups
// with a letter ("N" for non-master, "V" for virtual).
func (i Id) String() string {
	g := i.Group()
	switch g {
	case GroupMaster:
		return fmt.Sprintf("%d", uint64(i))
	case GroupNonMaster:
		return fmt.Sprintf("N%d", uint64(i-g.MinId()))
	default:
		return fmt.Sprintf("V%d", uint64(i-g.MinId()))
	}
}

// Vertex is an opaque commit identifier (typically a hash digest).
// The engine never interprets its bytes, only maps it to and from Ids.
type Vertex []byte

// VertexFromHex decodes a hex string into a Vertex.
func VertexFromHex(s string) (Vertex, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid vertex hex: %w", err)
	}
	return Vertex(b), nil
}

// String returns the hex form of the vertex.
func (v Vertex) String() string {
	return hex.EncodeToString(v)
}

// Equal reports whether two vertexes have identical bytes.
func (v Vertex) Equal(other Vertex) bool {
	return string(v) == string(other)
}

// Clone returns an independent copy of the vertex bytes.
func (v Vertex) Clone() Vertex {
	if v == nil {
		return nil
	}
	out := make(Vertex, len(v))
	copy(out, v)
	return out
}
