package rcss

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// definitionCache maps sets of rule nodes to element definitions.
// Sets are hashed by the identity of their nodes; entries within a bucket
// compare the node sets exactly, so colliding hashes never share a
// definition.
//
// The cache is append-only and not safe for concurrent use.
type definitionCache struct {
	buckets map[uint64][]cacheEntry
	size    int
}

type cacheEntry struct {
	nodes []NodeHandle
	def   *ElementDefinition
}

func newDefinitionCache() *definitionCache {
	return &definitionCache{buckets: make(map[uint64][]cacheEntry)}
}

func hashNodes(nodes []NodeHandle) uint64 {
	d := xxhash.New()
	var buf [4]byte
	for _, h := range nodes {
		binary.LittleEndian.PutUint32(buf[:], uint32(h))
		d.Write(buf[:])
	}
	return d.Sum64()
}

// lookup finds the definition for a node set.
func (c *definitionCache) lookup(hash uint64, nodes []NodeHandle) (*ElementDefinition, bool) {
	for _, e := range c.buckets[hash] {
		if sameNodes(e.nodes, nodes) {
			return e.def, true
		}
	}
	return nil, false
}

// insert stores def for a node set. The cache takes over the reference
// def has been created with.
func (c *definitionCache) insert(hash uint64, nodes []NodeHandle, def *ElementDefinition) {
	c.buckets[hash] = append(c.buckets[hash], cacheEntry{nodes: nodes, def: def})
	c.size++
}

// clear releases the cache's references to all definitions.
func (c *definitionCache) clear() {
	for _, bucket := range c.buckets {
		for _, e := range bucket {
			e.def.Release()
		}
	}
	c.buckets = make(map[uint64][]cacheEntry)
	c.size = 0
}

func sameNodes(a, b []NodeHandle) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
