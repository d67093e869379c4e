// Package catalog implements the in-memory archive metadata catalog:
// metric descriptors, instance domain history, label history, and help
// text, indexed for time-scoped lookups.
//
// A Catalog is populated either by the loader package scanning an
// archive's metadata stream, or incrementally through the Put* writers
// which append a record to an archive and apply the equivalent
// in-memory update. It is safe for concurrent use: one writer at a
// time, any number of readers.
package catalog

import (
	"sync"

	"github.com/jkter/pcpmeta/format"
	"github.com/jkter/pcpmeta/internal/options"
	"github.com/jkter/pcpmeta/pmns"
)

// InsertResult reports the outcome of an instance domain insert.
//
// InsertDuplicate is not an error: it signals that an identical
// snapshot already existed at the same timestamp, the new one was
// discarded, and the caller retains ownership of whatever backing
// storage it passed in.
type InsertResult int

const (
	// InsertOK means the snapshot was added to the history chain.
	InsertOK InsertResult = iota
	// InsertDuplicate means an identical snapshot already existed at
	// the same timestamp; the chain is unchanged except that the
	// existing snapshot moved to the head of its time slot.
	InsertDuplicate
)

func (r InsertResult) String() string {
	if r == InsertDuplicate {
		return "duplicate"
	}

	return "ok"
}

// unionHashThreshold is the snapshot size above which GetIndomUnion
// switches from linear dedup to a hashed instance set.
const unionHashThreshold = 16

// Catalog is the indexed metadata store for one archive context.
type Catalog struct {
	mu      sync.RWMutex
	version format.LogVersion
	names   pmns.Tree

	descs   map[uint32]format.Desc
	descIDs []uint32

	indoms map[uint32][]*indomSnapshot
	labels map[uint32]map[uint32][]*labelGroup
	texts  map[uint32]map[uint32]string

	unionThreshold int
}

// Option configures a Catalog.
type Option = options.Option[*Catalog]

// WithPMNS supplies the namespace tree metric names are inserted into.
// The default is a fresh pmns.SimpleTree.
func WithPMNS(tree pmns.Tree) Option {
	return options.NoError(func(c *Catalog) {
		c.names = tree
	})
}

// WithUnionHashThreshold overrides the snapshot size above which
// GetIndomUnion uses a hashed scratch set instead of a linear scan.
func WithUnionHashThreshold(n int) Option {
	return options.NoError(func(c *Catalog) {
		c.unionThreshold = n
	})
}

// New creates an empty Catalog for an archive of the given log version.
// The version selects the wire encoding the Put* writers emit.
func New(version format.LogVersion, opts ...Option) (*Catalog, error) {
	c := &Catalog{
		version:        version,
		descs:          make(map[uint32]format.Desc),
		indoms:         make(map[uint32][]*indomSnapshot),
		labels:         make(map[uint32]map[uint32][]*labelGroup),
		texts:          make(map[uint32]map[uint32]string),
		unionThreshold: unionHashThreshold,
	}

	if err := options.Apply(c, opts...); err != nil {
		return nil, err
	}

	if c.names == nil {
		c.names = pmns.NewSimpleTree()
	}

	return c, nil
}

// Version returns the log version the catalog was created with.
func (c *Catalog) Version() format.LogVersion {
	return c.version
}

// PMNS returns the namespace tree names are inserted into.
func (c *Catalog) PMNS() pmns.Tree {
	return c.names
}
