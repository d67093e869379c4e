// Package pcpmeta reads and writes the metadata stream of a Performance
// Co-Pilot archive: metric descriptors, instance domain history, label
// history, and help text.
//
// The catalog package holds the indexed in-memory store and its
// time-scoped query API; the loader package scans an on-disk metadata
// stream into a catalog; the wire package implements the record codec
// both of them share. This package provides thin wrappers for the most
// common flow.
//
// # Loading an archive
//
//	f, _ := os.Open("archive.meta")
//	defer f.Close()
//
//	// Position f past the archive label block, then:
//	cat, err := pcpmeta.Load(f, format.LogVersionV3)
//	if err != nil {
//	    // A partial load is discarded; err is the first failure.
//	}
//
//	desc, _ := cat.LookupDesc(pmid)
//	instances, _ := cat.GetIndom(desc.Indom, nil)
//
// # Point-in-time queries
//
// Instance domains and labels are historied: every record carries a
// timestamp, and the catalog answers "as of" queries against the full
// history:
//
//	ts := format.Timestamp{Sec: 1700000000}
//	instances, _ := cat.GetIndom(indom, &ts)
//	sets, _ := cat.LookupLabel(format.LabelItem, pmid, &ts)
//
// # Writing records
//
// The Put* methods on catalog.Catalog append a record to a writer and
// apply the equivalent in-memory update, so a written catalog matches
// what reloading the stream would produce.
package pcpmeta

import (
	"io"

	"github.com/jkter/pcpmeta/catalog"
	"github.com/jkter/pcpmeta/format"
	"github.com/jkter/pcpmeta/loader"
)

// Load scans a metadata stream positioned past the archive label block
// into a fresh catalog for the given log version. It returns a catalog
// only on a fully clean load.
func Load(r io.Reader, version format.LogVersion, opts ...loader.Option) (*catalog.Catalog, error) {
	return loader.LoadArchive(r, version, nil, opts...)
}
