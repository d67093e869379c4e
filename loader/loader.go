// Package loader scans an archive's on-disk metadata stream and
// populates a catalog.Catalog with the descriptors, instance domain
// snapshots, label groups, and help text it finds.
//
// The reader handed to Load must be positioned just past the fixed
// archive label block; the loader consumes records until EOF. On error
// the catalog is left in whatever state the scan had reached, and
// callers should discard it rather than use a partial load.
package loader

import (
	"errors"
	"fmt"
	"io"

	"github.com/jkter/pcpmeta/catalog"
	"github.com/jkter/pcpmeta/errs"
	"github.com/jkter/pcpmeta/format"
	"github.com/jkter/pcpmeta/internal/options"
	"github.com/jkter/pcpmeta/internal/pool"
	"github.com/jkter/pcpmeta/wire"
)

// maxRecordLen bounds the record length the loader will allocate a
// decode buffer for. A header claiming more than this is treated as
// corruption rather than an allocation request.
const maxRecordLen = 64 << 20

// Loader drives a sequential scan of a metadata stream.
type Loader struct {
	strictText bool
	limits     wire.LabelLimits
}

// Option configures a Loader.
type Option = options.Option[*Loader]

// WithStrictText makes malformed TEXT records abort the load instead of
// being skipped. The default keeps the skip-on-malformed behavior that
// existing archives depend on: TEXT records with bad type flags are
// ignored, while malformed LABEL records always abort.
func WithStrictText(strict bool) Option {
	return options.NoError(func(l *Loader) {
		l.strictText = strict
	})
}

// WithMaxLabelJSONLen overrides the maximum JSON blob length accepted
// in one label set.
func WithMaxLabelJSONLen(n int) Option {
	return options.New(func(l *Loader) error {
		if n <= 0 {
			return fmt.Errorf("pcpmeta: max label json length must be positive, got %d", n)
		}
		l.limits.MaxJSONLen = n

		return nil
	})
}

// WithMaxLabels overrides the maximum label count accepted in one label
// set.
func WithMaxLabels(n int) Option {
	return options.New(func(l *Loader) error {
		if n <= 0 {
			return fmt.Errorf("pcpmeta: max labels must be positive, got %d", n)
		}
		l.limits.MaxLabels = n

		return nil
	})
}

// New creates a Loader with the given options applied.
func New(opts ...Option) (*Loader, error) {
	l := &Loader{}
	if err := options.Apply(l, opts...); err != nil {
		return nil, err
	}

	return l, nil
}

// recordVersion maps a record type to the timestamp encoding its
// payload carries. Both V2 and V3 record types can appear while
// scanning, whatever the archive's own version, so the record type is
// authoritative here.
func recordVersion(typ format.RecordType) format.LogVersion {
	if typ == format.RecordIndomV2 || typ == format.RecordLabelV2 {
		return format.LogVersionV2
	}

	return format.LogVersionV3
}

// Load scans r record by record, inserting each decoded record into
// cat. After a clean scan it runs the label duplicate-elimination pass
// and verifies at least one descriptor was seen.
func (l *Loader) Load(r io.Reader, cat *catalog.Catalog) error {
	buf := pool.GetRecordBuffer()
	defer pool.PutRecordBuffer(buf)

	numDescs := 0

	for {
		hdr, err := wire.ReadHeader(r)
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		if hdr.Len < wire.FrameOverhead || hdr.Len > maxRecordLen {
			return fmt.Errorf("%w: record length %d", errs.ErrMalformedRecord, hdr.Len)
		}

		plen := wire.PayloadLen(hdr.Len)
		buf.Grow(plen)
		payload := buf.Bytes()[:plen]
		if _, err := io.ReadFull(r, payload); err != nil {
			return fmt.Errorf("%w: payload read: %v", errs.ErrMalformedRecord, err)
		}

		if err := l.dispatch(cat, hdr.Type, payload, &numDescs); err != nil {
			return err
		}

		trailer, err := wire.ReadTrailer(r)
		if err != nil {
			return err
		}
		if trailer != hdr.Len {
			return fmt.Errorf("%w: trailer length %d != header length %d",
				errs.ErrMalformedRecord, trailer, hdr.Len)
		}
	}

	cat.CheckDupLabels()

	if numDescs == 0 {
		return errs.ErrNoDescriptors
	}

	return nil
}

func (l *Loader) dispatch(cat *catalog.Catalog, typ format.RecordType, payload []byte, numDescs *int) error {
	switch typ {
	case format.RecordDesc:
		rec, err := wire.DecodeDesc(payload)
		if err != nil {
			return err
		}
		*numDescs++
		if err := cat.AddDesc(rec.Desc); err != nil {
			return err
		}
		for _, name := range rec.Names {
			if err := cat.AddName(rec.Desc.PMID, name); err != nil {
				return err
			}
		}

	case format.RecordIndom, format.RecordIndomV2:
		rec, err := wire.DecodeIndom(payload, recordVersion(typ))
		if err != nil {
			return err
		}
		// Records with no instances carry nothing to index.
		if len(rec.Instances) > 0 {
			cat.AddIndom(rec.Indom, rec.Stamp, rec.Instances)
		}

	case format.RecordLabel, format.RecordLabelV2:
		rec, err := wire.DecodeLabel(payload, recordVersion(typ), l.limits)
		if err != nil {
			return err
		}
		cat.AddLabels(rec.Type, rec.Ident, rec.Stamp, rec.Sets)

	case format.RecordText:
		rec, err := wire.DecodeText(payload)
		if errors.Is(err, errs.ErrBadTextType) && !l.strictText {
			return nil
		}
		if err != nil {
			return err
		}
		cat.AddText(rec.Ident, rec.Type, rec.Text)

	default:
		// Unknown record type: the payload bytes were already consumed,
		// and the caller still validates the trailer.
	}

	return nil
}

// LoadArchive is a convenience wrapper: it creates a fresh catalog for
// the given log version, scans r into it, and returns the catalog only
// on a fully clean load.
func LoadArchive(r io.Reader, version format.LogVersion, catOpts []catalog.Option, opts ...Option) (*catalog.Catalog, error) {
	l, err := New(opts...)
	if err != nil {
		return nil, err
	}

	cat, err := catalog.New(version, catOpts...)
	if err != nil {
		return nil, err
	}

	if err := l.Load(r, cat); err != nil {
		return nil, err
	}

	return cat, nil
}
