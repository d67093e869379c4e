package pcpmeta

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jkter/pcpmeta/errs"
	"github.com/jkter/pcpmeta/format"
	"github.com/jkter/pcpmeta/wire"
)

func TestLoad(t *testing.T) {
	var buf bytes.Buffer
	payload := wire.EncodeDesc(wire.DescRecord{
		Desc:  format.Desc{PMID: 1, Type: 3, Sem: 1},
		Names: []string{"sample.metric"},
	})
	require.NoError(t, wire.WriteRecord(&buf, format.RecordDesc, payload))

	cat, err := Load(&buf, format.LogVersionV3)
	require.NoError(t, err)

	desc, err := cat.LookupDesc(1)
	require.NoError(t, err)
	require.Equal(t, int32(3), desc.Type)
}

func TestLoad_EmptyStream(t *testing.T) {
	_, err := Load(bytes.NewReader(nil), format.LogVersionV3)
	require.ErrorIs(t, err, errs.ErrNoDescriptors)
}
