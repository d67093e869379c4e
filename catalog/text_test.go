package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jkter/pcpmeta/errs"
	"github.com/jkter/pcpmeta/format"
)

func TestAddText_LatestWins(t *testing.T) {
	cat := newTestCatalog(t)
	typ := format.TextHelp | format.TextPMID

	cat.AddText(9, typ, "old")
	cat.AddText(9, typ, "new")

	text, err := cat.LookupText(9, typ)
	require.NoError(t, err)
	require.Equal(t, "new", text)

	// Identical re-insert is a no-op.
	cat.AddText(9, typ, "new")
	text, err = cat.LookupText(9, typ)
	require.NoError(t, err)
	require.Equal(t, "new", text)
}

func TestAddText_KeyedByType(t *testing.T) {
	cat := newTestCatalog(t)

	cat.AddText(9, format.TextHelp|format.TextPMID, "full help")
	cat.AddText(9, format.TextOneline|format.TextPMID, "oneline")

	text, err := cat.LookupText(9, format.TextHelp|format.TextPMID)
	require.NoError(t, err)
	require.Equal(t, "full help", text)

	text, err = cat.LookupText(9, format.TextOneline|format.TextPMID)
	require.NoError(t, err)
	require.Equal(t, "oneline", text)
}

func TestLookupText_DirectBitMasked(t *testing.T) {
	cat := newTestCatalog(t)
	typ := format.TextHelp | format.TextPMID

	cat.AddText(9, typ, "help")

	text, err := cat.LookupText(9, typ|format.TextDirect)
	require.NoError(t, err)
	require.Equal(t, "help", text)
}

func TestLookupText_Miss(t *testing.T) {
	cat := newTestCatalog(t)

	_, err := cat.LookupText(9, format.TextHelp|format.TextPMID)
	require.ErrorIs(t, err, errs.ErrNoText)

	cat.AddText(9, format.TextHelp|format.TextPMID, "help")
	_, err = cat.LookupText(10, format.TextHelp|format.TextPMID)
	require.ErrorIs(t, err, errs.ErrNoText)
}
