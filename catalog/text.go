package catalog

import (
	"github.com/jkter/pcpmeta/errs"
	"github.com/jkter/pcpmeta/format"
)

// AddText records a help or oneline text string for a (type, ident)
// pair. Only one string per pair is retained: an insert with different
// text replaces the stored value, tolerating corrections made over the
// life of an archive, and an identical re-insert is a no-op. The DIRECT
// modifier bit is masked off the type before it is used as a key.
func (c *Catalog) AddText(ident, typ uint32, text string) {
	typ &^= format.TextDirect

	c.mu.Lock()
	defer c.mu.Unlock()

	byIdent, ok := c.texts[typ]
	if !ok {
		byIdent = make(map[uint32]string)
		c.texts[typ] = byIdent
	}

	byIdent[ident] = text
}

// LookupText returns the help or oneline text recorded for
// (type, ident), or errs.ErrNoText.
func (c *Catalog) LookupText(ident, typ uint32) (string, error) {
	typ &^= format.TextDirect

	c.mu.RLock()
	defer c.mu.RUnlock()

	byIdent, ok := c.texts[typ]
	if !ok {
		return "", errs.ErrNoText
	}

	text, ok := byIdent[ident]
	if !ok {
		return "", errs.ErrNoText
	}

	return text, nil
}
