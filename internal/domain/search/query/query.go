// Package query holds the per-invocation search context: the raw query,
// its derived tokens and stems, and the optional user location.
package query

import (
	"strings"

	"github.com/glowgrid/spadex/internal/domain/geo"
	"github.com/glowgrid/spadex/internal/domain/text"
)

// Context is an ephemeral, per-search query context. It is a pure
// derivation of its inputs; construction never fails.
type Context struct {
	raw         string
	tokens      []string
	stems       []string
	location    geo.Point
	hasLocation bool
}

// New derives a Context from a raw query and an optional user location.
// Whitespace-only queries produce no tokens. An invalid location is
// treated as absent, which disables distance scoring and sorting.
func New(raw string, location *geo.Point) Context {
	c := Context{raw: strings.TrimSpace(raw)}
	c.tokens = text.Normalize(raw)
	c.stems = text.Stems(c.tokens)
	if location != nil && location.Valid() {
		c.location = *location
		c.hasLocation = true
	}
	return c
}

// Raw returns the trimmed query string.
func (c *Context) Raw() string { return c.raw }

// Tokens returns the lowercased query tokens.
func (c *Context) Tokens() []string { return c.tokens }

// Stems returns the stem of each token, index-aligned with Tokens.
func (c *Context) Stems() []string { return c.stems }

// HasQuery reports whether the query produced any tokens.
func (c *Context) HasQuery() bool { return len(c.tokens) > 0 }

// Location returns the user coordinate, if granted and valid.
func (c *Context) Location() (geo.Point, bool) { return c.location, c.hasLocation }
