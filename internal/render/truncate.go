package render

import (
	"strings"

	"github.com/rivo/uniseg"
)

const (
	// TitleLimit is the longest title shown verbatim
	TitleLimit = 30
	// ArtistLimit is the longest artist shown verbatim
	ArtistLimit = 35

	ellipsis = "..."
)

// Truncate shortens s to limit user-perceived characters, replacing the tail
// with an ellipsis. Strings within the limit are returned unchanged.
// Grapheme clusters are never split.
func Truncate(s string, limit int) string {
	if uniseg.GraphemeClusterCount(s) <= limit {
		return s
	}

	keep := max(limit-len(ellipsis), 0)

	var b strings.Builder
	g := uniseg.NewGraphemes(s)
	for i := 0; i < keep && g.Next(); i++ {
		b.WriteString(g.Str())
	}
	b.WriteString(ellipsis)
	return b.String()
}
