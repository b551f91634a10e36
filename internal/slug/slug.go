// Package slug builds stable, reversible URL tokens from product titles.
//
// A slug is the normalized title followed by "-<id>", for example
// "mens-cotton-jacket-3". The trailing id makes every slug unique and lets
// callers recover the product id without a catalog lookup.
package slug

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// U+0300..U+036F, the combining diacritical marks NFKD splits off.
	combiningMarks = runes.In(&unicode.RangeTable{
		R16: []unicode.Range16{{Lo: 0x0300, Hi: 0x036f, Stride: 1}},
	})
	nonAlnumRun = regexp.MustCompile(`[^a-z0-9]+`)
	hyphenRun   = regexp.MustCompile(`-{2,}`)
	idSuffix    = regexp.MustCompile(`-(\d+)$`)
)

// Slugify folds text into lowercase ASCII words joined by single hyphens.
// Accented letters keep their base letter; everything else outside [a-z0-9]
// becomes a separator.
func Slugify(text string) string {
	folded, _, _ := transform.String(transform.Chain(norm.NFKD, runes.Remove(combiningMarks)), text)
	s := strings.ToLower(folded)
	s = nonAlnumRun.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	return hyphenRun.ReplaceAllString(s, "-")
}

// WithID returns the slug for a product: the slugified title (or the id when
// the title yields nothing) followed by "-<id>".
func WithID(title string, id int) string {
	idText := strconv.Itoa(id)
	base := Slugify(title)
	if base == "" {
		base = Slugify(idText)
	}
	return base + "-" + idText
}

// ExtractID returns the trailing "-<digits>" id of s. It reports false when
// there is no such suffix or the number does not fit in an int.
func ExtractID(s string) (int, bool) {
	m := idSuffix.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	id, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return id, true
}
