// Package route maps product page paths to product ids and back.
//
// Three path shapes are understood:
//
//	/                        root, the first product
//	/product/18              legacy numeric form
//	/product/fancy-shirt-18  canonical slug form
//
// Legacy and stale slug paths should be redirected to Canonical once the
// product title is known.
package route

import (
	"errors"
	"strconv"
	"strings"

	"github.com/five82/showcase/internal/slug"
)

// ProductPrefix is the path segment that precedes a product reference.
const ProductPrefix = "/product/"

// ErrNotFound is returned for paths that do not name a product.
var ErrNotFound = errors.New("route not found")

// Kind describes how a path referred to a product.
type Kind int

const (
	KindRoot Kind = iota
	KindLegacy
	KindSlug
)

func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindLegacy:
		return "legacy"
	case KindSlug:
		return "slug"
	default:
		return "unknown"
	}
}

// Ref is a parsed product reference.
type Ref struct {
	Kind Kind
	ID   int
	Path string
}

// Parse resolves a request path to a product reference.
func Parse(path string) (Ref, error) {
	clean := strings.TrimSpace(path)
	if clean == "" || clean == "/" || clean == "/product" || clean == ProductPrefix {
		return Ref{Kind: KindRoot, ID: 1, Path: "/"}, nil
	}
	if !strings.HasPrefix(clean, ProductPrefix) {
		return Ref{}, ErrNotFound
	}
	ref, err := ParseRef(strings.TrimSuffix(strings.TrimPrefix(clean, ProductPrefix), "/"))
	if err != nil {
		return Ref{}, err
	}
	// Keep the requested form so a trailing slash still redirects.
	ref.Path = clean
	return ref, nil
}

// ParseRef resolves the part of a product path after ProductPrefix. It also
// accepts user input such as a bare id or slug.
func ParseRef(ref string) (Ref, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" || strings.Contains(ref, "/") {
		return Ref{}, ErrNotFound
	}
	if isDigits(ref) {
		id, err := strconv.Atoi(ref)
		if err != nil || id < 1 {
			return Ref{}, ErrNotFound
		}
		return Ref{Kind: KindLegacy, ID: id, Path: ProductPrefix + ref}, nil
	}
	id, ok := slug.ExtractID(ref)
	if !ok || id < 1 {
		return Ref{}, ErrNotFound
	}
	return Ref{Kind: KindSlug, ID: id, Path: ProductPrefix + ref}, nil
}

// Canonical returns the slug path for a product.
func Canonical(title string, id int) string {
	return ProductPrefix + slug.WithID(title, id)
}

// Legacy returns the numeric path for a product id.
func Legacy(id int) string {
	return ProductPrefix + strconv.Itoa(id)
}

// NeedsRedirect reports whether a request for r should be redirected to
// canonical. Root requests are served in place.
func (r Ref) NeedsRedirect(canonical string) bool {
	switch r.Kind {
	case KindLegacy:
		return true
	case KindSlug:
		return r.Path != canonical
	default:
		return false
	}
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
