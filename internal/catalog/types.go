package catalog

const (
	categoryMens   = "men's clothing"
	categoryWomens = "women's clothing"
)

// Product mirrors the payload returned by /products/{id}.
type Product struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Rating      *Rating `json:"rating,omitempty"`
}

// Rating is the optional aggregate review score attached to a product.
type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// IsMens reports whether the product belongs to the men's clothing category.
func (p *Product) IsMens() bool {
	return p != nil && p.Category == categoryMens
}

// IsWomens reports whether the product belongs to the women's clothing category.
func (p *Product) IsWomens() bool {
	return p != nil && p.Category == categoryWomens
}

// Available reports whether the product is part of the clothing range the
// storefront sells. Other categories are shown but marked unavailable.
func (p *Product) Available() bool {
	return p.IsMens() || p.IsWomens()
}
