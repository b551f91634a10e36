package catalog

import "testing"

func TestProductCategoryPredicates(t *testing.T) {
	tests := []struct {
		category  string
		mens      bool
		womens    bool
		available bool
	}{
		{"men's clothing", true, false, true},
		{"women's clothing", false, true, true},
		{"jewelery", false, false, false},
		{"Men's Clothing", false, false, false},
		{" men's clothing", false, false, false},
		{"", false, false, false},
	}

	for _, tt := range tests {
		p := &Product{Category: tt.category}
		if got := p.IsMens(); got != tt.mens {
			t.Fatalf("IsMens(%q) = %v, want %v", tt.category, got, tt.mens)
		}
		if got := p.IsWomens(); got != tt.womens {
			t.Fatalf("IsWomens(%q) = %v, want %v", tt.category, got, tt.womens)
		}
		if got := p.Available(); got != tt.available {
			t.Fatalf("Available(%q) = %v, want %v", tt.category, got, tt.available)
		}
	}

	var nilProduct *Product
	if nilProduct.IsMens() || nilProduct.IsWomens() || nilProduct.Available() {
		t.Fatalf("nil product should match no category")
	}
}
