package slug

import (
	"strconv"
	"testing"
)

var titles = []string{
	"",
	"   ",
	"Fjallraven - Foldsack No. 1 Backpack, Fits 15 Laptops",
	"Mens Casual Premium Slim Fit T-Shirts ",
	"John Hardy Women's Legends Naga Gold & Silver Dragon Station Chain Bracelet",
	"Crème brûlée Ñandú Façade",
	"WD 2TB Elements Portable External Hard Drive - USB 3.0 ",
	"iPhone 12 Pro",
	"Model 3000x",
	"---",
	"日本語のタイトル",
	"ﬁne ｆｕｌｌｗｉｄｔｈ",
	"99",
}

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Mens Casual Premium Slim Fit T-Shirts ", "mens-casual-premium-slim-fit-t-shirts"},
		{"Crème brûlée", "creme-brulee"},
		{"  --Hello,,  World!!--  ", "hello-world"},
		{"Fjallraven - Foldsack No. 1", "fjallraven-foldsack-no-1"},
		{"ﬁne ｆｕｌｌ", "fine-full"},
		{"日本語", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Fatalf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSlugify_Idempotent(t *testing.T) {
	for _, title := range titles {
		once := Slugify(title)
		if twice := Slugify(once); twice != once {
			t.Fatalf("Slugify not idempotent for %q: %q then %q", title, once, twice)
		}
	}
}

func TestWithID(t *testing.T) {
	cases := []struct {
		title string
		id    int
		want  string
	}{
		{"Mens Cotton Jacket", 3, "mens-cotton-jacket-3"},
		{"", 18, "18-18"},
		{"!!!", 7, "7-7"},
		{"iPhone 12 Pro", 4, "iphone-12-pro-4"},
	}
	for _, tc := range cases {
		if got := WithID(tc.title, tc.id); got != tc.want {
			t.Fatalf("WithID(%q, %d) = %q, want %q", tc.title, tc.id, got, tc.want)
		}
	}
}

func TestExtractID_RoundTrip(t *testing.T) {
	for _, title := range titles {
		for _, id := range []int{1, 2, 9, 10, 20, 123456} {
			s := WithID(title, id)
			got, ok := ExtractID(s)
			if !ok || got != id {
				t.Fatalf("ExtractID(WithID(%q, %d)) = %d, %v; slug %q", title, id, got, ok, s)
			}
		}
	}
}

func TestExtractID(t *testing.T) {
	cases := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"mens-cotton-jacket-3", 3, true},
		{"model-3000x-12", 12, true},
		{"model-3000x", 0, false},
		{"jacket", 0, false},
		{"18", 0, false},
		{"jacket-", 0, false},
		{"jacket-99999999999999999999999", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, ok := ExtractID(tc.in)
		if got != tc.want || ok != tc.wantOK {
			t.Fatalf("ExtractID(%q) = %d, %v; want %d, %v", tc.in, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestExtractID_LargestInt(t *testing.T) {
	maxInt := int(^uint(0) >> 1)
	got, ok := ExtractID(WithID("big", maxInt))
	if !ok || got != maxInt {
		t.Fatalf("ExtractID = %d, %v; want %s", got, ok, strconv.Itoa(maxInt))
	}
}
