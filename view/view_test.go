package view

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/raushankrgupta/multisite-product-viewer/models"
	"github.com/shopspring/decimal"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		name string
		in   models.Amount
		want string
	}{
		{"zero value", models.Amount{}, "0"},
		{"number small", models.NumberAmount(decimal.NewFromInt(999)), "999"},
		{"number lakh", models.NumberAmount(decimal.NewFromInt(123456)), "1,23,456"},
		{"number crore", models.NumberAmount(decimal.NewFromInt(12345678)), "1,23,45,678"},
		{"number fraction", models.NumberAmount(decimal.RequireFromString("1499.5")), "1,499.5"},
		{"text with rupee", models.TextAmount("₹1,23,456"), "123,456"},
		{"text plain", models.TextAmount("2999"), "2,999"},
		{"text with words", models.TextAmount("Rs 45000 only"), "Rs 45,000 only"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatPrice(tt.in); got != tt.want {
				t.Errorf("FormatPrice() = %q, want %q", got, tt.want)
			}
		})
	}

	if got := FormatPricePtr(nil); got != "" {
		t.Errorf("FormatPricePtr(nil) = %q", got)
	}
}

func TestSpecificationList(t *testing.T) {
	specs := map[string]string{}
	for _, k := range []string{"l", "k", "j", "i", "h", "g", "f", "e", "d", "c", "b", "a"} {
		specs[k] = strings.ToUpper(k)
	}
	got := SpecificationList(specs)
	if len(got) != MaxSpecifications {
		t.Fatalf("len = %d, want %d", len(got), MaxSpecifications)
	}
	if got[0] != (Spec{Key: "a", Value: "A"}) || got[9].Key != "j" {
		t.Errorf("unexpected order: %+v", got)
	}
	if got := SpecificationList(nil); got == nil || len(got) != 0 {
		t.Errorf("SpecificationList(nil) = %#v", got)
	}
}

func TestSafeRender(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, ""},
		{"string", "In stock", "In stock"},
		{"number", json.Number("4.3"), "4.3"},
		{"bool", true, "true"},
		{"text member", map[string]any{"text": "Ships today", "value": "x"}, "Ships today"},
		{"value member", map[string]any{"value": json.Number("4.1")}, "4.1"},
		{"totalRatings", map[string]any{"totalRatings": json.Number("120")}, "120"},
		{"nested object", map[string]any{"value": map[string]any{"a": 1}}, "[object Object]"},
		{"fallback json", map[string]any{"name": "Acme"}, `{"name":"Acme"}`},
		{"array", []any{"a", "b"}, `["a","b"]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SafeRender(tt.in); got != tt.want {
				t.Errorf("SafeRender() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDescriptionText(t *testing.T) {
	tests := map[string]string{
		"  plain   text ":                          "plain text",
		"<p>Soft <b>cotton</b></p><p>Regular fit</p>": "Soft cotton Regular fit",
		"<script>x()</script>Machine wash":            "Machine wash",
	}
	for in, want := range tests {
		if got := DescriptionText(in); got != want {
			t.Errorf("DescriptionText(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestBuild(t *testing.T) {
	if Build(nil) != nil {
		t.Fatal("Build(nil) should be nil")
	}
	pct := 20
	p := &models.Product{
		Title:              "Shirt",
		URL:                "https://www.flipkart.com/shirt",
		CurrentPrice:       models.TextAmount("₹1,599"),
		OriginalPrice:      models.TextAmount("₹1,999").Ptr(),
		Discount:           models.TextAmount("20% off").Ptr(),
		DiscountPercentage: &pct,
		Images: []models.Image{
			models.BareImage("https://rukminim2.flixcart.com/image/logo.png"),
			models.BareImage("https://rukminim2.flixcart.com/image/shirt.jpeg"),
		},
		Description:    "<p>Cotton shirt</p>",
		Specifications: map[string]string{"Fabric": "Cotton"},
		Availability:   map[string]any{"text": "In stock"},
		ScrapedAt:      "2024-05-01T10:00:00Z",
	}

	got := Build(p)
	want := &ProductView{
		Title:              "Shirt",
		URL:                "https://www.flipkart.com/shirt",
		Currency:           "₹",
		CurrentPrice:       "1,599",
		OriginalPrice:      "1,999",
		Discount:           "20% off",
		DiscountPercentage: &pct,
		MainImage:          "https://rukminim2.flixcart.com/image/shirt.jpeg",
		Thumbnails: []models.Thumbnail{
			{URL: "https://rukminim2.flixcart.com/image/shirt.jpeg", Index: 0},
		},
		Description:    "Cotton shirt",
		Highlights:     []string{},
		Specifications: []Spec{{Key: "Fabric", Value: "Cotton"}},
		Availability:   "In stock",
		ScrapedAt:      "2024-05-01T10:00:00Z",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Build() mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteText(t *testing.T) {
	v := &ProductView{
		Title:          "商品 Shirt",
		Currency:       "₹",
		CurrentPrice:   "1,599",
		URL:            "https://www.myntra.com/shirt",
		Highlights:     []string{"Cotton"},
		Specifications: []Spec{{Key: "Fit", Value: "Regular"}, {Key: "Sleeve Length", Value: "Long"}},
	}
	var buf bytes.Buffer
	if err := WriteText(&buf, v); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"Title  商品 Shirt\n",
		"Price  ₹1,599\n",
		"  • Cotton\n",
		"  Fit            Regular\n",
		"  Sleeve Length  Long\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Source") {
		t.Errorf("empty rows should be skipped:\n%s", out)
	}

	buf.Reset()
	_ = WriteText(&buf, nil)
	if buf.String() != "No product\n" {
		t.Errorf("nil view = %q", buf.String())
	}
}
