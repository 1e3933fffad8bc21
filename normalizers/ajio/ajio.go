// Package ajio normalizes AJIO records, which use their own field names
// (productName, sellingPrice, productImages, allOffers) instead of the common
// shape.
package ajio

import (
	"fmt"
	"strings"

	"github.com/raushankrgupta/multisite-product-viewer/models"
	"github.com/raushankrgupta/multisite-product-viewer/normalizers/base"
	"github.com/raushankrgupta/multisite-product-viewer/sites"
)

type AjioNormalizer struct{}

func New() *AjioNormalizer {
	return &AjioNormalizer{}
}

func (n *AjioNormalizer) SiteID() string {
	return sites.Ajio
}

func (n *AjioNormalizer) Normalize(doc base.Document) *models.Product {
	name := doc.Text("productName")
	p := &models.Product{
		ID:             doc.FirstText("productId", "id"),
		Title:          doc.FirstText("productName", "productLongName", "title"),
		URL:            doc.Text("url"),
		Currency:       doc.Text("currency"),
		MainImage:      doc.Text("mainImage"),
		Specifications: base.Specifications(doc.Get("specifications")),
		Brand:          doc.Text("brand"),
		ProductID:      doc.Text("productId"),
		ScrapedAt:      doc.FirstText("timestamp", "scrapedAt"),
		Source:         doc.Text("source"),
	}
	if p.Currency == "" {
		p.Currency = base.Rupee
	}
	if p.Source == "" {
		p.Source = sites.DisplayName(sites.Ajio)
	}

	n.prices(doc, p)

	p.Rating = doc.Text("rating")
	p.RatingCount = doc.FirstText("reviewCount", "ratingCount")
	p.ReviewCount = doc.Text("reviewCount")

	if images, ok := doc.Value("productImages"); ok {
		if name == "" {
			name = "Product"
		}
		p.Images = base.NormalizeImages(images, base.ImageOptions{
			Type:        "product",
			StringsOnly: true,
			Alt:         func(i int) string { return fmt.Sprintf("%s - Image %d", name, i+1) },
		})
	} else {
		p.Images = base.NormalizeImages(doc.Get("images"), base.ImageOptions{Type: "product"})
	}

	p.Description = doc.Text("description")
	if p.Description == "" {
		p.Description = doc.Map("productInformation").Text("Commodity")
	}
	highlights, _ := doc.First("features", "highlights")
	p.Highlights = base.NonNil(base.Strings(highlights))

	if offers, ok := base.OfferList(doc.Get("allOffers"), "Offer"); ok {
		p.Offers = offers
	} else {
		base.Carry(p, doc, "offers")
	}

	base.Carry(p, doc,
		"sizes", "availability", "bankOffers", "couponOffers", "colors",
		"availableColors", "availableSizes", "category", "seller", "deliveryInfo",
		"returnPolicy", "pricePerUnit", "productInformation",
	)
	return p
}

// prices prefers AJIO's own sellingPrice, mrp and numeric discount fields
// and falls back to the common shape.
func (n *AjioNormalizer) prices(doc base.Document, p *models.Product) {
	if v, ok := doc.First("sellingPrice"); ok {
		p.CurrentPrice = models.TextAmount(base.Rupee + base.AsText(v))
	} else if a, ok := base.FormatRupees(doc.Get("currentPrice")); ok {
		p.CurrentPrice = a
	}

	if v, ok := doc.First("mrp"); ok {
		p.OriginalPrice = models.TextAmount(base.Rupee + base.AsText(v)).Ptr()
	} else if a, ok := base.FormatRupees(doc.Get("originalPrice")); ok {
		p.OriginalPrice = a.Ptr()
	}

	if v, ok := doc.First("discount"); ok {
		label := base.AsText(v)
		if !strings.Contains(label, "%") {
			label += "% off"
		}
		p.Discount = models.TextAmount(label).Ptr()
	}

	if v, ok := doc.First("discount", "discountPercentage"); ok {
		if pct, ok := base.Percentage(v); ok {
			p.DiscountPercentage = pct
		}
	}
}
