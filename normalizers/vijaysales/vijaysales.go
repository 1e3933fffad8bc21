// Package vijaysales normalizes Vijay Sales records. Prices live under a
// pricing object, and the selling price is often missing while the MRP and a
// "N% off" label are present.
package vijaysales

import (
	"fmt"
	"strings"

	"github.com/raushankrgupta/multisite-product-viewer/models"
	"github.com/raushankrgupta/multisite-product-viewer/normalizers/base"
	"github.com/raushankrgupta/multisite-product-viewer/sites"
)

type VijaySalesNormalizer struct{}

func New() *VijaySalesNormalizer {
	return &VijaySalesNormalizer{}
}

func (n *VijaySalesNormalizer) SiteID() string {
	return sites.VijaySales
}

func (n *VijaySalesNormalizer) Normalize(doc base.Document) *models.Product {
	id := doc.FirstText("productSku", "id", "productId")
	p := &models.Product{
		ID:             id,
		ProductID:      id,
		Title:          doc.FirstText("productName", "title"),
		URL:            doc.FirstText("productUrl", "url"),
		Description:    doc.Text("description"),
		Specifications: base.Specifications(doc.Get("specifications")),
		Brand:          doc.Text("brand"),
		ScrapedAt:      doc.Text("scrapedAt"),
		Source:         sites.DisplayName(sites.VijaySales),
	}

	pricing := doc.Map("pricing")
	n.prices(doc, pricing, p)

	p.Currency = pricing.FirstText("currency")
	if p.Currency == "" {
		p.Currency = doc.Text("currency")
	}
	if p.Currency == "" {
		p.Currency = base.Rupee
	}

	n.ratings(doc, p)
	n.images(doc, p)

	highlights, _ := doc.First("keyFeatures", "highlights", "features")
	p.Highlights = base.NonNil(base.Strings(highlights))

	if deals, ok := doc.First("extraDeals"); ok {
		p.Offers = deals
	} else {
		base.Carry(p, doc, "offers")
	}

	base.Carry(p, doc,
		"availability", "delivery", "emi", "loyaltyPoints", "warranty",
		"installation", "exchangeOffer", "pricing",
	)
	return p
}

// prices fills the price fields. An explicit selling price always wins; it is
// derived from the MRP and the discount label only when absent. Older records
// carry the pricing fields at the top level instead of under pricing.
func (n *VijaySalesNormalizer) prices(doc, pricing base.Document, p *models.Product) {
	priced := pricing
	if priced == nil {
		priced = doc
	}

	selling, ok := priced.Value("sellingPrice")
	if !ok {
		mrp := priced.Get("mrp")
		if d, derived := base.DeriveSellingPrice(mrp, priced.Get("discount")); derived && base.Truthy(mrp) {
			p.CurrentPrice = models.NumberAmount(d)
		} else {
			selling, _ = doc.First("currentPrice", "sellingPrice")
		}
	}
	if a, ok := base.Amount(selling); ok {
		p.CurrentPrice = a
	}

	mrp, ok := priced.First("mrp")
	if !ok {
		mrp, _ = doc.First("originalPrice", "mrp")
	}
	if a, ok := base.Amount(mrp); ok {
		p.OriginalPrice = a.Ptr()
	}

	if label, ok := priced.First("discount"); ok {
		if a, ok := base.Amount(label); ok {
			p.Discount = a.Ptr()
		}
		if s, isText := label.(string); isText && strings.Contains(s, "%") {
			pct, _ := base.ParsePercent(s)
			pct = min(pct, 100)
			p.DiscountPercentage = &pct
		}
		return
	}
	if a, ok := base.Amount(doc.Get("discount")); ok {
		p.Discount = a.Ptr()
	}
	if pct, ok := base.Percentage(doc.Get("discountPercentage")); ok {
		p.DiscountPercentage = pct
	}
}

// ratings reads the nested rating object ({value, totalRatings, totalReviews})
// or the flat fields.
func (n *VijaySalesNormalizer) ratings(doc base.Document, p *models.Product) {
	rating := doc.Map("rating")
	if rating == nil {
		p.Rating = doc.Text("rating")
		p.RatingCount = doc.Text("ratingCount")
		p.ReviewCount = doc.Text("reviewCount")
		return
	}
	p.Rating = rating.FirstText("value")
	p.RatingCount = rating.FirstText("totalRatings")
	if p.RatingCount == "" {
		p.RatingCount = doc.Text("ratingCount")
	}
	p.ReviewCount = rating.FirstText("totalReviews")
	if p.ReviewCount == "" {
		p.ReviewCount = doc.Text("reviewCount")
	}
}

// images drops icon sprites and video links, which the listing mixes in with
// product photos.
func (n *VijaySalesNormalizer) images(doc base.Document, p *models.Product) {
	name := doc.Text("productName")
	if name == "" {
		name = "Product"
	}
	p.Images = base.NormalizeImages(doc.Get("images"), base.ImageOptions{
		Type:        "product",
		StringsOnly: true,
		Keep: func(url string) bool {
			return url != "" && !strings.Contains(url, "icons/") && !strings.Contains(url, "youtube.com")
		},
		Alt: func(i int) string { return fmt.Sprintf("%s - Image %d", name, i+1) },
	})
	if len(p.Images) > 0 {
		p.MainImage = p.Images[0].URL
	} else {
		p.MainImage = doc.Text("mainImage")
	}
}
