package flipkart

import (
	"strings"

	"github.com/raushankrgupta/multisite-product-viewer/models"
	"github.com/raushankrgupta/multisite-product-viewer/normalizers/base"
	"github.com/raushankrgupta/multisite-product-viewer/sites"
)

type FlipkartNormalizer struct{}

func New() *FlipkartNormalizer {
	return &FlipkartNormalizer{}
}

func (n *FlipkartNormalizer) SiteID() string {
	return sites.Flipkart
}

// Normalize keeps Flipkart's display prices as they are. Images arrive either
// as a flat list or grouped into main, all, thumbnails and highQuality.
func (n *FlipkartNormalizer) Normalize(doc base.Document) *models.Product {
	p := &models.Product{
		ID:             doc.Text("id"),
		ProductID:      doc.Text("id"),
		Title:          doc.Text("title"),
		URL:            doc.Text("url"),
		Currency:       base.Rupee,
		Rating:         doc.Text("rating"),
		RatingCount:    doc.Text("ratingCount"),
		ReviewCount:    doc.Text("reviewCount"),
		Description:    doc.Text("description"),
		Highlights:     base.NonNil(base.Strings(doc.Get("highlights"))),
		Specifications: base.Specifications(doc.Get("specifications")),
		Brand:          doc.Text("brand"),
		ScrapedAt:      doc.Text("scrapedAt"),
		Source:         sites.DisplayName(sites.Flipkart),
	}

	if a, ok := base.Amount(doc.Get("currentPrice")); ok {
		p.CurrentPrice = a
	}
	if a, ok := base.Amount(doc.Get("originalPrice")); ok {
		p.OriginalPrice = a.Ptr()
	}
	if discount, ok := doc.Value("discount"); ok && base.Truthy(discount) {
		if a, ok := base.Amount(discount); ok {
			p.Discount = a.Ptr()
		}
		p.DiscountPercentage = discountPercentage(discount)
	}

	n.images(doc, p)
	base.Carry(p, doc, "availability", "offers", "breadcrumbs", "delivery")
	return p
}

func (n *FlipkartNormalizer) images(doc base.Document, p *models.Product) {
	grouped := doc.Map("images")
	if grouped == nil {
		p.Images = base.NormalizeImages(doc.Get("images"), base.ImageOptions{})
		return
	}

	list, _ := grouped.First("main", "all")
	p.Images = base.NormalizeImages(list, base.ImageOptions{})
	p.Thumbnails = base.NormalizeImages(grouped.Get("thumbnails"), base.ImageOptions{})
	p.HighQualityImages = base.NormalizeImages(grouped.Get("highQuality"), base.ImageOptions{})

	if main := grouped.Slice("main"); len(main) > 0 {
		if first := base.AsMap(main[0]); first != nil {
			p.MainImage = first.FirstText("url", "highQualityUrl")
		}
	}
}

// discountPercentage reads labels like "23% off".
func discountPercentage(v any) *int {
	if s, ok := v.(string); ok {
		v = strings.Replace(s, "% off", "", 1)
	}
	pct, ok := base.Percentage(v)
	if !ok {
		return nil
	}
	return pct
}
