package view

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/raushankrgupta/multisite-product-viewer/images"
	"github.com/raushankrgupta/multisite-product-viewer/models"
)

// ProductView is a Product reduced to what a page or terminal displays.
type ProductView struct {
	Title              string             `json:"title"`
	URL                string             `json:"url"`
	Source             string             `json:"source,omitempty"`
	Currency           string             `json:"currency"`
	CurrentPrice       string             `json:"currentPrice"`
	OriginalPrice      string             `json:"originalPrice,omitempty"`
	Discount           string             `json:"discount,omitempty"`
	DiscountPercentage *int               `json:"discountPercentage,omitempty"`
	Rating             string             `json:"rating,omitempty"`
	RatingCount        string             `json:"ratingCount,omitempty"`
	MainImage          string             `json:"mainImage,omitempty"`
	Thumbnails         []models.Thumbnail `json:"thumbnails"`
	Description        string             `json:"description,omitempty"`
	Highlights         []string           `json:"highlights"`
	Specifications     []Spec             `json:"specifications"`
	Availability       string             `json:"availability,omitempty"`
	Seller             string             `json:"seller,omitempty"`
	ScrapedAt          string             `json:"scrapedAt"`
}

// Build derives the display view of p. A nil product yields nil.
func Build(p *models.Product) *ProductView {
	if p == nil {
		return nil
	}
	currency := p.Currency
	if currency == "" {
		currency = "₹"
	}
	v := &ProductView{
		Title:              p.Title,
		URL:                p.URL,
		Source:             p.Source,
		Currency:           currency,
		CurrentPrice:       FormatPrice(p.CurrentPrice),
		OriginalPrice:      FormatPricePtr(p.OriginalPrice),
		DiscountPercentage: p.DiscountPercentage,
		Rating:             p.Rating,
		RatingCount:        p.RatingCount,
		MainImage:          images.ForProduct(p),
		Thumbnails:         images.Thumbnails(p.Images),
		Description:        DescriptionText(p.Description),
		Highlights:         p.Highlights,
		Specifications:     SpecificationList(p.Specifications),
		Availability:       SafeRender(p.Availability),
		Seller:             SafeRender(p.Seller),
		ScrapedAt:          p.ScrapedAt,
	}
	if p.Discount != nil {
		v.Discount = p.Discount.String()
	}
	if v.Highlights == nil {
		v.Highlights = []string{}
	}
	return v
}

// DescriptionText strips markup from a description and collapses
// whitespace. Plain text passes through with whitespace collapsed.
func DescriptionText(s string) string {
	if !strings.Contains(s, "<") {
		return strings.Join(strings.Fields(s), " ")
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.Join(strings.Fields(s), " ")
	}
	doc.Find("script, style").Remove()
	var parts []string
	doc.Find("body").Contents().Each(func(i int, sel *goquery.Selection) {
		if t := strings.Join(strings.Fields(sel.Text()), " "); t != "" {
			parts = append(parts, t)
		}
	})
	return strings.Join(parts, " ")
}
