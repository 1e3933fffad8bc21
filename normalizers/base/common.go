package base

import (
	"github.com/raushankrgupta/multisite-product-viewer/models"
)

// CommonOptions configures Common for one site.
type CommonOptions struct {
	// SiteName is used as the source when the record names none.
	SiteName string
	// Ratings copies rating and ratingCount, formatting numbers as text.
	Ratings bool
	// Carry lists the optional keys the site's records are known to use.
	Carry []string
}

// Common builds a product from the flat record shape shared by most sites:
// numeric prices become "₹N", numeric discounts "₹N off", images are typed
// "product", and missing highlights or specifications become empty.
func Common(doc Document, opts CommonOptions) *models.Product {
	p := &models.Product{
		ID:             doc.FirstText("productId", "id"),
		Title:          doc.Text("title"),
		URL:            doc.Text("url"),
		Currency:       doc.Text("currency"),
		Images:         NormalizeImages(doc.Get("images"), ImageOptions{Type: "product"}),
		Description:    doc.Text("description"),
		Highlights:     NonNil(Strings(doc.Get("highlights"))),
		Specifications: Specifications(doc.Get("specifications")),
		Brand:          doc.Text("brand"),
		ProductID:      doc.Text("productId"),
		ScrapedAt:      doc.Text("scrapedAt"),
		Source:         doc.Text("source"),
	}
	if p.Source == "" {
		p.Source = opts.SiteName
	}

	if a, ok := FormatRupees(doc.Get("currentPrice")); ok {
		p.CurrentPrice = a
	}
	if a, ok := FormatRupees(doc.Get("originalPrice")); ok {
		p.OriginalPrice = a.Ptr()
	}
	if a, ok := FormatRupeesOff(doc.Get("discount")); ok {
		p.Discount = a.Ptr()
	}
	if pct, ok := Percentage(doc.Get("discountPercentage")); ok {
		p.DiscountPercentage = pct
	}
	if opts.Ratings {
		p.Rating = doc.Text("rating")
		p.RatingCount = doc.Text("ratingCount")
	}

	Carry(p, doc, opts.Carry...)
	return p
}

// carriers copy one optional key from a record onto a product.
var carriers = map[string]func(p *models.Product, v any){
	"availability":   func(p *models.Product, v any) { p.Availability = v },
	"delivery":       func(p *models.Product, v any) { p.Delivery = v },
	"sizes":          func(p *models.Product, v any) { p.Sizes = v },
	"category":       func(p *models.Product, v any) { p.Category = v },
	"seller":         func(p *models.Product, v any) { p.Seller = v },
	"offers":         func(p *models.Product, v any) { p.Offers = v },
	"breadcrumbs":    func(p *models.Product, v any) { p.Breadcrumbs = v },
	"bankOffers":     func(p *models.Product, v any) { p.BankOffers = v },
	"couponOffers":   func(p *models.Product, v any) { p.CouponOffers = v },
	"colors":         func(p *models.Product, v any) { p.Colors = v },
	"availableSizes": func(p *models.Product, v any) { p.AvailableSizes = v },
	"deliveryInfo":   func(p *models.Product, v any) { p.DeliveryInfo = v },
	"returnPolicy":   func(p *models.Product, v any) { p.ReturnPolicy = v },
	"pricePerUnit":   func(p *models.Product, v any) { p.PricePerUnit = v },
	"emi":            func(p *models.Product, v any) { p.EMI = v },
	"loyaltyPoints":  func(p *models.Product, v any) { p.LoyaltyPoints = v },
	"warranty":       func(p *models.Product, v any) { p.Warranty = v },
	"installation":   func(p *models.Product, v any) { p.Installation = v },
	"exchangeOffer":  func(p *models.Product, v any) { p.ExchangeOffer = v },
	"pricing":        func(p *models.Product, v any) { p.Pricing = v },
	"socialSharing":  func(p *models.Product, v any) { p.SocialSharing = v },
	"shopTheLook":    func(p *models.Product, v any) { p.ShopTheLook = v },
	"paymentOptions": func(p *models.Product, v any) { p.PaymentOptions = v },
	"overview":       func(p *models.Product, v any) { p.Overview = v },

	"availableColors":    func(p *models.Product, v any) { p.AvailableColors = v },
	"productInformation": func(p *models.Product, v any) { p.ProductInformation = v },
}

// Carry copies the listed keys from doc when they are present and not null.
// Unknown keys are ignored.
func Carry(p *models.Product, doc Document, keys ...string) {
	for _, key := range keys {
		set, ok := carriers[key]
		if !ok {
			continue
		}
		if v, present := doc.Value(key); present {
			set(p, v)
		}
	}
}

// NonNil returns s, or an empty slice when s is nil.
func NonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
