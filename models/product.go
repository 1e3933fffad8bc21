package models

import (
	"encoding/json"
	"reflect"
	"strings"
)

// Offer is a promotional line built from a bare offer string. Offers that
// arrive as objects are carried as sent.
type Offer struct {
	Type        string `json:"type"`
	Description any    `json:"description"`
}

// Product is the canonical record every site adapter produces. Fields past
// the core set are optional and omitted from JSON when absent.
type Product struct {
	ID    string `json:"id,omitempty"`
	Title string `json:"title"`
	URL   string `json:"url"`

	CurrentPrice       Amount  `json:"currentPrice"`
	OriginalPrice      *Amount `json:"originalPrice,omitempty"`
	Discount           *Amount `json:"discount,omitempty"`
	DiscountPercentage *int    `json:"discountPercentage,omitempty"`
	Currency           string  `json:"currency,omitempty"`

	Rating      string `json:"rating,omitempty"`
	RatingCount string `json:"ratingCount,omitempty"`
	ReviewCount string `json:"reviewCount,omitempty"`

	Images            []Image `json:"images"`
	MainImage         string  `json:"mainImage,omitempty"`
	Thumbnails        []Image `json:"thumbnails,omitempty"`
	HighQualityImages []Image `json:"highQualityImages,omitempty"`

	Description    string            `json:"description"`
	Highlights     []string          `json:"highlights"`
	Specifications map[string]string `json:"specifications"`

	ScrapedAt string `json:"scrapedAt"`
	Source    string `json:"source,omitempty"`

	Brand        string       `json:"brand,omitempty"`
	ProductID    string       `json:"productId,omitempty"`
	Category     any          `json:"category,omitempty"`
	Seller       any          `json:"seller,omitempty"`
	Availability any          `json:"availability,omitempty"`
	Delivery     any          `json:"delivery,omitempty"`
	Offers       any          `json:"offers,omitempty"`
	Breadcrumbs  any          `json:"breadcrumbs,omitempty"`
	Sizes        any          `json:"sizes,omitempty"`

	// Site-specific bags, carried as the upstream sent them.
	BankOffers         any `json:"bankOffers,omitempty"`
	CouponOffers       any `json:"couponOffers,omitempty"`
	Colors             any `json:"colors,omitempty"`
	AvailableColors    any `json:"availableColors,omitempty"`
	AvailableSizes     any `json:"availableSizes,omitempty"`
	DeliveryInfo       any `json:"deliveryInfo,omitempty"`
	ReturnPolicy       any `json:"returnPolicy,omitempty"`
	PricePerUnit       any `json:"pricePerUnit,omitempty"`
	ProductInformation any `json:"productInformation,omitempty"`
	EMI                any `json:"emi,omitempty"`
	LoyaltyPoints      any `json:"loyaltyPoints,omitempty"`
	Warranty           any `json:"warranty,omitempty"`
	Installation       any `json:"installation,omitempty"`
	ExchangeOffer      any `json:"exchangeOffer,omitempty"`
	Pricing            any `json:"pricing,omitempty"`
	SocialSharing      any `json:"socialSharing,omitempty"`
	ShopTheLook        any `json:"shopTheLook,omitempty"`
	PaymentOptions     any `json:"paymentOptions,omitempty"`
	Overview           any `json:"overview,omitempty"`

	// Raw, when set, is the verbatim upstream record. It is emitted unchanged
	// in place of the typed fields.
	Raw json.RawMessage `json:"-"`
}

type productFields Product

func (p Product) MarshalJSON() ([]byte, error) {
	if len(p.Raw) > 0 {
		return p.Raw, nil
	}
	out := productFields(p)
	if out.Images == nil {
		out.Images = []Image{}
	}
	if out.Highlights == nil {
		out.Highlights = []string{}
	}
	if out.Specifications == nil {
		out.Specifications = map[string]string{}
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes field by field. A field whose value does not fit the
// canonical type is left at its zero value instead of failing the record.
func (p *Product) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	var out Product
	v := reflect.ValueOf(&out).Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		name := jsonName(t.Field(i))
		raw, ok := fields[name]
		if name == "" || !ok {
			continue
		}
		ptr := reflect.New(t.Field(i).Type)
		if err := json.Unmarshal(raw, ptr.Interface()); err == nil {
			v.Field(i).Set(ptr.Elem())
		}
	}
	*p = out
	return nil
}

func jsonName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "" || tag == "-" {
		return ""
	}
	name, _, _ := strings.Cut(tag, ",")
	return name
}
