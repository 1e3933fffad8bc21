package maxfashion

import (
	"github.com/raushankrgupta/multisite-product-viewer/models"
	"github.com/raushankrgupta/multisite-product-viewer/normalizers/base"
	"github.com/raushankrgupta/multisite-product-viewer/sites"
)

// MaxNormalizer handles Max Fashion. Its records carry no ratings but have
// several page sections (look book, sharing links, payment options) that are
// passed through.
type MaxNormalizer struct{}

func New() *MaxNormalizer {
	return &MaxNormalizer{}
}

func (n *MaxNormalizer) SiteID() string {
	return sites.Max
}

func (n *MaxNormalizer) Normalize(doc base.Document) *models.Product {
	return base.Common(doc, base.CommonOptions{
		SiteName: sites.DisplayName(sites.Max),
		Carry: []string{
			"sizes", "availability", "delivery",
			"socialSharing", "shopTheLook", "returnPolicy", "paymentOptions", "overview",
		},
	})
}
