package myntra

import (
	"github.com/raushankrgupta/multisite-product-viewer/models"
	"github.com/raushankrgupta/multisite-product-viewer/normalizers/base"
	"github.com/raushankrgupta/multisite-product-viewer/sites"
)

type MyntraNormalizer struct{}

func New() *MyntraNormalizer {
	return &MyntraNormalizer{}
}

func (n *MyntraNormalizer) SiteID() string {
	return sites.Myntra
}

func (n *MyntraNormalizer) Normalize(doc base.Document) *models.Product {
	return base.Common(doc, base.CommonOptions{
		SiteName: sites.DisplayName(sites.Myntra),
		Ratings:  true,
		Carry:    []string{"sizes", "availability"},
	})
}
