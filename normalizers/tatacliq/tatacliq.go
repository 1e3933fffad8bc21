package tatacliq

import (
	"github.com/raushankrgupta/multisite-product-viewer/models"
	"github.com/raushankrgupta/multisite-product-viewer/normalizers/base"
	"github.com/raushankrgupta/multisite-product-viewer/sites"
)

type TataCliqNormalizer struct{}

func New() *TataCliqNormalizer {
	return &TataCliqNormalizer{}
}

func (n *TataCliqNormalizer) SiteID() string {
	return sites.TataCliq
}

func (n *TataCliqNormalizer) Normalize(doc base.Document) *models.Product {
	return base.Common(doc, base.CommonOptions{
		SiteName: sites.DisplayName(sites.TataCliq),
		Ratings:  true,
		Carry:    []string{"availability"},
	})
}
