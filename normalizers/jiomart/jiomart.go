package jiomart

import (
	"github.com/raushankrgupta/multisite-product-viewer/models"
	"github.com/raushankrgupta/multisite-product-viewer/normalizers/base"
	"github.com/raushankrgupta/multisite-product-viewer/sites"
)

type JioMartNormalizer struct{}

func New() *JioMartNormalizer {
	return &JioMartNormalizer{}
}

func (n *JioMartNormalizer) SiteID() string {
	return sites.JioMart
}

func (n *JioMartNormalizer) Normalize(doc base.Document) *models.Product {
	return base.Common(doc, base.CommonOptions{
		SiteName: sites.DisplayName(sites.JioMart),
		Ratings:  true,
		Carry:    []string{"availability", "delivery"},
	})
}
