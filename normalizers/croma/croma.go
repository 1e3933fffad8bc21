// Package croma normalizes Croma records. Croma is not offered in the site
// picker yet, but records already carry this shape.
package croma

import (
	"github.com/raushankrgupta/multisite-product-viewer/models"
	"github.com/raushankrgupta/multisite-product-viewer/normalizers/base"
	"github.com/raushankrgupta/multisite-product-viewer/sites"
)

type CromaNormalizer struct{}

func New() *CromaNormalizer {
	return &CromaNormalizer{}
}

func (n *CromaNormalizer) SiteID() string {
	return sites.Croma
}

func (n *CromaNormalizer) Normalize(doc base.Document) *models.Product {
	return base.Common(doc, base.CommonOptions{
		SiteName: sites.DisplayName(sites.Croma),
		Ratings:  true,
		Carry:    []string{"availability", "offers", "delivery"},
	})
}
