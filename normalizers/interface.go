package normalizers

import (
	"github.com/raushankrgupta/multisite-product-viewer/models"
	"github.com/raushankrgupta/multisite-product-viewer/normalizers/base"
)

// Normalizer maps one site's raw product record onto the canonical Product.
type Normalizer interface {
	// SiteID is the registry id the normalizer is dispatched on.
	SiteID() string
	// Normalize never fails: fields it cannot read are left absent.
	Normalize(doc base.Document) *models.Product
}
