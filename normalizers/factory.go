package normalizers

import (
	"github.com/raushankrgupta/multisite-product-viewer/models"
	"github.com/raushankrgupta/multisite-product-viewer/normalizers/ajio"
	"github.com/raushankrgupta/multisite-product-viewer/normalizers/base"
	"github.com/raushankrgupta/multisite-product-viewer/normalizers/croma"
	"github.com/raushankrgupta/multisite-product-viewer/normalizers/flipkart"
	"github.com/raushankrgupta/multisite-product-viewer/normalizers/jiomart"
	"github.com/raushankrgupta/multisite-product-viewer/normalizers/maxfashion"
	"github.com/raushankrgupta/multisite-product-viewer/normalizers/myntra"
	"github.com/raushankrgupta/multisite-product-viewer/normalizers/tatacliq"
	"github.com/raushankrgupta/multisite-product-viewer/normalizers/vijaysales"
)

var registered = index(
	flipkart.New(),
	myntra.New(),
	maxfashion.New(),
	tatacliq.New(),
	jiomart.New(),
	croma.New(),
	ajio.New(),
	vijaysales.New(),
)

func index(ns ...Normalizer) map[string]Normalizer {
	m := make(map[string]Normalizer, len(ns))
	for _, n := range ns {
		m[n.SiteID()] = n
	}
	return m
}

// Get returns the normalizer registered for siteID.
func Get(siteID string) (Normalizer, bool) {
	n, ok := registered[siteID]
	return n, ok
}

// Normalize dispatches doc to the adapter for siteID. Sites without an
// adapter get the record back unchanged.
func Normalize(doc base.Document, siteID string) *models.Product {
	if n, ok := Get(siteID); ok {
		return n.Normalize(doc)
	}
	return base.Identity(doc)
}
