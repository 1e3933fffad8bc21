// Package sites holds the static table of supported retailers and the URL
// check run before a scrape is requested.
package sites

import (
	"net/url"
	"strings"

	"github.com/raushankrgupta/multisite-product-viewer/models"
)

// Site identifiers. Ajio and Croma have adapters but are not offered for
// selection.
const (
	Flipkart   = "flipkart"
	Myntra     = "myntra"
	Max        = "max"
	TataCliq   = "tatacliq"
	JioMart    = "jiomart"
	VijaySales = "vijaysales"
	Ajio       = "ajio"
	Croma      = "croma"
)

var registry = []models.Site{
	{
		ID:             Flipkart,
		Name:           "Flipkart",
		Domain:         "flipkart.com",
		URLPlaceholder: "https://www.flipkart.com/search?q=...",
		SampleURL:      "https://www.flipkart.com/search?sid=tyy%2C4io&otracker=CLP_Filters&p%5B%5D=facets.brand%255B%255D%3DApple&page=2",
		Description:    "India's leading e-commerce platform",
	},
	{
		ID:             Myntra,
		Name:           "Myntra",
		Domain:         "myntra.com",
		URLPlaceholder: "https://www.myntra.com/...",
		SampleURL:      "https://www.myntra.com/hair-oil/indulekha/indulekha-bringha-hair-oil-100-ml/2508145/buy",
		Description:    "Fashion and lifestyle destination",
	},
	{
		ID:             Max,
		Name:           "Max Fashion",
		Domain:         "maxfashion.in",
		URLPlaceholder: "https://www.maxfashion.in/in/en/SHOP-...",
		SampleURL:      "https://www.maxfashion.in/in/en/SHOP-Max-Global-Brown-Women-Embroidered-Midi-Skirt-For-Women/p/1000015151660-Brown-BROWN",
		Description:    "Fashion retail chain",
	},
	{
		ID:             TataCliq,
		Name:           "TataCliq",
		Domain:         "tatacliq.com",
		URLPlaceholder: "https://www.tatacliq.com/...",
		SampleURL:      "https://www.tatacliq.com/guess-analog-rose-gold-dial-womens-watch-gw0383l2/p-mp000000019270293",
		Description:    "Tata Group's e-commerce platform",
	},
	{
		ID:             JioMart,
		Name:           "JioMart",
		Domain:         "jiomart.com",
		URLPlaceholder: "https://www.jiomart.com/...",
		SampleURL:      "https://www.jiomart.com/p/groceries/pears-babugosha-1-kg/590362490",
		Description:    "Reliance's online grocery & retail",
	},
	{
		ID:             VijaySales,
		Name:           "Vijay Sales",
		Domain:         "vijaysales.com",
		URLPlaceholder: "https://www.vijaysales.com/...",
		SampleURL:      "https://www.vijaysales.com/p/234496/sansui-80-cm-32-inches-hd-smart-google-qled-tv-with-dolby-audio-jss32csqled",
		Description:    "Electronics & appliances store",
	},
}

// displayNames covers sites that have an adapter but no registry entry.
var displayNames = map[string]string{
	Ajio:  "AJIO",
	Croma: "Croma",
}

// All returns a copy of the registry in display order.
func All() []models.Site {
	out := make([]models.Site, len(registry))
	copy(out, registry)
	return out
}

// Get looks up a registered site by id.
func Get(id string) (models.Site, bool) {
	for _, s := range registry {
		if s.ID == id {
			return s, true
		}
	}
	return models.Site{}, false
}

// Default is the site selected when a session starts.
func Default() models.Site {
	return registry[0]
}

// DisplayName returns the human name for any site id with an adapter, or
// the id itself.
func DisplayName(id string) string {
	if s, ok := Get(id); ok {
		return s.Name
	}
	if name, ok := displayNames[id]; ok {
		return name
	}
	return id
}

// ValidateURL reports whether rawURL parses as an absolute URL whose host
// contains the registered domain of siteID. The match is a plain substring
// test, so "notflipkart.com.evil" passes for flipkart. Unknown site ids and
// unparseable input return false.
func ValidateURL(rawURL, siteID string) bool {
	site, ok := Get(siteID)
	if !ok {
		return false
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return false
	}
	return strings.Contains(u.Hostname(), site.Domain)
}
