// Package images picks the hero image and the thumbnail strip out of a
// product's image list. Upstream lists mix product photos with logos, icons,
// banners and loaders, and nothing marks which is which, so the choice is
// made from each CDN's naming conventions.
package images

import (
	"net/url"
	"strings"

	"github.com/raushankrgupta/multisite-product-viewer/models"
)

// MaxThumbnails caps the thumbnail strip.
const MaxThumbnails = 5

var (
	defaultExtensions  = []string{".jpeg", ".jpg", ".png", ".webp"}
	snapdealExtensions = []string{".jpeg", ".jpg", ".png"}
)

// cdnRule recognises product photos served from one site's image CDN.
type cdnRule struct {
	site       string
	fragment   string
	blocklist  []string
	extensions []string
	preferHQ   bool
}

// rules are tried in order; the first rule with a matching image wins.
var rules = []cdnRule{
	{
		site:       "flipkart",
		fragment:   "rukminim2.flixcart.com",
		blocklist:  []string{"logo", "icon", "banner", "chevron", "studio", "promos", "prod-fk-cms-brand-images"},
		extensions: defaultExtensions,
		preferHQ:   true,
	},
	{
		site:       "myntra",
		fragment:   "myntassets.com",
		blocklist:  []string{"logo", "icon", "banner", "chevron", "studio"},
		extensions: defaultExtensions,
	},
	{
		site:       "snapdeal",
		fragment:   "sdlcdn.com",
		blocklist:  []string{"logo", "icon", "loader", "loading"},
		extensions: snapdealExtensions,
	},
}

// thumbnailRule accepts any known CDN and rejects anything any site's
// blocklist rejects.
var thumbnailRule = unionRule(rules)

func unionRule(rs []cdnRule) cdnRule {
	seen := map[string]bool{}
	var block []string
	for _, r := range rs {
		for _, b := range r.blocklist {
			if !seen[b] {
				seen[b] = true
				block = append(block, b)
			}
		}
	}
	return cdnRule{blocklist: block, extensions: defaultExtensions}
}

func (r cdnRule) matches(rawURL string) bool {
	u := strings.ToLower(rawURL)
	if r.fragment != "" && !strings.Contains(u, r.fragment) {
		return false
	}
	for _, b := range r.blocklist {
		if strings.Contains(u, b) {
			return false
		}
	}
	return hasExtension(u, r.extensions)
}

// hasExtension checks the path suffix, so query strings and fragments do
// not hide or fake an extension.
func hasExtension(lowerURL string, exts []string) bool {
	path := lowerURL
	if u, err := url.Parse(lowerURL); err == nil && u.Path != "" {
		path = u.Path
	} else if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	for _, ext := range exts {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

func isKnownCDN(lowerURL string) bool {
	for _, r := range rules {
		if strings.Contains(lowerURL, r.fragment) {
			return true
		}
	}
	return false
}

// Main returns the best hero image URL in imgs, or "" when imgs is empty.
func Main(imgs []models.Image) string {
	for _, r := range rules {
		for _, img := range imgs {
			if img.URL == "" || !r.matches(img.URL) {
				continue
			}
			if r.preferHQ && img.HighQualityURL != "" {
				return img.HighQualityURL
			}
			return img.URL
		}
	}

	// Max Fashion serves its hero shot at 831x615.
	for _, img := range imgs {
		if strings.Contains(img.URL, "831") && strings.Contains(img.URL, "615") {
			return img.URL
		}
	}

	if len(imgs) == 0 {
		return ""
	}
	return imgs[0].URL
}

// ForProduct honours a main image the adapter already chose.
func ForProduct(p *models.Product) string {
	if p == nil {
		return ""
	}
	if p.MainImage != "" {
		return p.MainImage
	}
	return Main(p.Images)
}

// Thumbnails returns up to MaxThumbnails gallery entries from any known CDN,
// in their original order, indexed by position in the result.
func Thumbnails(imgs []models.Image) []models.Thumbnail {
	out := make([]models.Thumbnail, 0, MaxThumbnails)
	for _, img := range imgs {
		if len(out) == MaxThumbnails {
			break
		}
		if img.URL == "" || !isKnownCDN(strings.ToLower(img.URL)) || !thumbnailRule.matches(img.URL) {
			continue
		}
		src := img.URL
		if img.HighQualityURL != "" {
			src = img.HighQualityURL
		}
		out = append(out, models.Thumbnail{URL: src, Alt: img.Alt, Index: len(out)})
	}
	return out
}
