package base

import (
	"github.com/raushankrgupta/multisite-product-viewer/models"
)

// ImageOptions controls how NormalizeImages builds structured images.
type ImageOptions struct {
	// Type is set on every image. Empty keeps the upstream type.
	Type string
	// Alt supplies alt text for images that carry none. i is the position
	// after filtering.
	Alt func(i int) string
	// Keep drops string images it returns false for before indexing.
	Keep func(url string) bool
	// StringsOnly skips object entries, for sites that only send URLs.
	StringsOnly bool
}

// NormalizeImages converts an upstream image list into structured images.
// Strings become {url, alt, type, index}; objects keep their url, alt and
// high quality url, and their own index when it is truthy. Entries of any
// other shape are skipped. The result is never nil.
func NormalizeImages(v any, opts ImageOptions) []models.Image {
	list, _ := v.([]any)
	out := make([]models.Image, 0, len(list))
	pos := 0
	for _, item := range list {
		var img models.Image
		switch t := item.(type) {
		case string:
			if opts.Keep != nil && !opts.Keep(t) {
				continue
			}
			img = models.Image{URL: t}
		case map[string]any:
			if opts.StringsOnly {
				continue
			}
			obj := Document(t)
			img = models.Image{
				URL:            obj.Text("url"),
				Alt:            obj.Text("alt"),
				Type:           obj.Text("type"),
				HighQualityURL: obj.Text("highQualityUrl"),
			}
			if idx, ok := obj.Number("index"); ok && !idx.IsZero() {
				n := int(idx.IntPart())
				img.Index = &n
			}
		default:
			continue
		}

		if img.Index == nil {
			n := pos
			img.Index = &n
		}
		if img.Alt == "" && opts.Alt != nil {
			img.Alt = opts.Alt(pos)
		}
		if opts.Type != "" {
			img.Type = opts.Type
		}
		out = append(out, img)
		pos++
	}
	return out
}
