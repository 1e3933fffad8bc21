package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Image is one product image. Upstream records send either a bare URL string
// or an object; Bare remembers the former so the value re-encodes the same way.
type Image struct {
	URL            string `json:"url"`
	Alt            string `json:"alt"`
	Type           string `json:"type,omitempty"`
	Index          *int   `json:"index,omitempty"`
	HighQualityURL string `json:"highQualityUrl,omitempty"`

	Bare bool `json:"-"`
}

// BareImage returns an image that encodes as a plain URL string.
func BareImage(url string) Image {
	return Image{URL: url, Bare: true}
}

type imageObject Image

func (img Image) MarshalJSON() ([]byte, error) {
	if img.Bare {
		return json.Marshal(img.URL)
	}
	return json.Marshal(imageObject(img))
}

func (img *Image) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*img = BareImage(s)
		return nil
	}
	if len(data) == 0 || data[0] != '{' {
		return fmt.Errorf("image must be a string or an object")
	}
	var obj imageObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*img = Image(obj)
	return nil
}

// Thumbnail is a gallery entry chosen by the image selector.
type Thumbnail struct {
	URL   string `json:"url"`
	Alt   string `json:"alt"`
	Index int    `json:"index"`
}
