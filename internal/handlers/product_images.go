package handlers

import (
	"bytes"
	"encoding/json"
	"strings"

	"backend/internal/models"
)

// imageInput accepts the two shapes clients send for an image: a bare URL
// string or a {url, alt} object. Validation and placeholder substitution
// happen later in models.NormalizeImages; this type only carries the raw value.
type imageInput struct {
	models.Image
}

func (i *imageInput) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var value string
		if err := json.Unmarshal(trimmed, &value); err != nil {
			return err
		}
		i.Image = models.Image{URL: strings.TrimSpace(value)}
		return nil
	}

	var doc struct {
		URL      string `json:"url"`
		Alt      string `json:"alt"`
		PublicID string `json:"public_id"`
	}
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return err
	}
	i.Image = models.Image{URL: strings.TrimSpace(doc.URL), Alt: doc.Alt, PublicID: doc.PublicID}
	return nil
}

// imagesFromInputs drops entirely blank entries and unwraps the rest.
func imagesFromInputs(inputs []imageInput) []models.Image {
	out := make([]models.Image, 0, len(inputs))
	for _, input := range inputs {
		if input.URL == "" && strings.TrimSpace(input.Alt) == "" {
			continue
		}
		out = append(out, input.Image)
	}
	return out
}
