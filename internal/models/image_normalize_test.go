package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceholderImageEncodesName(t *testing.T) {
	img := PlaceholderImage("Rose Gel")

	assert.Equal(t, placeholderBase+"Rose%2BGel", img.URL)
	assert.Equal(t, "Rose Gel", img.Alt)
	assert.Empty(t, img.PublicID)
}

func TestPlaceholderImageTruncatesLongNames(t *testing.T) {
	img := PlaceholderImage("Hydrating Night Cream Deluxe")

	// only the first 20 bytes of the name make it into the URL
	assert.Equal(t, placeholderBase+"Hydrating%2BNight%2BCrea", img.URL)
	// the alt text keeps the full name
	assert.Equal(t, "Hydrating Night Cream Deluxe", img.Alt)
}

func TestNormalizeImageKeepsValidURL(t *testing.T) {
	img := NormalizeImage(Image{URL: "https://cdn.example.com/a.png"}, "Rose Gel")

	assert.Equal(t, "https://cdn.example.com/a.png", img.URL)
	assert.Equal(t, "Rose Gel", img.Alt)
}

func TestNormalizeImageReplacesInvalidURL(t *testing.T) {
	tests := []string{"", "   ", "uploads/products/a.png", "ftp://host/a.png", "data:image/png;base64,xx"}
	for _, raw := range tests {
		img := NormalizeImage(Image{URL: raw, PublicID: "legacy"}, "Rose Gel")

		assert.Equal(t, PlaceholderImage("Rose Gel").URL, img.URL, "input %q", raw)
		assert.Empty(t, img.PublicID, "input %q", raw)
	}
}

func TestNormalizeImageKeepsProvidedAlt(t *testing.T) {
	img := NormalizeImage(Image{URL: "http://cdn.example.com/a.png", Alt: "swatch"}, "Rose Gel")

	assert.Equal(t, "swatch", img.Alt)
}

func TestNormalizeImagesEmptyYieldsPlaceholder(t *testing.T) {
	images := NormalizeImages(nil, "Rose Gel")

	require.Len(t, images, 1)
	assert.Equal(t, PlaceholderImage("Rose Gel"), images[0])
}

func TestNormalizeImagesPreservesOrder(t *testing.T) {
	images := NormalizeImages([]Image{
		{URL: "https://cdn.example.com/a.png"},
		{URL: "not-a-url"},
		{URL: "https://cdn.example.com/c.png"},
	}, "Rose Gel")

	require.Len(t, images, 3)
	assert.Equal(t, "https://cdn.example.com/a.png", images[0].URL)
	assert.Equal(t, PlaceholderImage("Rose Gel").URL, images[1].URL)
	assert.Equal(t, "https://cdn.example.com/c.png", images[2].URL)
}
