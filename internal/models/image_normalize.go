package models

import (
	"net/url"
	"strings"
)

const placeholderBase = "https://placehold.co/400x300/f8fafc/64748b/png?text="

// PlaceholderImage builds the fallback image reference for a product. The URL
// encodes a fragment of the product name so placeholders stay distinguishable.
func PlaceholderImage(productName string) Image {
	fragment := productName
	if len(fragment) > 20 {
		fragment = fragment[:20]
	}

	var b strings.Builder
	for _, r := range fragment {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('+')
		}
	}

	return Image{
		URL: placeholderBase + url.QueryEscape(b.String()),
		Alt: productName,
	}
}

// validImageURL reports whether raw is usable as a stored image URL. Only
// absolute http(s) URLs qualify; relative upload paths are deliberately
// rejected so every stored reference resolves from any origin.
func validImageURL(raw string) bool {
	return strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://")
}

// NormalizeImage canonicalizes a single raw image reference against the owning
// product's name. Invalid or empty URLs are replaced with the placeholder; a
// missing alt falls back to the product name.
func NormalizeImage(raw Image, productName string) Image {
	out := raw
	out.URL = strings.TrimSpace(out.URL)
	if !validImageURL(out.URL) {
		out.URL = PlaceholderImage(productName).URL
		out.PublicID = ""
	}
	if strings.TrimSpace(out.Alt) == "" {
		out.Alt = productName
	}
	return out
}

// NormalizeImages canonicalizes a list of raw image references, preserving
// order. An empty input yields exactly one placeholder, so a product always
// has at least one image after normalization.
func NormalizeImages(raw []Image, productName string) ImageList {
	if len(raw) == 0 {
		return ImageList{PlaceholderImage(productName)}
	}

	out := make(ImageList, 0, len(raw))
	for _, img := range raw {
		out = append(out, NormalizeImage(img, productName))
	}
	return out
}
