package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

type imageListProbe struct {
	Images ImageList `bson:"images"`
}

type imageProbe struct {
	Image Image `bson:"image"`
}

func TestImageListDecodesMixedArray(t *testing.T) {
	raw, err := bson.Marshal(bson.M{"images": bson.A{
		"https://cdn.example.com/a.png",
		bson.M{"url": "https://cdn.example.com/b.png", "alt": "swatch", "publicId": "products/b"},
	}})
	require.NoError(t, err)

	var probe imageListProbe
	require.NoError(t, bson.Unmarshal(raw, &probe))

	require.Len(t, probe.Images, 2)
	assert.Equal(t, Image{URL: "https://cdn.example.com/a.png"}, probe.Images[0])
	assert.Equal(t, Image{URL: "https://cdn.example.com/b.png", Alt: "swatch", PublicID: "products/b"}, probe.Images[1])
}

func TestImageListDecodesSingleStringValue(t *testing.T) {
	raw, err := bson.Marshal(bson.M{"images": "https://cdn.example.com/a.png"})
	require.NoError(t, err)

	var probe imageListProbe
	require.NoError(t, bson.Unmarshal(raw, &probe))

	require.Len(t, probe.Images, 1)
	assert.Equal(t, "https://cdn.example.com/a.png", probe.Images[0].URL)
}

func TestImageListDecodesNull(t *testing.T) {
	raw, err := bson.Marshal(bson.M{"images": nil})
	require.NoError(t, err)

	var probe imageListProbe
	require.NoError(t, bson.Unmarshal(raw, &probe))

	assert.Nil(t, probe.Images)
}

func TestImageDecodesLegacyString(t *testing.T) {
	raw, err := bson.Marshal(bson.M{"image": "https://cdn.example.com/a.png"})
	require.NoError(t, err)

	var probe imageProbe
	require.NoError(t, bson.Unmarshal(raw, &probe))

	assert.Equal(t, "https://cdn.example.com/a.png", probe.Image.URL)
	assert.Empty(t, probe.Image.Alt)
}

func TestImageListMarshalsDocumentForm(t *testing.T) {
	in := imageListProbe{Images: ImageList{{URL: "https://cdn.example.com/a.png", Alt: "a"}}}

	raw, err := bson.Marshal(in)
	require.NoError(t, err)

	var out imageListProbe
	require.NoError(t, bson.Unmarshal(raw, &out))

	assert.Equal(t, in.Images, out.Images)
}
