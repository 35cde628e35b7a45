package models

import (
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// Image is the canonical stored form of a product or category image.
type Image struct {
	URL      string `bson:"url" json:"url"`
	Alt      string `bson:"alt" json:"alt"`
	PublicID string `bson:"publicId,omitempty" json:"public_id,omitempty"`
}

type imageDoc struct {
	URL      string `bson:"url"`
	Alt      string `bson:"alt"`
	PublicID string `bson:"publicId,omitempty"`
}

// UnmarshalBSONValue accepts both document and plain string BSON values, so
// legacy products whose images were stored as bare URL strings still decode.
func (i *Image) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	switch t {
	case bsontype.Null:
		*i = Image{}
		return nil
	case bsontype.String:
		var value string
		if err := bson.UnmarshalValue(t, data, &value); err != nil {
			return err
		}
		*i = Image{URL: strings.TrimSpace(value)}
		return nil
	case bsontype.EmbeddedDocument:
		var doc imageDoc
		if err := bson.UnmarshalValue(t, data, &doc); err != nil {
			return err
		}
		*i = Image(doc)
		return nil
	default:
		return fmt.Errorf("cannot decode %s into Image", t)
	}
}

// MarshalBSONValue always stores the full document form, keeping new writes
// consistent even when the source document used a string value.
func (i Image) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(imageDoc(i))
}

// ImageList decodes image fields whether stored as a single value or an array.
type ImageList []Image

func (l *ImageList) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	switch t {
	case bsontype.Null:
		*l = nil
		return nil
	case bsontype.Array:
		var values []Image
		if err := bson.UnmarshalValue(t, data, &values); err != nil {
			return err
		}
		*l = values
		return nil
	case bsontype.String, bsontype.EmbeddedDocument:
		var value Image
		if err := value.UnmarshalBSONValue(t, data); err != nil {
			return err
		}
		*l = []Image{value}
		return nil
	default:
		return fmt.Errorf("cannot decode %s into ImageList", t)
	}
}

func (l ImageList) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue([]Image(l))
}
