package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var validate = validator.New()

// Product is a catalog entry. Photo and Photos hold relative storage
// keys (generated filenames); they are resolved to URLs only when a
// response is serialized.
type Product struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title               string             `bson:"title" json:"title" validate:"required"`
	Description         string             `bson:"description" json:"description" validate:"required"`
	DetailedDescription string             `bson:"detailedDescription" json:"detailedDescription" validate:"required"`
	Photo               string             `bson:"photo" json:"photo" validate:"required"`
	Photos              []string           `bson:"photos" json:"photos" validate:"required,min=2,dive,required"`
	Category            string             `bson:"category" json:"category" validate:"required"`
	ColorOfPart         string             `bson:"colorOfPart" json:"colorOfPart" validate:"required"`
	IsFeatured          bool               `bson:"isFeatured" json:"isFeatured"`
	IsExclusive         bool               `bson:"isExclusive" json:"isExclusive"`
	CreatedAt           time.Time          `bson:"createdAt" json:"createdAt"`
}

// Validate enforces the document rules. The repository calls this
// before every write, so handler-level checks are a fast path only.
func (p *Product) Validate() error {
	return validate.Struct(p)
}

// Apply merges a partial update (keys matching bson field names) into
// the document, so the merged result can be validated before the write
// reaches the database.
func (p *Product) Apply(fields bson.M) {
	for key, value := range fields {
		switch key {
		case "title":
			p.Title, _ = value.(string)
		case "description":
			p.Description, _ = value.(string)
		case "detailedDescription":
			p.DetailedDescription, _ = value.(string)
		case "photo":
			p.Photo, _ = value.(string)
		case "photos":
			if v, ok := value.([]string); ok {
				p.Photos = v
			}
		case "category":
			p.Category, _ = value.(string)
		case "colorOfPart":
			p.ColorOfPart, _ = value.(string)
		case "isFeatured":
			p.IsFeatured, _ = value.(bool)
		case "isExclusive":
			p.IsExclusive, _ = value.(bool)
		}
	}
}
