package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	SectionKindFeatured    = "featured"
	SectionKindNewArrivals = "new_arrivals"
	SectionKindCurated     = "curated"
)

// HomepageSection groups product refs under a heading, ordered by Position.
type HomepageSection struct {
	ID         primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Title      string               `json:"title" bson:"title"`
	Kind       string               `json:"kind" bson:"kind"`
	ProductIDs []primitive.ObjectID `json:"product_ids" bson:"product_ids"`
	Position   int                  `json:"position" bson:"position"`
	Active     bool                 `json:"active" bson:"active"`
	CreatedAt  time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time            `json:"updated_at" bson:"updated_at"`
}
