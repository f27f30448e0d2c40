package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Banner is marketing content ordered by Position. An optional display
// window (StartsAt/EndsAt) narrows when an active banner is shown.
type Banner struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title     string             `json:"title" bson:"title"`
	Image     Image              `json:"image" bson:"image"`
	Link      string             `json:"link,omitempty" bson:"link,omitempty"`
	Position  int                `json:"position" bson:"position"`
	Active    bool               `json:"active" bson:"active"`
	StartsAt  *time.Time         `json:"starts_at,omitempty" bson:"starts_at,omitempty"`
	EndsAt    *time.Time         `json:"ends_at,omitempty" bson:"ends_at,omitempty"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// VisibleAt reports whether the banner should be shown at the given time.
func (b *Banner) VisibleAt(now time.Time) bool {
	if !b.Active {
		return false
	}
	if b.StartsAt != nil && now.Before(*b.StartsAt) {
		return false
	}
	if b.EndsAt != nil && now.After(*b.EndsAt) {
		return false
	}
	return true
}
