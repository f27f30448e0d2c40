package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	SellerStatusPending  = "pending"
	SellerStatusApproved = "approved"
	SellerStatusRejected = "rejected"
)

// GeoPoint is a GeoJSON Point: coordinates are [longitude, latitude].
type GeoPoint struct {
	Type        string    `json:"type" bson:"type"`
	Coordinates []float64 `json:"coordinates" bson:"coordinates"`
}

func NewGeoPoint(lng, lat float64) GeoPoint {
	return GeoPoint{Type: "Point", Coordinates: []float64{lng, lat}}
}

// Seller is a store profile owned by a user. Listing products requires
// status "approved" and the suspended flag clear.
type Seller struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID          primitive.ObjectID `json:"user_id" bson:"user_id"`
	StoreName       string             `json:"store_name" bson:"store_name"`
	Description     string             `json:"description" bson:"description"`
	Logo            *Image             `json:"logo,omitempty" bson:"logo,omitempty"`
	Location        GeoPoint           `json:"location" bson:"location"`
	ServiceRadiusKm float64            `json:"service_radius_km" bson:"service_radius_km"`
	Status          string             `json:"status" bson:"status"`
	Suspended       bool               `json:"suspended" bson:"suspended"`
	CreatedAt       time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at" bson:"updated_at"`
}

// CanSell reports whether the store may list products and receive orders.
func (s *Seller) CanSell() bool {
	return s.Status == SellerStatusApproved && !s.Suspended
}
