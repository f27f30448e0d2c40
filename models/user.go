package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleCustomer = "customer"
	RoleSeller   = "seller"
	RoleVendor   = "vendor"
	RoleAdmin    = "admin"
)

// MaxRefreshTokens caps how many refresh tokens a user can hold at once.
// Logging in on a sixth device evicts the oldest session.
const MaxRefreshTokens = 5

type Image struct {
	URL      string `json:"url" bson:"url"`
	PublicID string `json:"public_id,omitempty" bson:"public_id,omitempty"`
}

type Address struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	FullName    string             `json:"full_name" bson:"full_name"`
	Line        string             `json:"line" bson:"line"`
	City        string             `json:"city" bson:"city"`
	PostalCode  string             `json:"postal_code" bson:"postal_code"`
	Country     string             `json:"country" bson:"country"`
	PhoneNumber string             `json:"phone_number" bson:"phone_number"`
	IsDefault   bool               `json:"is_default" bson:"is_default"`
}

// RefreshToken is one live session. Only the token's jti is stored; the
// signed JWT itself never touches the database.
type RefreshToken struct {
	TokenID   string    `json:"-" bson:"token_id"`
	ExpiresAt time.Time `json:"-" bson:"expires_at"`
	CreatedAt time.Time `json:"-" bson:"created_at"`
}

type User struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name          string             `json:"name" bson:"name"`
	Email         string             `json:"email" bson:"email"`
	Password      string             `json:"-" bson:"password"`
	PhoneNumber   string             `json:"phone_number,omitempty" bson:"phone_number,omitempty"`
	Role          string             `json:"role" bson:"role"`
	Avatar        *Image             `json:"avatar,omitempty" bson:"avatar,omitempty"`
	Addresses     []Address          `json:"addresses" bson:"addresses"`
	RefreshTokens []RefreshToken     `json:"-" bson:"refresh_tokens"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at" bson:"updated_at"`
}

// DefaultAddress returns the address marked default, falling back to the
// first one. ok is false when the address book is empty.
func (u *User) DefaultAddress() (Address, bool) {
	if len(u.Addresses) == 0 {
		return Address{}, false
	}
	for _, a := range u.Addresses {
		if a.IsDefault {
			return a, true
		}
	}
	return u.Addresses[0], true
}

// RemoveAddress returns the address book without the given id. found is
// false when no address matched. Deleting the default promotes the first
// remaining address so the book never loses its default.
func RemoveAddress(addresses []Address, id primitive.ObjectID) ([]Address, bool) {
	out := make([]Address, 0, len(addresses))
	found := false
	wasDefault := false
	for _, a := range addresses {
		if a.ID == id {
			found = true
			wasDefault = a.IsDefault
			continue
		}
		out = append(out, a)
	}
	if found && wasDefault && len(out) > 0 {
		out[0].IsDefault = true
	}
	return out, found
}

// HasRefreshToken reports whether tokenID belongs to a live, unexpired
// session in the list.
func HasRefreshToken(tokens []RefreshToken, tokenID string, now time.Time) bool {
	for _, t := range tokens {
		if t.TokenID == tokenID && now.Before(t.ExpiresAt) {
			return true
		}
	}
	return false
}

// RemoveRefreshToken returns the list without tokenID. Expired entries are
// dropped on the way through.
func RemoveRefreshToken(tokens []RefreshToken, tokenID string, now time.Time) []RefreshToken {
	out := make([]RefreshToken, 0, len(tokens))
	for _, t := range tokens {
		if t.TokenID == tokenID || !now.Before(t.ExpiresAt) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// RotateRefreshTokens appends fresh to the list and truncates to
// MaxRefreshTokens, evicting the oldest sessions first. Expired entries are
// dropped before the cap is applied.
func RotateRefreshTokens(tokens []RefreshToken, fresh RefreshToken, now time.Time) []RefreshToken {
	out := make([]RefreshToken, 0, len(tokens)+1)
	for _, t := range tokens {
		if !now.Before(t.ExpiresAt) {
			continue
		}
		out = append(out, t)
	}
	out = append(out, fresh)
	if len(out) > MaxRefreshTokens {
		out = out[len(out)-MaxRefreshTokens:]
	}
	return out
}
