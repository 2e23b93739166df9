package models

import "time"

// Flavor is one row of the flavors catalog.
type Flavor struct {
	// ID is generated by the store and never changes.
	ID int64 `json:"id"`

	// Name is the display name (e.g., "Mint Chocolate Chip").
	Name string `json:"name"`

	// IsFavorite marks flavors highlighted in the catalog.
	IsFavorite bool `json:"is_favorite"`

	// CreatedAt is set once by the store on insert.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is refreshed by the store on every update.
	UpdatedAt time.Time `json:"updated_at"`
}

// FlavorInput carries the writable fields of a Flavor as decoded from a
// request body. Nil pointers mean the field was absent.
//
// Name is passed through to the store unchecked: a nil Name reaches the
// NOT NULL constraint and fails there.
type FlavorInput struct {
	Name       *string `json:"name"`
	IsFavorite *bool   `json:"is_favorite"`
}
