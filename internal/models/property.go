package models

import "time"

// Listing categories offered on the marketplace.
const (
	CategoryStudent    = "student"
	CategoryTenant     = "tenant"
	CategoryRent       = "rent"
	CategoryBuy        = "buy"
	CategoryShortlet   = "shortlet"
	CategoryCommercial = "commercial"
)

// Lagos is split into two coarse areas for pricing and filtering.
const (
	AreaMainland = "mainland"
	AreaIsland   = "island"
)

// PropertyListing is a browsable property record. Generated listings are
// ephemeral (re-synthesized per browsing session); curated listings live in
// MongoDB with the same shape.
type PropertyListing struct {
	ID          string    `json:"id" bson:"id"`
	Title       string    `json:"title" bson:"title"`
	Category    string    `json:"category" bson:"category"`
	Price       int       `json:"price" bson:"price"` // annual rent (or sale price), NGN
	Location    string    `json:"location" bson:"location"`
	Area        string    `json:"area" bson:"area"` // mainland | island
	Bedrooms    int       `json:"bedrooms" bson:"bedrooms"`
	Bathrooms   int       `json:"bathrooms" bson:"bathrooms"`
	SizeSqm     int       `json:"size_sqm" bson:"sizeSqm"`
	Amenities   []string  `json:"amenities" bson:"amenities"`
	Furnishing  string    `json:"furnishing" bson:"furnishing"`
	PetsAllowed bool      `json:"pets_allowed" bson:"petsAllowed"`
	Verified    bool      `json:"verified" bson:"verified"`
	Featured    bool      `json:"featured" bson:"featured"`
	New         bool      `json:"new" bson:"new"`
	Images      []string  `json:"images" bson:"images"`
	ListedAt    time.Time `json:"listed_at" bson:"listedAt"`

	// IsFavorited is filled in per requesting user, never stored.
	IsFavorited bool `json:"is_favorited" bson:"-"`
}
