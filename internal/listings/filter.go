package listings

import (
	"sort"

	"github.com/PzyCool/DomiHive-sub000/internal/models"
)

// Criteria is one browsing filter. Zero-valued dimensions are ignored.
// Non-empty dimensions are ANDed together; multi-select dimensions are ORed
// within themselves; selected amenities must ALL be present.
type Criteria struct {
	MinPrice     int
	MaxPrice     int
	Locations    []string
	Areas        []string
	Bedrooms     []int
	Bathrooms    []int
	Amenities    []string
	Furnishing   []string
	PetsAllowed  *bool
	VerifiedOnly bool
}

// Sort keys accepted by SortListings.
const (
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortNewest    = "newest"
	SortFeatured  = "featured"
	SortVerified  = "verified"
)

// Matches reports whether the listing satisfies every non-empty dimension
// of the criteria. Price bounds are inclusive; an inverted range
// (min > max) matches nothing, by contract.
func (c Criteria) Matches(l models.PropertyListing) bool {
	if c.MinPrice > 0 && l.Price < c.MinPrice {
		return false
	}
	if c.MaxPrice > 0 && l.Price > c.MaxPrice {
		return false
	}
	if len(c.Locations) > 0 && !containsString(c.Locations, l.Location) {
		return false
	}
	if len(c.Areas) > 0 && !containsString(c.Areas, l.Area) {
		return false
	}
	if len(c.Bedrooms) > 0 && !containsInt(c.Bedrooms, l.Bedrooms) {
		return false
	}
	if len(c.Bathrooms) > 0 && !containsInt(c.Bathrooms, l.Bathrooms) {
		return false
	}
	if len(c.Furnishing) > 0 && !containsString(c.Furnishing, l.Furnishing) {
		return false
	}
	if c.PetsAllowed != nil && l.PetsAllowed != *c.PetsAllowed {
		return false
	}
	if c.VerifiedOnly && !l.Verified {
		return false
	}
	for _, want := range c.Amenities {
		if !containsString(l.Amenities, want) {
			return false
		}
	}
	return true
}

// Empty reports whether no dimension is set.
func (c Criteria) Empty() bool {
	return c.MinPrice == 0 && c.MaxPrice == 0 &&
		len(c.Locations) == 0 && len(c.Areas) == 0 &&
		len(c.Bedrooms) == 0 && len(c.Bathrooms) == 0 &&
		len(c.Amenities) == 0 && len(c.Furnishing) == 0 &&
		c.PetsAllowed == nil && !c.VerifiedOnly
}

// Filter returns the listings matching the criteria. The input slice is
// never mutated.
func Filter(in []models.PropertyListing, c Criteria) []models.PropertyListing {
	out := make([]models.PropertyListing, 0, len(in))
	for _, l := range in {
		if c.Matches(l) {
			out = append(out, l)
		}
	}
	return out
}

// SortListings orders a copy of the listings by the given key. Unknown keys
// leave the original order.
func SortListings(in []models.PropertyListing, key string) []models.PropertyListing {
	out := make([]models.PropertyListing, len(in))
	copy(out, in)

	switch key {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case SortNewest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].ListedAt.After(out[j].ListedAt) })
	case SortFeatured:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Featured && !out[j].Featured })
	case SortVerified:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Verified && !out[j].Verified })
	}
	return out
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

func containsInt(haystack []int, needle int) bool {
	for _, n := range haystack {
		if n == needle {
			return true
		}
	}
	return false
}
