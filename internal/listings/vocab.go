package listings

import "github.com/PzyCool/DomiHive-sub000/internal/models"

// Fixed vocabularies the generator draws from. Locations are split by the
// two coarse Lagos areas used for pricing and filtering.

var mainlandLocations = []string{
	"Yaba", "Surulere", "Ikeja", "Gbagada", "Maryland",
	"Ogudu", "Magodo", "Ketu", "Ilupeju", "Ojota",
}

var islandLocations = []string{
	"Lekki Phase 1", "Ikoyi", "Victoria Island", "Ajah",
	"Oniru", "Chevron", "Ikate", "Osapa London", "Sangotedo",
}

var amenityVocab = []string{
	"24/7 Power", "Borehole Water", "Security", "Parking Space",
	"Fitted Kitchen", "Air Conditioning", "Swimming Pool", "Gym",
	"Elevator", "CCTV", "Balcony", "Gated Estate",
}

var furnishingOptions = []string{"unfurnished", "semi-furnished", "furnished"}

var titleStems = map[string][]string{
	models.CategoryStudent:    {"Self-Contain Studio", "Shared Apartment Room", "Mini Flat"},
	models.CategoryTenant:     {"2 Bedroom Flat", "3 Bedroom Apartment", "Mini Flat", "Terrace Duplex"},
	models.CategoryRent:       {"2 Bedroom Flat", "3 Bedroom Apartment", "4 Bedroom Duplex", "Mini Flat"},
	models.CategoryBuy:        {"4 Bedroom Detached Duplex", "3 Bedroom Terrace", "5 Bedroom Mansion", "Serviced Plot"},
	models.CategoryShortlet:   {"Luxury Studio Shortlet", "1 Bedroom Serviced Apartment", "2 Bedroom Shortlet"},
	models.CategoryCommercial: {"Open-Plan Office Space", "Retail Shop", "Warehouse Unit", "Co-working Floor"},
}

// priceBand is an inclusive annual price range in NGN.
type priceBand struct {
	min, max int
}

// Price bands keyed by category, then area. Island commands roughly double
// mainland rents across the board.
var priceBands = map[string]map[string]priceBand{
	models.CategoryStudent: {
		models.AreaMainland: {150_000, 600_000},
		models.AreaIsland:   {400_000, 1_200_000},
	},
	models.CategoryTenant: {
		models.AreaMainland: {500_000, 2_500_000},
		models.AreaIsland:   {1_500_000, 6_000_000},
	},
	models.CategoryRent: {
		models.AreaMainland: {500_000, 3_000_000},
		models.AreaIsland:   {1_500_000, 8_000_000},
	},
	models.CategoryBuy: {
		models.AreaMainland: {25_000_000, 150_000_000},
		models.AreaIsland:   {60_000_000, 500_000_000},
	},
	models.CategoryShortlet: {
		models.AreaMainland: {1_000_000, 4_000_000},
		models.AreaIsland:   {2_500_000, 12_000_000},
	},
	models.CategoryCommercial: {
		models.AreaMainland: {1_500_000, 10_000_000},
		models.AreaIsland:   {4_000_000, 30_000_000},
	},
}

// Categories lists every browsable listing category.
var Categories = []string{
	models.CategoryStudent,
	models.CategoryTenant,
	models.CategoryRent,
	models.CategoryBuy,
	models.CategoryShortlet,
	models.CategoryCommercial,
}

// ValidCategory reports whether the category is browsable.
func ValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}
