package listings

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand"
	"time"

	"github.com/PzyCool/DomiHive-sub000/internal/models"
	"github.com/PzyCool/DomiHive-sub000/internal/repositories"
)

// Source produces the browsable listing set for a category. The generator
// backs the marketplace today; a real inventory feed can be swapped in
// without touching filter or handler code.
type Source interface {
	Listings(ctx context.Context, category string, seed int64) ([]models.PropertyListing, error)
}

// GeneratorSource synthesizes listings from the fixed vocabularies. The
// same (category, seed) pair always yields the same set, so a browsing
// session pages over stable data.
type GeneratorSource struct {
	now func() time.Time
}

// NewGeneratorSource creates a GeneratorSource.
func NewGeneratorSource() *GeneratorSource {
	return &GeneratorSource{now: time.Now}
}

const (
	minListings = 50
	maxListings = 84
)

// Listings synthesizes between 50 and 84 property records for the category.
func (s *GeneratorSource) Listings(_ context.Context, category string, seed int64) ([]models.PropertyListing, error) {
	if !ValidCategory(category) {
		return nil, fmt.Errorf("unknown listing category %q", category)
	}

	h := fnv.New64a()
	h.Write([]byte(category))
	rng := rand.New(rand.NewSource(seed ^ int64(h.Sum64())))

	count := minListings + rng.Intn(maxListings-minListings+1)
	now := s.now()

	result := make([]models.PropertyListing, 0, count)
	for i := 0; i < count; i++ {
		result = append(result, s.generate(rng, category, seed, i, now))
	}
	return result, nil
}

func (s *GeneratorSource) generate(rng *rand.Rand, category string, seed int64, index int, now time.Time) models.PropertyListing {
	area := models.AreaMainland
	locations := mainlandLocations
	if rng.Intn(2) == 1 {
		area = models.AreaIsland
		locations = islandLocations
	}
	location := locations[rng.Intn(len(locations))]

	band := priceBands[category][area]
	price := band.min + rng.Intn(band.max-band.min+1)
	// Round to the nearest 50k the way agents quote rents.
	price -= price % 50_000
	if price < band.min {
		price = band.min
	}

	bedrooms := 1 + rng.Intn(5)
	if category == models.CategoryStudent {
		bedrooms = 1
	}
	bathrooms := bedrooms
	if rng.Intn(3) == 0 && bathrooms > 1 {
		bathrooms--
	}

	amenityCount := 3 + rng.Intn(5)
	amenities := pickAmenities(rng, amenityCount)

	stems := titleStems[category]
	title := fmt.Sprintf("%s in %s", stems[rng.Intn(len(stems))], location)

	listedAt := now.Add(-time.Duration(rng.Intn(90*24)) * time.Hour)

	imageCount := 3 + rng.Intn(4)
	images := make([]string, 0, imageCount)
	for j := 0; j < imageCount; j++ {
		images = append(images, fmt.Sprintf("https://cdn.domihive.com/listings/%s/%d/%d.jpg", category, index, j+1))
	}

	return models.PropertyListing{
		ID:          fmt.Sprintf("DH-%s-%d-%03d", category, seed, index),
		Title:       title,
		Category:    category,
		Price:       price,
		Location:    location,
		Area:        area,
		Bedrooms:    bedrooms,
		Bathrooms:   bathrooms,
		SizeSqm:     35 + bedrooms*25 + rng.Intn(40),
		Amenities:   amenities,
		Furnishing:  furnishingOptions[rng.Intn(len(furnishingOptions))],
		PetsAllowed: rng.Intn(3) == 0,
		Verified:    rng.Intn(10) < 6,
		Featured:    rng.Intn(10) < 2,
		New:         now.Sub(listedAt) < 14*24*time.Hour,
		Images:      images,
		ListedAt:    listedAt,
	}
}

func pickAmenities(rng *rand.Rand, n int) []string {
	perm := rng.Perm(len(amenityVocab))
	if n > len(perm) {
		n = len(perm)
	}
	picked := make([]string, 0, n)
	for _, idx := range perm[:n] {
		picked = append(picked, amenityVocab[idx])
	}
	return picked
}

// CuratedSource serves agent-submitted listings straight from the curated
// store; the seed is ignored because curated data is stable by itself.
type CuratedSource struct {
	repo repositories.ListingRepository
}

// NewCuratedSource creates a CuratedSource over the listing repository.
func NewCuratedSource(repo repositories.ListingRepository) *CuratedSource {
	return &CuratedSource{repo: repo}
}

func (s *CuratedSource) Listings(ctx context.Context, category string, _ int64) ([]models.PropertyListing, error) {
	if !ValidCategory(category) {
		return nil, fmt.Errorf("unknown listing category %q", category)
	}
	return s.repo.ListByCategory(ctx, category)
}

// GetByID resolves one curated listing directly.
func (s *CuratedSource) GetByID(ctx context.Context, id string) (*models.PropertyListing, error) {
	return s.repo.GetByID(ctx, id)
}
