package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"

	"propertyhub-backend/metrics"
	"propertyhub-backend/models"
	"propertyhub-backend/storage"
)

var (
	ErrPropertyNotFound      = errors.New("Property not found")
	ErrPropertyFieldsMissing = errors.New("Please fill in all required fields")
	ErrPropertyNegative      = errors.New("Price, bedrooms and bathrooms must not be negative")
	ErrUnknownAmenity        = errors.New("Unknown amenity")
	ErrInvalidPropertyStatus = errors.New("Status must be one of available, rented, maintenance")
	ErrPropertyHasBookings   = errors.New("Property has pending or confirmed bookings")
)

// PropertyFilter narrows the catalog. Zero values do not filter.
type PropertyFilter struct {
	Query       string  `json:"q,omitempty"`
	Type        string  `json:"type,omitempty"`
	Status      string  `json:"status,omitempty"`
	Featured    *bool   `json:"featured,omitempty"`
	MinPrice    float64 `json:"minPrice,omitempty"`
	MaxPrice    float64 `json:"maxPrice,omitempty"`
	MinBedrooms int     `json:"minBedrooms,omitempty"`
}

func (f PropertyFilter) Match(p models.Property) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		if !strings.Contains(strings.ToLower(p.Title), q) && !strings.Contains(strings.ToLower(p.Location), q) {
			return false
		}
	}
	if f.Type != "" && !strings.EqualFold(p.Type, f.Type) {
		return false
	}
	if f.Status != "" && !strings.EqualFold(p.Status, f.Status) {
		return false
	}
	if f.Featured != nil && p.Featured != *f.Featured {
		return false
	}
	if f.MinPrice > 0 && p.Price < f.MinPrice {
		return false
	}
	if f.MaxPrice > 0 && p.Price > f.MaxPrice {
		return false
	}
	if f.MinBedrooms > 0 && p.Bedrooms < f.MinBedrooms {
		return false
	}
	return true
}

// cacheKey hashes the normalized filter so equivalent queries share an entry.
func (f PropertyFilter) cacheKey() string {
	f.Query = strings.ToLower(strings.TrimSpace(f.Query))
	f.Type = strings.ToLower(f.Type)
	f.Status = strings.ToLower(f.Status)
	raw, _ := json.Marshal(f)
	sum := sha256.Sum256(raw)
	return "properties:" + hex.EncodeToString(sum[:])
}

// PropertyInput is the admin form payload. Pointers distinguish a missing
// number from zero.
type PropertyInput struct {
	Title       string   `json:"title"`
	Location    string   `json:"location"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	Type        string   `json:"type"`
	Bedrooms    *int     `json:"bedrooms"`
	Bathrooms   *int     `json:"bathrooms"`
	Featured    bool     `json:"featured"`
	Status      string   `json:"status"`
	Amenities   []string `json:"amenities"`
	Images      []string `json:"images"`
}

func (in PropertyInput) validate() (status string, amenities []string, err error) {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Location) == "" ||
		strings.TrimSpace(in.Type) == "" || in.Price == nil || in.Bedrooms == nil || in.Bathrooms == nil {
		return "", nil, ErrPropertyFieldsMissing
	}
	if *in.Price < 0 || *in.Bedrooms < 0 || *in.Bathrooms < 0 {
		return "", nil, ErrPropertyNegative
	}

	status = strings.ToLower(strings.TrimSpace(in.Status))
	if status == "" {
		status = models.PropertyStatusAvailable
	}
	if !models.ValidPropertyStatus(status) {
		return "", nil, ErrInvalidPropertyStatus
	}

	seen := map[string]bool{}
	amenities = []string{}
	for _, a := range in.Amenities {
		a = strings.ToLower(strings.TrimSpace(a))
		if a == "" || seen[a] {
			continue
		}
		if _, ok := models.LookupAmenity(a); !ok {
			return "", nil, fmt.Errorf("%w: %s", ErrUnknownAmenity, a)
		}
		seen[a] = true
		amenities = append(amenities, a)
	}
	return status, amenities, nil
}

func cleanImages(images []string) []string {
	out := []string{}
	for _, img := range images {
		if img = strings.TrimSpace(img); img != "" {
			out = append(out, img)
		}
	}
	return out
}

type PropertyStats struct {
	Total     int `json:"total"`
	Available int `json:"available"`
	Rented    int `json:"rented"`
	Featured  int `json:"featured"`
}

// PropertyService owns the catalog. It needs the booking side of the store
// so that deleting a listing can settle its bookings.
type PropertyService struct {
	Store storage.Store
	Cache storage.CatalogCache
}

func NewPropertyService(store storage.Store, cache storage.CatalogCache) *PropertyService {
	if cache == nil {
		cache = storage.NoopCache{}
	}
	return &PropertyService{Store: store, Cache: cache}
}

// List returns the catalog in id order, served from the cache when possible.
// A cache failure falls back to the store.
func (s *PropertyService) List(ctx context.Context, f PropertyFilter) ([]models.Property, error) {
	slot, err := s.Cache.Resolve(ctx, f.cacheKey())
	if err != nil {
		log.Warn().Err(err).Msg("catalog cache unavailable")
		slot = ""
	}
	if slot != "" {
		var cached []models.Property
		hit, err := s.Cache.Get(ctx, slot, &cached)
		if err != nil {
			log.Warn().Err(err).Str("key", slot).Msg("catalog cache read failed")
		}
		if hit {
			return cached, nil
		}
	}

	all, err := s.Store.ListProperties(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Property, 0, len(all))
	for _, p := range all {
		if f.Match(p) {
			out = append(out, p)
		}
	}

	if slot != "" {
		if err := s.Cache.Set(ctx, slot, out); err != nil {
			log.Warn().Err(err).Str("key", slot).Msg("catalog cache write failed")
		}
	}
	return out, nil
}

func (s *PropertyService) Featured(ctx context.Context) ([]models.Property, error) {
	featured := true
	return s.List(ctx, PropertyFilter{Featured: &featured})
}

func (s *PropertyService) Get(ctx context.Context, id uint) (models.Property, error) {
	p, err := s.Store.GetProperty(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return p, ErrPropertyNotFound
	}
	return p, err
}

func (s *PropertyService) Create(ctx context.Context, in PropertyInput) (models.Property, error) {
	status, amenities, err := in.validate()
	if err != nil {
		return models.Property{}, err
	}
	images := cleanImages(in.Images)
	if len(images) == 0 {
		images = []string{models.PlaceholderImage}
	}

	p := models.Property{
		Title:       strings.TrimSpace(in.Title),
		Location:    strings.TrimSpace(in.Location),
		Description: strings.TrimSpace(in.Description),
		Price:       *in.Price,
		Type:        strings.TrimSpace(in.Type),
		Bedrooms:    *in.Bedrooms,
		Bathrooms:   *in.Bathrooms,
		Featured:    in.Featured,
		Status:      status,
		Amenities:   datatypes.JSONSlice[string](amenities),
		Images:      datatypes.JSONSlice[string](images),
	}
	if err := s.Store.CreateProperty(ctx, &p); err != nil {
		return models.Property{}, fmt.Errorf("failed to create property: %w", err)
	}

	metrics.IncPropertyMutation("create")
	s.invalidate(ctx)
	log.Info().Uint("property_id", p.ID).Str("title", p.Title).Msg("property created")
	return p, nil
}

// Update replaces the editable fields. Rating and review count are kept, and
// the current images stay when none are sent.
func (s *PropertyService) Update(ctx context.Context, id uint, in PropertyInput) (models.Property, error) {
	status, amenities, err := in.validate()
	if err != nil {
		return models.Property{}, err
	}
	p, err := s.Get(ctx, id)
	if err != nil {
		return models.Property{}, err
	}

	p.Title = strings.TrimSpace(in.Title)
	p.Location = strings.TrimSpace(in.Location)
	p.Description = strings.TrimSpace(in.Description)
	p.Price = *in.Price
	p.Type = strings.TrimSpace(in.Type)
	p.Bedrooms = *in.Bedrooms
	p.Bathrooms = *in.Bathrooms
	p.Featured = in.Featured
	p.Status = status
	p.Amenities = datatypes.JSONSlice[string](amenities)
	if images := cleanImages(in.Images); len(images) > 0 {
		p.Images = datatypes.JSONSlice[string](images)
	}

	if err := s.Store.UpdateProperty(ctx, &p); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Property{}, ErrPropertyNotFound
		}
		return models.Property{}, fmt.Errorf("failed to update property: %w", err)
	}

	metrics.IncPropertyMutation("update")
	s.invalidate(ctx)
	return p, nil
}

// Delete removes a listing that has no pending or confirmed bookings. Its
// rejected and completed bookings are removed with it.
func (s *PropertyService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	bookings, err := s.Store.ListBookingsByProperty(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load bookings for property %d: %w", id, err)
	}
	for _, b := range bookings {
		if b.Status == models.BookingStatusPending || b.Status == models.BookingStatusConfirmed {
			return ErrPropertyHasBookings
		}
	}

	if err := s.Store.DeleteProperty(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrPropertyNotFound
		}
		return fmt.Errorf("failed to delete property: %w", err)
	}
	for _, b := range bookings {
		if err := s.Store.DeleteBooking(ctx, b.ID); err != nil && !errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("failed to delete booking %d of property %d: %w", b.ID, id, err)
		}
	}

	metrics.IncPropertyMutation("delete")
	s.invalidate(ctx)
	log.Info().Uint("property_id", id).Int("bookings_removed", len(bookings)).Msg("property deleted")
	return nil
}

func (s *PropertyService) Stats(ctx context.Context) (PropertyStats, error) {
	all, err := s.Store.ListProperties(ctx)
	if err != nil {
		return PropertyStats{}, err
	}
	st := PropertyStats{Total: len(all)}
	for _, p := range all {
		switch p.Status {
		case models.PropertyStatusAvailable:
			st.Available++
		case models.PropertyStatusRented:
			st.Rented++
		}
		if p.Featured {
			st.Featured++
		}
	}
	return st, nil
}

func (s *PropertyService) invalidate(ctx context.Context) {
	if err := s.Cache.Invalidate(ctx); err != nil {
		log.Warn().Err(err).Msg("catalog cache invalidation failed")
	}
}
