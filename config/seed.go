package config

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"

	"propertyhub-backend/models"
	"propertyhub-backend/storage"
)

//go:embed seed.yaml
var seedYAML []byte

type seedProperty struct {
	ID          uint     `yaml:"id"`
	Title       string   `yaml:"title"`
	Location    string   `yaml:"location"`
	Description string   `yaml:"description"`
	Price       float64  `yaml:"price"`
	Rating      float64  `yaml:"rating"`
	Reviews     int      `yaml:"reviews"`
	Type        string   `yaml:"type"`
	Bedrooms    int      `yaml:"bedrooms"`
	Bathrooms   int      `yaml:"bathrooms"`
	Featured    bool     `yaml:"featured"`
	Status      string   `yaml:"status"`
	Amenities   []string `yaml:"amenities"`
	Images      []string `yaml:"images"`
}

type seedBooking struct {
	ID              uint    `yaml:"id"`
	PropertyID      uint    `yaml:"property_id"`
	CustomerName    string  `yaml:"customer_name"`
	CustomerEmail   string  `yaml:"customer_email"`
	CustomerPhone   string  `yaml:"customer_phone"`
	StartDate       string  `yaml:"start_date"`
	EndDate         string  `yaml:"end_date"`
	StartTime       string  `yaml:"start_time"`
	EndTime         string  `yaml:"end_time"`
	Guests          int     `yaml:"guests"`
	Message         string  `yaml:"message"`
	Status          string  `yaml:"status"`
	RejectionReason string  `yaml:"rejection_reason"`
	CreatedAt       string  `yaml:"created_at"`
	TotalAmount     float64 `yaml:"total_amount"`
}

type seedFile struct {
	Properties []seedProperty `yaml:"properties"`
	Bookings   []seedBooking  `yaml:"bookings"`
}

// SeedStore loads the mock catalog and bookings when the store holds no
// properties yet. Dates are read as local midnight in loc.
func SeedStore(ctx context.Context, store storage.Store, loc *time.Location) error {
	existing, err := store.ListProperties(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		log.Info().Int("properties", len(existing)).Msg("store already seeded")
		return nil
	}
	if loc == nil {
		loc = time.Local
	}

	var data seedFile
	if err := yaml.Unmarshal(seedYAML, &data); err != nil {
		return fmt.Errorf("parse seed data: %w", err)
	}

	titles := map[uint]string{}
	for _, sp := range data.Properties {
		images := sp.Images
		if len(images) == 0 {
			images = []string{models.PlaceholderImage}
		}
		amenities := sp.Amenities
		if amenities == nil {
			amenities = []string{}
		}
		p := models.Property{
			ID:          sp.ID,
			Title:       sp.Title,
			Location:    sp.Location,
			Description: sp.Description,
			Price:       sp.Price,
			Rating:      sp.Rating,
			Reviews:     sp.Reviews,
			Type:        sp.Type,
			Bedrooms:    sp.Bedrooms,
			Bathrooms:   sp.Bathrooms,
			Featured:    sp.Featured,
			Status:      sp.Status,
			Amenities:   datatypes.JSONSlice[string](amenities),
			Images:      datatypes.JSONSlice[string](images),
		}
		if err := store.CreateProperty(ctx, &p); err != nil {
			return fmt.Errorf("seed property %d: %w", sp.ID, err)
		}
		titles[p.ID] = p.Title
	}

	for _, sb := range data.Bookings {
		start, err := time.ParseInLocation("2006-01-02", sb.StartDate, loc)
		if err != nil {
			return fmt.Errorf("seed booking %d start_date: %w", sb.ID, err)
		}
		end, err := time.ParseInLocation("2006-01-02", sb.EndDate, loc)
		if err != nil {
			return fmt.Errorf("seed booking %d end_date: %w", sb.ID, err)
		}
		created, err := time.Parse(time.RFC3339, sb.CreatedAt)
		if err != nil {
			return fmt.Errorf("seed booking %d created_at: %w", sb.ID, err)
		}
		b := models.Booking{
			ID:              sb.ID,
			ReferenceCode:   uuid.NewString(),
			PropertyID:      sb.PropertyID,
			PropertyTitle:   titles[sb.PropertyID],
			CustomerName:    sb.CustomerName,
			CustomerEmail:   sb.CustomerEmail,
			CustomerPhone:   sb.CustomerPhone,
			StartDate:       start,
			EndDate:         end,
			StartTime:       sb.StartTime,
			EndTime:         sb.EndTime,
			Guests:          sb.Guests,
			Message:         sb.Message,
			Status:          sb.Status,
			RejectionReason: sb.RejectionReason,
			TotalAmount:     sb.TotalAmount,
			CreatedAt:       created,
		}
		if err := store.CreateBooking(ctx, &b); err != nil {
			return fmt.Errorf("seed booking %d: %w", sb.ID, err)
		}
	}

	log.Info().
		Int("properties", len(data.Properties)).
		Int("bookings", len(data.Bookings)).
		Msg("seed data loaded")
	return nil
}
