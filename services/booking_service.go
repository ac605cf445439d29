package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"propertyhub-backend/metrics"
	"propertyhub-backend/models"
	"propertyhub-backend/storage"
)

var (
	ErrBookingNotFound      = errors.New("Booking not found")
	ErrPropertyNotBookable  = errors.New("This property is not accepting bookings")
	ErrInvalidBookingStatus = errors.New("Status must be one of pending, confirmed, rejected, completed")
	ErrInvalidTransition    = errors.New("Booking cannot change to the requested status")
)

// transitions lists the admin actions allowed from each status.
var transitions = map[string][]string{
	models.BookingStatusPending:   {models.BookingStatusConfirmed, models.BookingStatusRejected},
	models.BookingStatusConfirmed: {models.BookingStatusCompleted},
}

func canTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type BookingStats struct {
	Total     int     `json:"total"`
	Pending   int     `json:"pending"`
	Confirmed int     `json:"confirmed"`
	Revenue   float64 `json:"revenue"`
}

// BookingService validates customer submissions and applies admin decisions.
// Check-then-write sequences hold mu so two requests cannot claim the same
// dates.
type BookingService struct {
	Properties storage.PropertyStore
	Bookings   storage.BookingStore
	Validator  Validator

	mu sync.Mutex
}

func NewBookingService(props storage.PropertyStore, bookings storage.BookingStore, loc *time.Location) *BookingService {
	return &BookingService{
		Properties: props,
		Bookings:   bookings,
		Validator:  Validator{Now: time.Now, Location: loc},
	}
}

func (s *BookingService) property(ctx context.Context, id uint) (models.Property, error) {
	p, err := s.Properties.GetProperty(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return p, ErrPropertyNotFound
	}
	return p, err
}

func (s *BookingService) booking(ctx context.Context, id uint) (models.Booking, error) {
	b, err := s.Bookings.GetBooking(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return b, ErrBookingNotFound
	}
	return b, err
}

// occupying returns the bookings of a property that block their dates,
// leaving out skipID.
func (s *BookingService) occupying(ctx context.Context, propertyID, skipID uint) ([]models.Booking, error) {
	list, err := s.Bookings.ListBookingsByProperty(ctx, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings for property %d: %w", propertyID, err)
	}
	out := list[:0]
	for _, b := range list {
		if b.ID != skipID && b.BlocksDates() {
			out = append(out, b)
		}
	}
	return out, nil
}

// Quote prices a stay for the property without reserving anything.
func (s *BookingService) Quote(ctx context.Context, propertyID uint, start, end string) (Quote, error) {
	p, err := s.property(ctx, propertyID)
	if err != nil {
		return Quote{}, err
	}
	return s.Validator.Quote(p.Price, start, end), nil
}

// Submit validates req against the property's occupied dates and stores it
// as a pending booking.
func (s *BookingService) Submit(ctx context.Context, propertyID uint, req BookingRequest) (models.Booking, error) {
	p, err := s.property(ctx, propertyID)
	if err != nil {
		return models.Booking{}, err
	}
	if !p.Bookable() {
		metrics.IncValidationFailure("not_bookable")
		return models.Booking{}, ErrPropertyNotBookable
	}
	if req.Guests == 0 {
		req.Guests = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.occupying(ctx, propertyID, 0)
	if err != nil {
		return models.Booking{}, err
	}
	quote, err := s.Validator.Validate(p.Price, req, existing)
	if err != nil {
		metrics.IncValidationFailure(failureReason(err))
		return models.Booking{}, err
	}

	b := models.Booking{
		ReferenceCode: uuid.NewString(),
		PropertyID:    p.ID,
		PropertyTitle: p.Title,
		CustomerName:  strings.TrimSpace(req.ContactName),
		CustomerEmail: strings.TrimSpace(req.ContactEmail),
		CustomerPhone: strings.TrimSpace(req.ContactPhone),
		StartDate:     quote.StartDate,
		EndDate:       quote.EndDate,
		StartTime:     strings.TrimSpace(req.StartTime),
		EndTime:       strings.TrimSpace(req.EndTime),
		Guests:        req.Guests,
		Message:       strings.TrimSpace(req.Message),
		Status:        models.BookingStatusPending,
		TotalAmount:   quote.Total,
	}
	if err := s.Bookings.CreateBooking(ctx, &b); err != nil {
		return models.Booking{}, fmt.Errorf("failed to create booking: %w", err)
	}

	metrics.IncBookingSubmitted()
	log.Info().
		Uint("booking_id", b.ID).
		Uint("property_id", p.ID).
		Str("reference", b.ReferenceCode).
		Float64("total", b.TotalAmount).
		Msg("booking request submitted")
	return b, nil
}

// List returns bookings newest first, optionally only those with status.
func (s *BookingService) List(ctx context.Context, status string) ([]models.Booking, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if status != "" && !models.ValidBookingStatus(status) {
		return nil, ErrInvalidBookingStatus
	}
	all, err := s.Bookings.ListBookings(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Booking, 0, len(all))
	for _, b := range all {
		if status == "" || b.Status == status {
			out = append(out, b)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (s *BookingService) ListForProperty(ctx context.Context, propertyID uint) ([]models.Booking, error) {
	if _, err := s.property(ctx, propertyID); err != nil {
		return nil, err
	}
	list, err := s.Bookings.ListBookingsByProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	sortNewestFirst(list)
	return list, nil
}

func (s *BookingService) Get(ctx context.Context, id uint) (models.Booking, error) {
	return s.booking(ctx, id)
}

// Confirm accepts a pending booking. The stay is checked again against the
// property's other occupied dates.
func (s *BookingService) Confirm(ctx context.Context, id uint) (models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.booking(ctx, id)
	if err != nil {
		return b, err
	}
	if !canTransition(b.Status, models.BookingStatusConfirmed) {
		return b, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, b.Status, models.BookingStatusConfirmed)
	}
	existing, err := s.occupying(ctx, b.PropertyID, b.ID)
	if err != nil {
		return b, err
	}
	if !CheckAvailability(b.Range(), existing) {
		return b, ErrDatesUnavailable
	}
	return s.setStatus(ctx, b, models.BookingStatusConfirmed, "")
}

func (s *BookingService) Reject(ctx context.Context, id uint, reason string) (models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.booking(ctx, id)
	if err != nil {
		return b, err
	}
	if !canTransition(b.Status, models.BookingStatusRejected) {
		return b, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, b.Status, models.BookingStatusRejected)
	}
	return s.setStatus(ctx, b, models.BookingStatusRejected, strings.TrimSpace(reason))
}

func (s *BookingService) Complete(ctx context.Context, id uint) (models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.booking(ctx, id)
	if err != nil {
		return b, err
	}
	if !canTransition(b.Status, models.BookingStatusCompleted) {
		return b, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, b.Status, models.BookingStatusCompleted)
	}
	return s.setStatus(ctx, b, models.BookingStatusCompleted, b.RejectionReason)
}

func (s *BookingService) setStatus(ctx context.Context, b models.Booking, status, reason string) (models.Booking, error) {
	from := b.Status
	b.Status = status
	b.RejectionReason = reason
	if err := s.Bookings.UpdateBooking(ctx, &b); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return b, ErrBookingNotFound
		}
		return b, fmt.Errorf("failed to update booking %d: %w", b.ID, err)
	}
	metrics.IncAdminDecision(status)
	log.Info().Uint("booking_id", b.ID).Str("from", from).Str("to", status).Msg("booking status changed")
	return b, nil
}

func (s *BookingService) Delete(ctx context.Context, id uint) error {
	if err := s.Bookings.DeleteBooking(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrBookingNotFound
		}
		return fmt.Errorf("failed to delete booking: %w", err)
	}
	return nil
}

// Stats counts bookings by status. Revenue sums confirmed bookings only.
func (s *BookingService) Stats(ctx context.Context) (BookingStats, error) {
	all, err := s.Bookings.ListBookings(ctx)
	if err != nil {
		return BookingStats{}, err
	}
	st := BookingStats{Total: len(all)}
	for _, b := range all {
		switch b.Status {
		case models.BookingStatusPending:
			st.Pending++
		case models.BookingStatusConfirmed:
			st.Confirmed++
			st.Revenue += b.TotalAmount
		}
	}
	return st, nil
}

func sortNewestFirst(list []models.Booking) {
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID > list[j].ID
	})
}
