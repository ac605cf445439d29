package storage

import (
	"context"
	"fmt"
	"sync"
	"time"

	"propertyhub-backend/models"
)

// MemoryStore keeps records in insertion order for the lifetime of the
// process.
type MemoryStore struct {
	mu         sync.RWMutex
	properties []models.Property
	bookings   []models.Booking
	nextPropID uint
	nextBookID uint
	now        func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextPropID: 1, nextBookID: 1, now: time.Now}
}

func (s *MemoryStore) ListProperties(ctx context.Context) ([]models.Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Property, 0, len(s.properties))
	for _, p := range s.properties {
		out = append(out, p.Clone())
	}
	return out, nil
}

func (s *MemoryStore) GetProperty(ctx context.Context, id uint) (models.Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.propertyIndex(id)
	if i < 0 {
		return models.Property{}, fmt.Errorf("property %d: %w", id, ErrNotFound)
	}
	return s.properties[i].Clone(), nil
}

func (s *MemoryStore) CreateProperty(ctx context.Context, p *models.Property) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == 0 {
		p.ID = s.nextPropID
	} else if s.propertyIndex(p.ID) >= 0 {
		return fmt.Errorf("property %d: %w", p.ID, ErrDuplicate)
	}
	if p.ID >= s.nextPropID {
		s.nextPropID = p.ID + 1
	}

	now := s.now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	s.properties = append(s.properties, p.Clone())
	return nil
}

func (s *MemoryStore) UpdateProperty(ctx context.Context, p *models.Property) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.propertyIndex(p.ID)
	if i < 0 {
		return fmt.Errorf("property %d: %w", p.ID, ErrNotFound)
	}
	p.CreatedAt = s.properties[i].CreatedAt
	p.UpdatedAt = s.now()
	s.properties[i] = p.Clone()
	return nil
}

func (s *MemoryStore) DeleteProperty(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.propertyIndex(id)
	if i < 0 {
		return fmt.Errorf("property %d: %w", id, ErrNotFound)
	}
	s.properties = append(s.properties[:i], s.properties[i+1:]...)
	return nil
}

func (s *MemoryStore) ListBookings(ctx context.Context) ([]models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Booking, len(s.bookings))
	copy(out, s.bookings)
	return out, nil
}

func (s *MemoryStore) ListBookingsByProperty(ctx context.Context, propertyID uint) ([]models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Booking
	for _, b := range s.bookings {
		if b.PropertyID == propertyID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *MemoryStore) GetBooking(ctx context.Context, id uint) (models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.bookingIndex(id)
	if i < 0 {
		return models.Booking{}, fmt.Errorf("booking %d: %w", id, ErrNotFound)
	}
	return s.bookings[i], nil
}

func (s *MemoryStore) CreateBooking(ctx context.Context, b *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if b.ID == 0 {
		b.ID = s.nextBookID
	} else if s.bookingIndex(b.ID) >= 0 {
		return fmt.Errorf("booking %d: %w", b.ID, ErrDuplicate)
	}
	if b.ReferenceCode != "" {
		for _, existing := range s.bookings {
			if existing.ReferenceCode == b.ReferenceCode {
				return fmt.Errorf("booking reference %s: %w", b.ReferenceCode, ErrDuplicate)
			}
		}
	}
	if b.ID >= s.nextBookID {
		s.nextBookID = b.ID + 1
	}

	now := s.now()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now

	s.bookings = append(s.bookings, *b)
	return nil
}

func (s *MemoryStore) UpdateBooking(ctx context.Context, b *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.bookingIndex(b.ID)
	if i < 0 {
		return fmt.Errorf("booking %d: %w", b.ID, ErrNotFound)
	}
	b.CreatedAt = s.bookings[i].CreatedAt
	b.UpdatedAt = s.now()
	s.bookings[i] = *b
	return nil
}

func (s *MemoryStore) DeleteBooking(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.bookingIndex(id)
	if i < 0 {
		return fmt.Errorf("booking %d: %w", id, ErrNotFound)
	}
	s.bookings = append(s.bookings[:i], s.bookings[i+1:]...)
	return nil
}

func (s *MemoryStore) propertyIndex(id uint) int {
	for i := range s.properties {
		if s.properties[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *MemoryStore) bookingIndex(id uint) int {
	for i := range s.bookings {
		if s.bookings[i].ID == id {
			return i
		}
	}
	return -1
}
