// Package storage holds the listing and booking stores. The in-memory store
// is the default; GormStore persists the same records through gorm.
package storage

import (
	"context"
	"errors"

	"propertyhub-backend/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

type PropertyStore interface {
	ListProperties(ctx context.Context) ([]models.Property, error)
	GetProperty(ctx context.Context, id uint) (models.Property, error)
	CreateProperty(ctx context.Context, p *models.Property) error
	UpdateProperty(ctx context.Context, p *models.Property) error
	DeleteProperty(ctx context.Context, id uint) error
}

type BookingStore interface {
	ListBookings(ctx context.Context) ([]models.Booking, error)
	ListBookingsByProperty(ctx context.Context, propertyID uint) ([]models.Booking, error)
	GetBooking(ctx context.Context, id uint) (models.Booking, error)
	CreateBooking(ctx context.Context, b *models.Booking) error
	UpdateBooking(ctx context.Context, b *models.Booking) error
	DeleteBooking(ctx context.Context, id uint) error
}

type Store interface {
	PropertyStore
	BookingStore
}
