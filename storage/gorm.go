package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	mysqlerr "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"propertyhub-backend/models"
)

// GormStore persists listings and bookings in a SQL database.
type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

// AutoMigrate creates or updates the tables in parent->child order.
func (s *GormStore) AutoMigrate() error {
	return s.DB.AutoMigrate(
		&models.Property{},
		&models.Booking{},
	)
}

func (s *GormStore) ListProperties(ctx context.Context) ([]models.Property, error) {
	var list []models.Property
	if err := s.DB.WithContext(ctx).Order("id ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve properties: %w", err)
	}
	return list, nil
}

func (s *GormStore) GetProperty(ctx context.Context, id uint) (models.Property, error) {
	var p models.Property
	if err := s.DB.WithContext(ctx).First(&p, id).Error; err != nil {
		return p, translate(fmt.Sprintf("property %d", id), err)
	}
	return p, nil
}

func (s *GormStore) CreateProperty(ctx context.Context, p *models.Property) error {
	if err := s.DB.WithContext(ctx).Create(p).Error; err != nil {
		return translate("create property", err)
	}
	return nil
}

func (s *GormStore) UpdateProperty(ctx context.Context, p *models.Property) error {
	res := s.DB.WithContext(ctx).
		Model(&models.Property{}).
		Where("id = ?", p.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(p)
	if res.Error != nil {
		return translate(fmt.Sprintf("update property %d", p.ID), res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("property %d: %w", p.ID, ErrNotFound)
	}
	return nil
}

func (s *GormStore) DeleteProperty(ctx context.Context, id uint) error {
	res := s.DB.WithContext(ctx).Delete(&models.Property{}, id)
	if res.Error != nil {
		return translate(fmt.Sprintf("delete property %d", id), res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("property %d: %w", id, ErrNotFound)
	}
	return nil
}

func (s *GormStore) ListBookings(ctx context.Context) ([]models.Booking, error) {
	var list []models.Booking
	if err := s.DB.WithContext(ctx).Order("id ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings: %w", err)
	}
	return list, nil
}

func (s *GormStore) ListBookingsByProperty(ctx context.Context, propertyID uint) ([]models.Booking, error) {
	var list []models.Booking
	if err := s.DB.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("id ASC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings for property %d: %w", propertyID, err)
	}
	return list, nil
}

func (s *GormStore) GetBooking(ctx context.Context, id uint) (models.Booking, error) {
	var b models.Booking
	if err := s.DB.WithContext(ctx).First(&b, id).Error; err != nil {
		return b, translate(fmt.Sprintf("booking %d", id), err)
	}
	return b, nil
}

func (s *GormStore) CreateBooking(ctx context.Context, b *models.Booking) error {
	if err := s.DB.WithContext(ctx).Create(b).Error; err != nil {
		return translate("create booking", err)
	}
	return nil
}

func (s *GormStore) UpdateBooking(ctx context.Context, b *models.Booking) error {
	res := s.DB.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", b.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(b)
	if res.Error != nil {
		return translate(fmt.Sprintf("update booking %d", b.ID), res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("booking %d: %w", b.ID, ErrNotFound)
	}
	return nil
}

func (s *GormStore) DeleteBooking(ctx context.Context, id uint) error {
	res := s.DB.WithContext(ctx).Delete(&models.Booking{}, id)
	if res.Error != nil {
		return translate(fmt.Sprintf("delete booking %d", id), res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("booking %d: %w", id, ErrNotFound)
	}
	return nil
}

// translate maps driver errors onto the package sentinels.
func translate(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%s: %w", op, ErrDuplicate)
	}
	var myErr *mysqlerr.MySQLError
	if errors.As(err, &myErr) && myErr.Number == 1062 {
		return fmt.Errorf("%s: %w", op, ErrDuplicate)
	}
	// sqlite reports constraint violations only through the message
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return fmt.Errorf("%s: %w", op, ErrDuplicate)
	}
	return fmt.Errorf("%s: %w", op, err)
}
