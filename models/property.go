package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	PropertyStatusAvailable   = "available"
	PropertyStatusRented      = "rented"
	PropertyStatusMaintenance = "maintenance"
)

// PlaceholderImage is stored when a listing is created without images.
const PlaceholderImage = "/placeholder.svg?height=200&width=300"

type Property struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Title       string  `gorm:"column:title;size:255" json:"title"`
	Location    string  `gorm:"column:location;size:255;index" json:"location"`
	Description string  `gorm:"column:description;type:text" json:"description"`
	Price       float64 `gorm:"column:price" json:"price"`
	Rating      float64 `gorm:"column:rating;default:0" json:"rating"`
	Reviews     int     `gorm:"column:reviews;default:0" json:"reviews"`
	Type        string  `gorm:"column:type;size:64" json:"type"`
	Bedrooms    int     `gorm:"column:bedrooms" json:"bedrooms"`
	Bathrooms   int     `gorm:"column:bathrooms" json:"bathrooms"`
	Featured    bool    `gorm:"column:featured;default:false" json:"featured"`
	Status      string  `gorm:"column:status;size:32;index" json:"status"`

	Amenities datatypes.JSONSlice[string] `gorm:"column:amenities" json:"amenities"`
	Images    datatypes.JSONSlice[string] `gorm:"column:images" json:"images"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Bookable reports whether new booking requests are accepted for the listing.
func (p Property) Bookable() bool {
	return p.Status == PropertyStatusAvailable
}

// Clone returns a copy that shares no slices with p.
func (p Property) Clone() Property {
	out := p
	if p.Amenities != nil {
		out.Amenities = append(datatypes.JSONSlice[string]{}, p.Amenities...)
	}
	if p.Images != nil {
		out.Images = append(datatypes.JSONSlice[string]{}, p.Images...)
	}
	return out
}

// ValidPropertyStatus reports whether s is one of the known listing states.
func ValidPropertyStatus(s string) bool {
	switch s {
	case PropertyStatusAvailable, PropertyStatusRented, PropertyStatusMaintenance:
		return true
	}
	return false
}
