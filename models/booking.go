package models

import (
	"time"
)

const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusRejected  = "rejected"
	BookingStatusCompleted = "completed"
)

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ReferenceCode string `gorm:"column:reference_code;size:64;uniqueIndex" json:"referenceCode"`
	PropertyID    uint   `gorm:"column:property_id;index" json:"propertyId"`
	PropertyTitle string `gorm:"column:property_title;size:255" json:"propertyTitle"`

	CustomerName  string `gorm:"column:customer_name;size:255" json:"customerName"`
	CustomerEmail string `gorm:"column:customer_email;size:255" json:"customerEmail"`
	CustomerPhone string `gorm:"column:customer_phone;size:64" json:"customerPhone"`

	StartDate time.Time `gorm:"column:start_date;index" json:"startDate"`
	EndDate   time.Time `gorm:"column:end_date" json:"endDate"`
	StartTime string    `gorm:"column:start_time;size:5" json:"startTime"`
	EndTime   string    `gorm:"column:end_time;size:5" json:"endTime"`
	Guests    int       `gorm:"column:guests;default:1" json:"guests"`
	Message   string    `gorm:"column:message;type:text" json:"message"`

	Status          string  `gorm:"column:status;size:32;index" json:"status"`
	RejectionReason string  `gorm:"column:rejection_reason;type:text" json:"rejectionReason,omitempty"`
	TotalAmount     float64 `gorm:"column:total_amount" json:"totalAmount"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Range returns the stay as an inclusive date range.
func (b Booking) Range() DateRange {
	return DateRange{Start: b.StartDate, End: b.EndDate}
}

// BlocksDates reports whether the booking occupies its dates for new requests.
func (b Booking) BlocksDates() bool {
	return b.Status == BookingStatusConfirmed || b.Status == BookingStatusCompleted
}

func ValidBookingStatus(s string) bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusRejected, BookingStatusCompleted:
		return true
	}
	return false
}
