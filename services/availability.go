package services

import (
	"errors"
	"strings"
	"time"

	"propertyhub-backend/models"
)

// DateLayout is the wire format for booking dates.
const DateLayout = "2006-01-02"

const (
	MinGuests = 1
	MaxGuests = 8
)

// Validation failures carry the message shown to the customer.
var (
	ErrDatesRequired    = errors.New("Please select both start and end dates")
	ErrInvalidDate      = errors.New("Invalid date format, expected YYYY-MM-DD")
	ErrEndBeforeStart   = errors.New("End date must be after start date")
	ErrStartInPast      = errors.New("Start date cannot be in the past")
	ErrDatesUnavailable = errors.New("Selected dates are not available")
	ErrContactRequired  = errors.New("Please provide your contact information")
	ErrInvalidGuests    = errors.New("Number of guests must be between 1 and 8")
	ErrInvalidTime      = errors.New("Check-in and check-out times must use HH:MM")
)

// failureReason labels validation errors for metrics.
func failureReason(err error) string {
	switch {
	case errors.Is(err, ErrDatesRequired):
		return "dates_required"
	case errors.Is(err, ErrInvalidDate):
		return "invalid_date"
	case errors.Is(err, ErrEndBeforeStart):
		return "end_before_start"
	case errors.Is(err, ErrStartInPast):
		return "start_in_past"
	case errors.Is(err, ErrDatesUnavailable):
		return "unavailable"
	case errors.Is(err, ErrContactRequired):
		return "contact_required"
	case errors.Is(err, ErrInvalidGuests):
		return "invalid_guests"
	case errors.Is(err, ErrInvalidTime):
		return "invalid_time"
	}
	return "other"
}

// BookingRequest is what a customer submits from the property page.
type BookingRequest struct {
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
	Guests       int    `json:"guests"`
	Message      string `json:"message"`
	ContactName  string `json:"contactName"`
	ContactEmail string `json:"contactEmail"`
	ContactPhone string `json:"contactPhone"`
}

type Quote struct {
	StartDate      time.Time `json:"startDate"`
	EndDate        time.Time `json:"endDate"`
	Days           int       `json:"days"`
	PricePerPeriod float64   `json:"pricePerPeriod"`
	Total          float64   `json:"total"`
}

// ParseDate reads YYYY-MM-DD (or RFC3339) and returns local midnight of
// that calendar day in loc. For RFC3339 input the calendar day is the one
// written in the value, whatever its offset.
func ParseDate(raw string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	raw = strings.TrimSpace(raw)
	t, err := time.ParseInLocation(DateLayout, raw, loc)
	if err != nil {
		t, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			return time.Time{}, ErrInvalidDate
		}
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

// CalculateTotal returns price multiplied by the number of days between
// start and end, rounded up. Zero when either date is absent.
func CalculateTotal(price float64, start, end time.Time) float64 {
	if start.IsZero() || end.IsZero() {
		return 0
	}
	days := models.DateRange{Start: start, End: end}.Days()
	return float64(days) * price
}

// CheckAvailability reports whether r overlaps none of the given bookings.
// Callers decide which bookings occupy dates.
func CheckAvailability(r models.DateRange, existing []models.Booking) bool {
	for _, b := range existing {
		if r.Overlaps(b.Range()) {
			return false
		}
	}
	return true
}

// Validator runs the booking form checks against a clock and a location.
type Validator struct {
	Now      func() time.Time
	Location *time.Location
}

func (v Validator) loc() *time.Location {
	if v.Location == nil {
		return time.Local
	}
	return v.Location
}

func (v Validator) today() time.Time {
	now := time.Now
	if v.Now != nil {
		now = v.Now
	}
	t := now().In(v.loc())
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, v.loc())
}

// Quote prices the stay without checking availability. Missing or invalid
// dates give a zero quote.
func (v Validator) Quote(price float64, start, end string) Quote {
	q := Quote{PricePerPeriod: price}
	if strings.TrimSpace(start) == "" || strings.TrimSpace(end) == "" {
		return q
	}
	s, err := ParseDate(start, v.loc())
	if err != nil {
		return q
	}
	e, err := ParseDate(end, v.loc())
	if err != nil {
		return q
	}
	q.StartDate, q.EndDate = s, e
	q.Days = models.DateRange{Start: s, End: e}.Days()
	q.Total = CalculateTotal(price, s, e)
	return q
}

// Validate checks req in the order the booking form reports problems and
// prices it. existing should hold only bookings that occupy their dates.
func (v Validator) Validate(price float64, req BookingRequest, existing []models.Booking) (Quote, error) {
	if strings.TrimSpace(req.StartDate) == "" || strings.TrimSpace(req.EndDate) == "" {
		return Quote{}, ErrDatesRequired
	}
	start, err := ParseDate(req.StartDate, v.loc())
	if err != nil {
		return Quote{}, err
	}
	end, err := ParseDate(req.EndDate, v.loc())
	if err != nil {
		return Quote{}, err
	}
	if !start.Before(end) {
		return Quote{}, ErrEndBeforeStart
	}
	if start.Before(v.today()) {
		return Quote{}, ErrStartInPast
	}

	stay := models.DateRange{Start: start, End: end}
	if !CheckAvailability(stay, existing) {
		return Quote{}, ErrDatesUnavailable
	}

	if strings.TrimSpace(req.ContactName) == "" || strings.TrimSpace(req.ContactEmail) == "" {
		return Quote{}, ErrContactRequired
	}
	if req.Guests < MinGuests || req.Guests > MaxGuests {
		return Quote{}, ErrInvalidGuests
	}
	if !validTimeOfDay(req.StartTime) || !validTimeOfDay(req.EndTime) {
		return Quote{}, ErrInvalidTime
	}

	return Quote{
		StartDate:      start,
		EndDate:        end,
		Days:           stay.Days(),
		PricePerPeriod: price,
		Total:          CalculateTotal(price, start, end),
	}, nil
}

// validTimeOfDay accepts an empty value (no preference) or HH:MM.
func validTimeOfDay(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return true
	}
	_, err := time.Parse("15:04", s)
	return err == nil
}
