package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propertyhub-backend/models"
)

func fixedClock(year int, month time.Month, d int) func() time.Time {
	return func() time.Time {
		return time.Date(year, month, d, 14, 30, 0, 0, time.UTC)
	}
}

func testValidator() Validator {
	return Validator{Now: fixedClock(2024, 1, 1), Location: time.UTC}
}

func date(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func validRequest(start, end string) BookingRequest {
	return BookingRequest{
		StartDate:    start,
		EndDate:      end,
		StartTime:    "15:00",
		EndTime:      "11:00",
		Guests:       2,
		ContactName:  "John Smith",
		ContactEmail: "john.smith@email.com",
	}
}

func TestCalculateTotal(t *testing.T) {
	assert.Equal(t, 12500.0, CalculateTotal(2500, date(2024, 1, 15), date(2024, 1, 20)))
	assert.Equal(t, 0.0, CalculateTotal(2500, time.Time{}, date(2024, 1, 20)))
	assert.Equal(t, 0.0, CalculateTotal(2500, date(2024, 1, 15), time.Time{}))
	assert.Equal(t, 2500.0, CalculateTotal(2500, date(2024, 1, 15), date(2024, 1, 15).Add(time.Hour)))
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2024-01-15", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, date(2024, 1, 15), got)

	got, err = ParseDate(" 2024-01-15T18:45:00Z ", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, date(2024, 1, 15), got, "time of day is dropped")

	_, err = ParseDate("15-01-2024", time.UTC)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestParseDate_KeepsWrittenCalendarDay(t *testing.T) {
	ny := time.FixedZone("EST", -5*60*60)

	got, err := ParseDate("2024-01-15T00:00:00Z", ny)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, ny), got)

	got, err = ParseDate("2024-01-15T23:30:00-08:00", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, date(2024, 1, 15), got)
}

func TestValidator_Quote(t *testing.T) {
	v := testValidator()

	q := v.Quote(2500, "2024-01-15", "2024-01-20")
	assert.Equal(t, 5, q.Days)
	assert.Equal(t, 12500.0, q.Total)
	assert.Equal(t, 2500.0, q.PricePerPeriod)

	q = v.Quote(2500, "", "2024-01-20")
	assert.Zero(t, q.Days)
	assert.Zero(t, q.Total)

	q = v.Quote(2500, "nope", "2024-01-20")
	assert.Zero(t, q.Total)
}

func TestValidator_Validate(t *testing.T) {
	existing := []models.Booking{
		{ID: 1, PropertyID: 1, StartDate: date(2024, 1, 15), EndDate: date(2024, 1, 20), Status: models.BookingStatusConfirmed},
		{ID: 2, PropertyID: 1, StartDate: date(2024, 1, 25), EndDate: date(2024, 1, 30), Status: models.BookingStatusConfirmed},
	}

	tests := []struct {
		name    string
		mutate  func(r *BookingRequest)
		wantErr error
	}{
		{"missing start", func(r *BookingRequest) { r.StartDate = "" }, ErrDatesRequired},
		{"missing end", func(r *BookingRequest) { r.EndDate = "  " }, ErrDatesRequired},
		{"bad format", func(r *BookingRequest) { r.EndDate = "2024/02/12" }, ErrInvalidDate},
		{"end equals start", func(r *BookingRequest) { r.EndDate = r.StartDate }, ErrEndBeforeStart},
		{"end before start", func(r *BookingRequest) { r.StartDate, r.EndDate = "2024-02-12", "2024-02-10" }, ErrEndBeforeStart},
		{"start in past", func(r *BookingRequest) { r.StartDate = "2023-12-31" }, ErrStartInPast},
		{"overlaps confirmed stay", func(r *BookingRequest) { r.StartDate, r.EndDate = "2024-01-18", "2024-01-22" }, ErrDatesUnavailable},
		{"starts on existing end", func(r *BookingRequest) { r.StartDate, r.EndDate = "2024-01-20", "2024-01-22" }, ErrDatesUnavailable},
		{"missing contact name", func(r *BookingRequest) { r.ContactName = "" }, ErrContactRequired},
		{"missing contact email", func(r *BookingRequest) { r.ContactEmail = "" }, ErrContactRequired},
		{"too many guests", func(r *BookingRequest) { r.Guests = 9 }, ErrInvalidGuests},
		{"no guests", func(r *BookingRequest) { r.Guests = 0 }, ErrInvalidGuests},
		{"bad time", func(r *BookingRequest) { r.StartTime = "3pm" }, ErrInvalidTime},
		{"no time preference", func(r *BookingRequest) { r.StartTime, r.EndTime = "", "" }, nil},
		{"valid stay", func(r *BookingRequest) {}, nil},
		{"today is allowed", func(r *BookingRequest) { r.StartDate, r.EndDate = "2024-01-01", "2024-01-03" }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest("2024-02-10", "2024-02-12")
			tt.mutate(&req)

			q, err := testValidator().Validate(2500, req, existing)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, float64(q.Days)*2500, q.Total)
		})
	}
}

func TestValidator_ValidateCheckOrder(t *testing.T) {
	// a past, conflicting request without contact details reports the past date first
	existing := []models.Booking{
		{StartDate: date(2023, 12, 1), EndDate: date(2023, 12, 31), Status: models.BookingStatusConfirmed},
	}
	req := BookingRequest{StartDate: "2023-12-10", EndDate: "2023-12-12", Guests: 1}

	_, err := testValidator().Validate(100, req, existing)
	assert.ErrorIs(t, err, ErrStartInPast)
	assert.Equal(t, "Start date cannot be in the past", err.Error())
}

func TestValidator_FiveDayStayTotal(t *testing.T) {
	q, err := testValidator().Validate(2500, validRequest("2024-01-15", "2024-01-20"), nil)
	require.NoError(t, err)
	assert.Equal(t, 5, q.Days)
	assert.Equal(t, 12500.0, q.Total)
}

func TestCheckAvailability(t *testing.T) {
	existing := []models.Booking{{StartDate: date(2024, 1, 15), EndDate: date(2024, 1, 20)}}

	assert.False(t, CheckAvailability(models.DateRange{Start: date(2024, 1, 18), End: date(2024, 1, 22)}, existing))
	assert.True(t, CheckAvailability(models.DateRange{Start: date(2024, 1, 21), End: date(2024, 1, 22)}, existing))
	assert.True(t, CheckAvailability(models.DateRange{Start: date(2024, 1, 18), End: date(2024, 1, 22)}, nil))
}
