package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propertyhub-backend/models"
)

// storeContract runs the same checks against every Store implementation.
func storeContract(t *testing.T, s Store) {
	ctx := context.Background()

	t.Run("properties", func(t *testing.T) {
		a := models.Property{Title: "A", Price: 100, Status: models.PropertyStatusAvailable, Amenities: []string{"wifi"}, Images: []string{}}
		b := models.Property{Title: "B", Price: 200, Status: models.PropertyStatusRented, Amenities: []string{}, Images: []string{}}
		require.NoError(t, s.CreateProperty(ctx, &a))
		require.NoError(t, s.CreateProperty(ctx, &b))
		assert.NotZero(t, a.ID)
		assert.Greater(t, b.ID, a.ID)

		list, err := s.ListProperties(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "A", list[0].Title)
		assert.Equal(t, []string{"wifi"}, []string(list[0].Amenities))

		a.Title = "A2"
		a.Featured = true
		require.NoError(t, s.UpdateProperty(ctx, &a))
		got, err := s.GetProperty(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, "A2", got.Title)
		assert.True(t, got.Featured)

		require.NoError(t, s.DeleteProperty(ctx, b.ID))
		_, err = s.GetProperty(ctx, b.ID)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, s.DeleteProperty(ctx, b.ID), ErrNotFound)

		missing := models.Property{ID: 999, Title: "ghost"}
		assert.ErrorIs(t, s.UpdateProperty(ctx, &missing), ErrNotFound)
	})

	t.Run("bookings", func(t *testing.T) {
		b1 := models.Booking{ReferenceCode: "ref-1", PropertyID: 1, Status: models.BookingStatusPending}
		b2 := models.Booking{ReferenceCode: "ref-2", PropertyID: 2, Status: models.BookingStatusConfirmed}
		require.NoError(t, s.CreateBooking(ctx, &b1))
		require.NoError(t, s.CreateBooking(ctx, &b2))

		dup := models.Booking{ReferenceCode: "ref-1", PropertyID: 1}
		assert.ErrorIs(t, s.CreateBooking(ctx, &dup), ErrDuplicate)

		forProp, err := s.ListBookingsByProperty(ctx, 1)
		require.NoError(t, err)
		require.Len(t, forProp, 1)
		assert.Equal(t, "ref-1", forProp[0].ReferenceCode)

		b1.Status = models.BookingStatusRejected
		b1.RejectionReason = "maintenance"
		require.NoError(t, s.UpdateBooking(ctx, &b1))
		got, err := s.GetBooking(ctx, b1.ID)
		require.NoError(t, err)
		assert.Equal(t, models.BookingStatusRejected, got.Status)
		assert.Equal(t, "maintenance", got.RejectionReason)

		require.NoError(t, s.DeleteBooking(ctx, b2.ID))
		all, err := s.ListBookings(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)

		_, err = s.GetBooking(ctx, b2.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestMemoryStore_Contract(t *testing.T) {
	storeContract(t, NewMemoryStore())
}

func TestMemoryStore_ExplicitIDs(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	p := models.Property{ID: 5, Title: "seeded"}
	require.NoError(t, s.CreateProperty(ctx, &p))
	assert.ErrorIs(t, s.CreateProperty(ctx, &models.Property{ID: 5}), ErrDuplicate)

	next := models.Property{Title: "next"}
	require.NoError(t, s.CreateProperty(ctx, &next))
	assert.Equal(t, uint(6), next.ID, "ids continue after the highest explicit id")
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	p := models.Property{Title: "A", Amenities: []string{"wifi"}}
	require.NoError(t, s.CreateProperty(ctx, &p))
	p.Amenities[0] = "pool"

	got, err := s.GetProperty(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "wifi", got.Amenities[0])
}
