package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propertyhub-backend/models"
	"propertyhub-backend/storage"
)

func newBookingFixture(t *testing.T) (*BookingService, *storage.MemoryStore) {
	t.Helper()
	ctx := context.Background()
	store := storage.NewMemoryStore()

	props := []models.Property{
		{ID: 1, Title: "Modern Downtown Apartment", Price: 2500, Status: models.PropertyStatusAvailable},
		{ID: 2, Title: "Luxury Penthouse Suite", Price: 5000, Status: models.PropertyStatusAvailable},
		{ID: 3, Title: "Cozy Studio Loft", Price: 1800, Status: models.PropertyStatusMaintenance},
	}
	for i := range props {
		require.NoError(t, store.CreateProperty(ctx, &props[i]))
	}

	svc := NewBookingService(store, store, time.UTC)
	svc.Validator.Now = fixedClock(2024, 1, 1)
	return svc, store
}

func addBooking(t *testing.T, store *storage.MemoryStore, b models.Booking) models.Booking {
	t.Helper()
	require.NoError(t, store.CreateBooking(context.Background(), &b))
	return b
}

func TestBookingService_SubmitCreatesPending(t *testing.T) {
	svc, _ := newBookingFixture(t)

	req := validRequest("2024-01-15", "2024-01-20")
	req.Guests = 0
	b, err := svc.Submit(context.Background(), 1, req)
	require.NoError(t, err)

	assert.NotZero(t, b.ID)
	assert.NotEmpty(t, b.ReferenceCode)
	assert.Equal(t, models.BookingStatusPending, b.Status)
	assert.Equal(t, 12500.0, b.TotalAmount)
	assert.Equal(t, "Modern Downtown Apartment", b.PropertyTitle)
	assert.Equal(t, 1, b.Guests, "guest count defaults to one")
	assert.Equal(t, date(2024, 1, 15), b.StartDate)
}

func TestBookingService_SubmitUnknownProperty(t *testing.T) {
	svc, _ := newBookingFixture(t)

	_, err := svc.Submit(context.Background(), 42, validRequest("2024-01-15", "2024-01-20"))
	assert.ErrorIs(t, err, ErrPropertyNotFound)
}

func TestBookingService_SubmitNotBookable(t *testing.T) {
	svc, _ := newBookingFixture(t)

	_, err := svc.Submit(context.Background(), 3, validRequest("2024-01-15", "2024-01-20"))
	assert.ErrorIs(t, err, ErrPropertyNotBookable)
}

func TestBookingService_ConfirmedBookingBlocksSubmission(t *testing.T) {
	svc, store := newBookingFixture(t)
	addBooking(t, store, models.Booking{
		PropertyID: 1, StartDate: date(2024, 1, 15), EndDate: date(2024, 1, 20), Status: models.BookingStatusConfirmed,
	})

	_, err := svc.Submit(context.Background(), 1, validRequest("2024-01-18", "2024-01-22"))
	assert.ErrorIs(t, err, ErrDatesUnavailable)

	// other properties are unaffected
	_, err = svc.Submit(context.Background(), 2, validRequest("2024-01-18", "2024-01-22"))
	assert.NoError(t, err)
}

func TestBookingService_PendingAndRejectedDoNotBlock(t *testing.T) {
	svc, store := newBookingFixture(t)
	addBooking(t, store, models.Booking{
		PropertyID: 1, StartDate: date(2024, 1, 15), EndDate: date(2024, 1, 20), Status: models.BookingStatusPending,
	})
	addBooking(t, store, models.Booking{
		PropertyID: 1, StartDate: date(2024, 1, 15), EndDate: date(2024, 1, 20), Status: models.BookingStatusRejected,
	})

	_, err := svc.Submit(context.Background(), 1, validRequest("2024-01-18", "2024-01-22"))
	assert.NoError(t, err)
}

func TestBookingService_AdminConfirmationBlocksLaterSubmissions(t *testing.T) {
	svc, _ := newBookingFixture(t)
	ctx := context.Background()

	first, err := svc.Submit(ctx, 1, validRequest("2024-01-15", "2024-01-20"))
	require.NoError(t, err)
	_, err = svc.Confirm(ctx, first.ID)
	require.NoError(t, err)

	_, err = svc.Submit(ctx, 1, validRequest("2024-01-20", "2024-01-22"))
	assert.ErrorIs(t, err, ErrDatesUnavailable)
}

func TestBookingService_ConfirmRechecksOverlap(t *testing.T) {
	svc, _ := newBookingFixture(t)
	ctx := context.Background()

	a, err := svc.Submit(ctx, 1, validRequest("2024-01-15", "2024-01-20"))
	require.NoError(t, err)
	b, err := svc.Submit(ctx, 1, validRequest("2024-01-18", "2024-01-22"))
	require.NoError(t, err)

	_, err = svc.Confirm(ctx, a.ID)
	require.NoError(t, err)

	_, err = svc.Confirm(ctx, b.ID)
	assert.ErrorIs(t, err, ErrDatesUnavailable)

	got, err := svc.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusPending, got.Status)
}

func TestBookingService_Transitions(t *testing.T) {
	svc, _ := newBookingFixture(t)
	ctx := context.Background()

	b, err := svc.Submit(ctx, 1, validRequest("2024-01-15", "2024-01-20"))
	require.NoError(t, err)

	_, err = svc.Complete(ctx, b.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition, "pending cannot complete")

	confirmed, err := svc.Confirm(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusConfirmed, confirmed.Status)

	_, err = svc.Reject(ctx, b.ID, "too late")
	assert.ErrorIs(t, err, ErrInvalidTransition, "confirmed cannot be rejected")

	completed, err := svc.Complete(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCompleted, completed.Status)

	_, err = svc.Confirm(ctx, b.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestBookingService_RejectStoresReason(t *testing.T) {
	svc, _ := newBookingFixture(t)
	ctx := context.Background()

	b, err := svc.Submit(ctx, 1, validRequest("2024-02-01", "2024-02-05"))
	require.NoError(t, err)

	rejected, err := svc.Reject(ctx, b.ID, "  Property under maintenance. ")
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusRejected, rejected.Status)
	assert.Equal(t, "Property under maintenance.", rejected.RejectionReason)

	_, err = svc.Reject(ctx, 999, "")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestBookingService_ListAndStats(t *testing.T) {
	svc, store := newBookingFixture(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 8, 10, 0, 0, 0, time.UTC)

	addBooking(t, store, models.Booking{PropertyID: 1, Status: models.BookingStatusPending, TotalAmount: 12500, CreatedAt: base.Add(48 * time.Hour)})
	addBooking(t, store, models.Booking{PropertyID: 2, Status: models.BookingStatusConfirmed, TotalAmount: 25000, CreatedAt: base})
	addBooking(t, store, models.Booking{PropertyID: 1, Status: models.BookingStatusRejected, TotalAmount: 10000, CreatedAt: base.Add(96 * time.Hour)})

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []uint{3, 1, 2}, []uint{all[0].ID, all[1].ID, all[2].ID}, "newest first")

	pending, err := svc.List(ctx, "Pending")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, uint(1), pending[0].ID)

	_, err = svc.List(ctx, "archived")
	assert.ErrorIs(t, err, ErrInvalidBookingStatus)

	forProp, err := svc.ListForProperty(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, forProp, 2)

	st, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, BookingStats{Total: 3, Pending: 1, Confirmed: 1, Revenue: 25000}, st)
}

func TestBookingService_Delete(t *testing.T) {
	svc, store := newBookingFixture(t)
	ctx := context.Background()
	b := addBooking(t, store, models.Booking{PropertyID: 1, Status: models.BookingStatusPending})

	require.NoError(t, svc.Delete(ctx, b.ID))
	assert.ErrorIs(t, svc.Delete(ctx, b.ID), ErrBookingNotFound)
}

func TestBookingService_Quote(t *testing.T) {
	svc, _ := newBookingFixture(t)

	q, err := svc.Quote(context.Background(), 1, "2024-01-15", "2024-01-20")
	require.NoError(t, err)
	assert.Equal(t, 12500.0, q.Total)

	_, err = svc.Quote(context.Background(), 99, "2024-01-15", "2024-01-20")
	assert.ErrorIs(t, err, ErrPropertyNotFound)
}

func TestBookingService_Export(t *testing.T) {
	svc, store := newBookingFixture(t)
	addBooking(t, store, models.Booking{
		PropertyID: 1, PropertyTitle: "Modern Downtown Apartment", CustomerName: "John Smith",
		StartDate: date(2024, 1, 15), EndDate: date(2024, 1, 20),
		Status: models.BookingStatusPending, TotalAmount: 12500,
	})

	f, err := svc.Export(context.Background())
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, exportColumns, rows[0])
	assert.Equal(t, "Modern Downtown Apartment", rows[1][3])
	assert.Equal(t, "John Smith", rows[1][4])
	assert.Equal(t, "2024-01-15", rows[1][7])
	assert.Equal(t, "pending", rows[1][12])
}

func TestBookingService_ParallelConfirmsKeepDatesExclusive(t *testing.T) {
	svc, _ := newBookingFixture(t)
	ctx := context.Background()

	const n = 8
	ids := make([]uint, n)
	for i := range ids {
		b, err := svc.Submit(ctx, 1, validRequest("2024-02-01", "2024-02-05"))
		require.NoError(t, err)
		ids[i] = b.ID
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		confirmed int
		refused   int
		other     []error
	)
	start := make(chan struct{})
	for _, id := range ids {
		wg.Add(1)
		go func(id uint) {
			defer wg.Done()
			<-start
			_, err := svc.Confirm(ctx, id)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				confirmed++
			case errors.Is(err, ErrDatesUnavailable):
				refused++
			default:
				other = append(other, err)
			}
		}(id)
	}
	close(start)
	wg.Wait()

	assert.Empty(t, other)
	assert.Equal(t, 1, confirmed)
	assert.Equal(t, n-1, refused)

	st, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, st.Confirmed)
}

func TestBookingService_ParallelSubmitAndConfirm(t *testing.T) {
	svc, _ := newBookingFixture(t)
	ctx := context.Background()

	const n = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		confirmed int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b, err := svc.Submit(ctx, 2, validRequest("2024-03-10", "2024-03-12"))
			if err != nil {
				return
			}
			if _, err := svc.Confirm(ctx, b.ID); err == nil {
				mu.Lock()
				confirmed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, confirmed)

	list, err := svc.List(ctx, models.BookingStatusConfirmed)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, uint(2), list[0].PropertyID)
}
