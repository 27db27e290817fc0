package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"roomBooker/internal/lib/date"
	"roomBooker/internal/lib/logger/handlers/slogdiscard"
	"roomBooker/internal/models"
	"roomBooker/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore serializes transactions with a mutex, standing in for the room row lock.
type memStore struct {
	mu        sync.Mutex
	rooms     map[int64]models.Room
	bookings  []models.Booking
	nextID    int64
	insertErr error
	listErr   error
}

func newMemStore(roomIDs ...int64) *memStore {
	m := &memStore{rooms: make(map[int64]models.Room)}
	for _, id := range roomIDs {
		m.rooms[id] = models.Room{ID: id, Name: "room"}
	}
	return m
}

func (m *memStore) GetRoom(_ context.Context, roomID int64) (*models.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.rooms[roomID]
	if !ok {
		return nil, storage.ErrRoomNotFound
	}
	return &r, nil
}

func (m *memStore) ListRoomBookingsAfter(_ context.Context, roomID int64, day date.Date) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.listErr != nil {
		return nil, m.listErr
	}

	var out []models.Booking
	for _, b := range m.bookings {
		if b.Kind == models.KindRoom && b.RoomID != nil && *b.RoomID == roomID && b.CheckIn.After(day) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memStore) InTx(_ context.Context, fn func(tx storage.Tx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	tx := &memTx{store: m}
	if err := fn(tx); err != nil {
		return err
	}

	m.bookings = append(m.bookings, tx.pending...)
	return nil
}

func (m *memStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.bookings)
}

type memTx struct {
	store   *memStore
	pending []models.Booking
}

func (tx *memTx) LockRoom(_ context.Context, roomID int64) (*models.Room, error) {
	r, ok := tx.store.rooms[roomID]
	if !ok {
		return nil, storage.ErrRoomNotFound
	}
	return &r, nil
}

func (tx *memTx) FindOverlapping(_ context.Context, roomID int64, checkIn, checkOut date.Date) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range tx.store.bookings {
		if b.Kind != models.KindRoom || b.RoomID == nil || *b.RoomID != roomID {
			continue
		}
		if !b.CheckIn.After(checkOut) && !b.CheckOut.Before(checkIn) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (tx *memTx) InsertBooking(_ context.Context, b *models.Booking) error {
	if tx.store.insertErr != nil {
		return tx.store.insertErr
	}

	tx.store.nextID++
	b.ID = tx.store.nextID
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	tx.pending = append(tx.pending, *b)
	return nil
}

type recordingObserver struct {
	mu      sync.Mutex
	results []string
}

func (o *recordingObserver) ObserveBooking(result string, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.results = append(o.results, result)
}

var now = time.Date(2025, time.June, 1, 15, 30, 0, 0, time.UTC)

func request(roomID int64, checkIn, checkOut string, guests int) RoomBookingRequest {
	return RoomBookingRequest{
		RoomID:   roomID,
		UserID:   42,
		CheckIn:  d(checkIn),
		CheckOut: d(checkOut),
		Guests:   guests,
	}
}

func TestCreateRoomBooking(t *testing.T) {
	t.Parallel()

	store := newMemStore(1)
	observer := &recordingObserver{}
	svc := New(slogdiscard.NewDiscardLogger(), store, observer)

	b, err := svc.CreateRoomBooking(context.Background(), request(1, "2025-06-10", "2025-06-15", 2), now)
	require.NoError(t, err)
	require.NotNil(t, b)

	assert.NotZero(t, b.ID)
	assert.Equal(t, models.KindRoom, b.Kind)
	assert.Equal(t, int64(42), b.UserID)
	require.NotNil(t, b.RoomID)
	assert.Equal(t, int64(1), *b.RoomID)
	assert.Nil(t, b.ExperienceID)
	assert.Equal(t, d("2025-06-10"), *b.CheckIn)
	assert.Equal(t, d("2025-06-15"), *b.CheckOut)
	assert.Equal(t, 2, b.Guests)
	assert.False(t, b.CreatedAt.IsZero())

	listed, err := svc.ListFutureRoomBookings(context.Background(), 1, now)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, b.Public(), listed[0])

	assert.Equal(t, []string{ResultCreated}, observer.results)
}

func TestCreateRoomBookingBoundaryScenario(t *testing.T) {
	t.Parallel()

	store := newMemStore(1)
	svc := New(slogdiscard.NewDiscardLogger(), store, nil)
	ctx := context.Background()

	_, err := svc.CreateRoomBooking(ctx, request(1, "2025-06-10", "2025-06-15", 2), now)
	require.NoError(t, err)

	_, err = svc.CreateRoomBooking(ctx, request(1, "2025-06-15", "2025-06-20", 2), now)
	require.ErrorIs(t, err, ErrDateConflict)

	var fe *FieldError
	assert.False(t, errors.As(err, &fe), "conflict must not be attached to a field")

	_, err = svc.CreateRoomBooking(ctx, request(1, "2025-06-16", "2025-06-20", 2), now)
	require.NoError(t, err)

	assert.Equal(t, 2, store.count())
}

func TestCreateRoomBookingIsScopedToRoom(t *testing.T) {
	t.Parallel()

	store := newMemStore(1, 2)
	svc := New(slogdiscard.NewDiscardLogger(), store, nil)
	ctx := context.Background()

	_, err := svc.CreateRoomBooking(ctx, request(2, "2025-06-10", "2025-06-15", 1), now)
	require.NoError(t, err)

	_, err = svc.CreateRoomBooking(ctx, request(1, "2025-06-10", "2025-06-15", 1), now)
	require.NoError(t, err)
}

func TestCreateRoomBookingRejections(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		req     RoomBookingRequest
		wantErr error
		field   string
		result  string
	}{
		{
			name:    "room not found",
			req:     request(99, "2025-06-10", "2025-06-15", 1),
			wantErr: ErrRoomNotFound,
			result:  ResultNotFound,
		},
		{
			name:    "room not found wins over bad dates",
			req:     request(99, "2020-01-05", "2020-01-01", 0),
			wantErr: ErrRoomNotFound,
			result:  ResultNotFound,
		},
		{
			name:    "invalid range",
			req:     request(1, "2025-06-10", "2025-06-10", 1),
			wantErr: ErrInvalidDateRange,
			field:   FieldCheckOut,
			result:  ResultInvalid,
		},
		{
			name:    "past date",
			req:     request(1, "2020-01-01", "2020-01-05", 1),
			wantErr: ErrPastDate,
			field:   FieldCheckIn,
			result:  ResultInvalid,
		},
		{
			name:    "past date with any guest count",
			req:     request(1, "2020-01-01", "2020-01-05", 12),
			wantErr: ErrPastDate,
			field:   FieldCheckIn,
			result:  ResultInvalid,
		},
		{
			name:    "past date with zero guests",
			req:     request(1, "2020-01-01", "2020-01-05", 0),
			wantErr: ErrPastDate,
			field:   FieldCheckIn,
			result:  ResultInvalid,
		},
		{
			name:    "non positive guests",
			req:     request(1, "2025-06-10", "2025-06-12", -1),
			wantErr: ErrInvalidGuests,
			field:   FieldGuests,
			result:  ResultInvalid,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			store := newMemStore(1)
			observer := &recordingObserver{}
			svc := New(slogdiscard.NewDiscardLogger(), store, observer)

			b, err := svc.CreateRoomBooking(context.Background(), tc.req, now)
			require.ErrorIs(t, err, tc.wantErr)
			assert.Nil(t, b)

			if tc.field != "" {
				var fe *FieldError
				require.ErrorAs(t, err, &fe)
				assert.Equal(t, tc.field, fe.Field)
			}

			assert.Zero(t, store.count())
			assert.Equal(t, []string{tc.result}, observer.results)
		})
	}
}

func TestCreateRoomBookingUsesLocalDateOfNow(t *testing.T) {
	t.Parallel()

	seoul, err := time.LoadLocation("Asia/Seoul")
	require.NoError(t, err)

	// 2025-06-09 20:00 UTC is 2025-06-10 05:00 in Seoul.
	instant := time.Date(2025, time.June, 9, 20, 0, 0, 0, time.UTC)

	svc := New(slogdiscard.NewDiscardLogger(), newMemStore(1), nil)

	_, err = svc.CreateRoomBooking(context.Background(), request(1, "2025-06-09", "2025-06-11", 1), instant.In(seoul))
	require.ErrorIs(t, err, ErrPastDate)

	_, err = svc.CreateRoomBooking(context.Background(), request(1, "2025-06-10", "2025-06-11", 1), instant.In(seoul))
	require.NoError(t, err)
}

func TestCreateRoomBookingStoreFailure(t *testing.T) {
	t.Parallel()

	store := newMemStore(1)
	store.insertErr = errors.New("connection reset")
	observer := &recordingObserver{}
	svc := New(slogdiscard.NewDiscardLogger(), store, observer)

	b, err := svc.CreateRoomBooking(context.Background(), request(1, "2025-06-10", "2025-06-15", 2), now)
	require.Error(t, err)
	assert.Nil(t, b)
	assert.False(t, IsValidation(err))
	assert.ErrorContains(t, err, "connection reset")
	assert.Zero(t, store.count())
	assert.Equal(t, []string{ResultError}, observer.results)
}

func TestCreateRoomBookingMapsStoreConflict(t *testing.T) {
	t.Parallel()

	store := newMemStore(1)
	store.insertErr = storage.ErrBookingConflict
	svc := New(slogdiscard.NewDiscardLogger(), store, nil)

	_, err := svc.CreateRoomBooking(context.Background(), request(1, "2025-06-10", "2025-06-15", 2), now)
	require.ErrorIs(t, err, ErrDateConflict)
}

func TestCreateRoomBookingMapsMissingUser(t *testing.T) {
	t.Parallel()

	store := newMemStore(1)
	store.insertErr = storage.ErrUserNotFound
	svc := New(slogdiscard.NewDiscardLogger(), store, nil)

	_, err := svc.CreateRoomBooking(context.Background(), request(1, "2025-06-10", "2025-06-15", 2), now)
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestCreateRoomBookingConcurrentRequests(t *testing.T) {
	t.Parallel()

	store := newMemStore(1)
	svc := New(slogdiscard.NewDiscardLogger(), store, nil)

	const workers = 16

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		created   int
		conflicts int
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			_, err := svc.CreateRoomBooking(context.Background(), request(1, "2025-06-10", "2025-06-15", 1), now)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				created++
			case errors.Is(err, ErrDateConflict):
				conflicts++
			}
		}()
	}

	wg.Wait()

	assert.Equal(t, 1, created)
	assert.Equal(t, workers-1, conflicts)
	assert.Equal(t, 1, store.count())
}

func TestListFutureRoomBookings(t *testing.T) {
	t.Parallel()

	store := newMemStore(1, 2)
	store.bookings = []models.Booking{
		withID(roomBooking(1, "2025-05-20", "2025-05-25"), 1),
		withID(roomBooking(1, "2025-06-01", "2025-06-03"), 2),
		withID(roomBooking(1, "2025-06-02", "2025-06-04"), 3),
		withID(roomBooking(2, "2025-06-10", "2025-06-12"), 4),
	}

	svc := New(slogdiscard.NewDiscardLogger(), store, nil)

	listed, err := svc.ListFutureRoomBookings(context.Background(), 1, now)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, int64(3), listed[0].ID)

	for _, b := range listed {
		assert.True(t, b.CheckIn.After(date.Of(now)), "listed check_in %s is not after today", b.CheckIn)
	}
}

func TestListFutureRoomBookingsEmpty(t *testing.T) {
	t.Parallel()

	svc := New(slogdiscard.NewDiscardLogger(), newMemStore(1), nil)

	listed, err := svc.ListFutureRoomBookings(context.Background(), 1, now)
	require.NoError(t, err)
	assert.NotNil(t, listed)
	assert.Empty(t, listed)
}

func TestListFutureRoomBookingsErrors(t *testing.T) {
	t.Parallel()

	svc := New(slogdiscard.NewDiscardLogger(), newMemStore(1), nil)

	_, err := svc.ListFutureRoomBookings(context.Background(), 5, now)
	assert.ErrorIs(t, err, ErrRoomNotFound)

	store := newMemStore(1)
	store.listErr = errors.New("timeout")
	svc = New(slogdiscard.NewDiscardLogger(), store, nil)

	_, err = svc.ListFutureRoomBookings(context.Background(), 1, now)
	require.Error(t, err)
	assert.ErrorContains(t, err, "booking.Service.ListFutureRoomBookings")
}

func withID(b models.Booking, id int64) models.Booking {
	b.ID = id
	return b
}
