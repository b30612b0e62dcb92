package services

import (
	"bookingapi/booking/db"
	"bookingapi/booking/model"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validBody = `{"guests":3,"nights":2,"rooms":[{"type":"double","count":1},{"type":"single","count":1}]}`

type SequentialIdGeneratorMock struct {
	next int
}

func (g *SequentialIdGeneratorMock) NewId() string {
	g.next++
	return fmt.Sprintf("booking-%v", g.next)
}

type FixedClockMock struct {
	now string
}

func (c *FixedClockMock) Now() string {
	return c.now
}

type FailingBookingDaoMock struct {
	err error
}

func (dao *FailingBookingDaoMock) PutBooking(context.Context, model.BookingRecord) error {
	return dao.err
}

func (dao *FailingBookingDaoMock) GetBooking(context.Context, string) (model.BookingRecord, bool, error) {
	return model.BookingRecord{}, false, dao.err
}

func (dao *FailingBookingDaoMock) ScanBookings(context.Context) ([]model.BookingRecord, error) {
	return nil, dao.err
}

func (dao *FailingBookingDaoMock) DeleteBooking(context.Context, string) error {
	return dao.err
}

func newTestService(bookingDao model.BookingDao, clock *FixedClockMock) *BookingService {
	return NewBookingService(bookingDao, model.NewDefaultRoomTable(), &SequentialIdGeneratorMock{}, clock)
}

func requireFailureKind(t *testing.T, err error, kind model.FailureKind) *model.Failure {
	t.Helper()
	failure, ok := model.AsFailure(err)
	require.True(t, ok, "expected a failure, got %v", err)
	require.Equal(t, kind, failure.Kind)
	return failure
}

func TestCreateThenGet(t *testing.T) {
	ctx := context.Background()
	service := newTestService(db.NewBookingMemDao(), &FixedClockMock{now: "2025-03-01T10:15:30.123Z"})

	created, err := service.Create(ctx, []byte(validBody))
	require.NoError(t, err)
	assert.Equal(t, "booking-1", created.Id)
	assert.Equal(t, int64(3000), created.TotalPrice)
	assert.Equal(t, "SEK", created.Currency)
	assert.Equal(t, "2025-03-01T10:15:30.123Z", created.CreatedAt)
	assert.Empty(t, created.UpdatedAt)

	fetched, err := service.Get(ctx, created.Id)
	require.NoError(t, err)
	assert.Equal(t, created, fetched)
}

func TestCreateRejectsInvalidBookingWithoutStoring(t *testing.T) {
	ctx := context.Background()
	bookingDao := db.NewBookingMemDao()
	service := newTestService(bookingDao, &FixedClockMock{})

	_, err := service.Create(ctx, []byte(`{"guests":5,"rooms":[{"type":"double","count":1}]}`))
	requireFailureKind(t, err, model.CAPACITY_MISMATCH)

	bookings, err := bookingDao.ScanBookings(ctx)
	require.NoError(t, err)
	assert.Empty(t, bookings)
}

func TestGetUnknownBooking(t *testing.T) {
	service := newTestService(db.NewBookingMemDao(), &FixedClockMock{})

	_, err := service.Get(context.Background(), "missing-id")
	failure := requireFailureKind(t, err, model.NOT_FOUND)
	assert.Contains(t, failure.Message, "missing-id")
}

func TestEmptyIdentifierIsRejected(t *testing.T) {
	ctx := context.Background()
	service := newTestService(db.NewBookingMemDao(), &FixedClockMock{})

	_, err := service.Get(ctx, "")
	requireFailureKind(t, err, model.MISSING_IDENTIFIER)
	_, err = service.Update(ctx, "", []byte(validBody))
	requireFailureKind(t, err, model.MISSING_IDENTIFIER)
	requireFailureKind(t, service.Delete(ctx, ""), model.MISSING_IDENTIFIER)
}

func TestListAllOnEmptyStore(t *testing.T) {
	bookings, err := newTestService(db.NewBookingMemDao(), &FixedClockMock{}).ListAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, bookings)
	assert.Empty(t, bookings)
}

func TestListAllReturnsEveryBooking(t *testing.T) {
	ctx := context.Background()
	service := newTestService(db.NewBookingMemDao(), &FixedClockMock{})
	for range 3 {
		_, err := service.Create(ctx, []byte(validBody))
		require.NoError(t, err)
	}

	bookings, err := service.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, bookings, 3)
	assert.Equal(t, "booking-1", bookings[0].Id)
	assert.Equal(t, "booking-3", bookings[2].Id)
}

func TestUpdateReplacesTheWholeBooking(t *testing.T) {
	ctx := context.Background()
	clock := &FixedClockMock{now: "2025-03-01T10:00:00.000Z"}
	service := newTestService(db.NewBookingMemDao(), clock)
	created, err := service.Create(ctx, []byte(validBody))
	require.NoError(t, err)

	clock.now = "2025-03-02T10:00:00.000Z"
	updated, err := service.Update(ctx, created.Id, []byte(`{"guests":3,"rooms":[{"type":"suite","count":1}]}`))
	require.NoError(t, err)
	assert.Equal(t, created.Id, updated.Id)
	assert.Equal(t, int64(1500), updated.TotalPrice)
	assert.Equal(t, 1, updated.Nights)
	assert.Equal(t, "2025-03-02T10:00:00.000Z", updated.UpdatedAt)
	assert.Empty(t, updated.CreatedAt)

	fetched, err := service.Get(ctx, created.Id)
	require.NoError(t, err)
	assert.Equal(t, updated, fetched)
}

func TestUpdateUnknownIdCreatesTheBooking(t *testing.T) {
	ctx := context.Background()
	service := newTestService(db.NewBookingMemDao(), &FixedClockMock{now: "2025-03-02T10:00:00.000Z"})

	_, err := service.Update(ctx, "brand-new", []byte(validBody))
	require.NoError(t, err)

	fetched, err := service.Get(ctx, "brand-new")
	require.NoError(t, err)
	assert.Equal(t, int64(3000), fetched.TotalPrice)
}

func TestUpdateValidatesBeforeWriting(t *testing.T) {
	ctx := context.Background()
	service := newTestService(db.NewBookingMemDao(), &FixedClockMock{})
	created, err := service.Create(ctx, []byte(validBody))
	require.NoError(t, err)

	_, err = service.Update(ctx, created.Id, []byte(`{"guests":1,"rooms":[{"type":"single","count":21}]}`))
	requireFailureKind(t, err, model.TOO_MANY_ROOMS)

	fetched, err := service.Get(ctx, created.Id)
	require.NoError(t, err)
	assert.Equal(t, created, fetched)
}

func TestDeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	service := newTestService(db.NewBookingMemDao(), &FixedClockMock{})
	created, err := service.Create(ctx, []byte(validBody))
	require.NoError(t, err)

	require.NoError(t, service.Delete(ctx, created.Id))
	require.NoError(t, service.Delete(ctx, created.Id))

	_, err = service.Get(ctx, created.Id)
	requireFailureKind(t, err, model.NOT_FOUND)
}

func TestStorageErrorsAreNotFailures(t *testing.T) {
	ctx := context.Background()
	storageErr := errors.New("table unavailable")
	service := newTestService(&FailingBookingDaoMock{err: storageErr}, &FixedClockMock{})

	_, err := service.Create(ctx, []byte(validBody))
	assert.ErrorIs(t, err, storageErr)
	_, isFailure := model.AsFailure(err)
	assert.False(t, isFailure)

	_, err = service.Get(ctx, "id")
	assert.ErrorIs(t, err, storageErr)
	_, err = service.ListAll(ctx)
	assert.ErrorIs(t, err, storageErr)
	_, err = service.Update(ctx, "id", []byte(validBody))
	assert.ErrorIs(t, err, storageErr)
	assert.ErrorIs(t, service.Delete(ctx, "id"), storageErr)
}

func TestRoomRules(t *testing.T) {
	rules := NewRulesService(model.NewDefaultRoomTable()).RoomRules()

	assert.Equal(t, model.MAX_ROOMS_PER_BOOKING, rules.MaxRoomsPerBooking)
	assert.Len(t, rules.Types, len(model.RoomTypes))
}

func TestDefaultSources(t *testing.T) {
	first, second := NewUuidGenerator().NewId(), NewUuidGenerator().NewId()
	assert.NotEqual(t, first, second)
	assert.Len(t, first, 36)

	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{3}Z$`, NewUtcClock().Now())
}
