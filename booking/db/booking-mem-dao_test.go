package db

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemDaoKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	dao := NewBookingMemDao()
	for _, id := range []string{"c", "a", "b"} {
		require.NoError(t, dao.PutBooking(ctx, sampleBooking(id)))
	}
	require.NoError(t, dao.PutBooking(ctx, sampleBooking("c")))
	require.NoError(t, dao.DeleteBooking(ctx, "a"))

	bookings, err := dao.ScanBookings(ctx)
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, "c", bookings[0].Id)
	assert.Equal(t, "b", bookings[1].Id)
}

func TestMemDaoReturnsCopies(t *testing.T) {
	ctx := context.Background()
	dao := NewBookingMemDao()
	stored := sampleBooking("b-1")
	require.NoError(t, dao.PutBooking(ctx, stored))

	stored.Rooms[0].Count = 99
	*stored.Contact.Email = "changed@example.com"

	booking, found, err := dao.GetBooking(ctx, "b-1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, sampleBooking("b-1"), booking)

	booking.Rooms[0].Count = 42
	again, _, err := dao.GetBooking(ctx, "b-1")
	require.NoError(t, err)
	assert.Equal(t, 1, again.Rooms[0].Count)
}

func TestMemDaoConcurrentWrites(t *testing.T) {
	ctx := context.Background()
	dao := NewBookingMemDao()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, dao.PutBooking(ctx, sampleBooking(fmt.Sprintf("b-%v", i))))
		}()
	}
	wg.Wait()

	bookings, err := dao.ScanBookings(ctx)
	require.NoError(t, err)
	assert.Len(t, bookings, 50)
}
