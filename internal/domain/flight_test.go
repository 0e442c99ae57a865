package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlight_Departed(t *testing.T) {
	assert.True(t, flightWithBookings(dateIn(-1), 10, 0, 100).Departed(today))
	assert.False(t, flightWithBookings(dateIn(0), 10, 0, 100).Departed(today), "same-day departure is not departed")
	assert.False(t, flightWithBookings(dateIn(1), 10, 0, 100).Departed(today))
}

func TestFlight_DepartedInvalidDate(t *testing.T) {
	f := flightWithBookings("31/12/2024", 10, 0, 100)

	assert.False(t, f.Departed(today), "unparsable date counts as not departed")
}

func TestFlight_AvailableSeatsCountsCancelledBookings(t *testing.T) {
	f := flightWithBookings(dateIn(10), 3, 0, 100)
	f.AddBooking(&Booking{ID: 1})
	f.AddBooking(&Booking{ID: 2, Cancelled: true})

	// A cancelled booking still occupies its seat.
	assert.Equal(t, 1, f.AvailableSeats())
}

func TestFlight_RemoveBooking(t *testing.T) {
	f := flightWithBookings(dateIn(10), 3, 0, 100)
	b1 := &Booking{ID: 1}
	b2 := &Booking{ID: 2}
	f.AddBooking(b1)
	f.AddBooking(b2)

	f.RemoveBooking(b1)

	assert.Equal(t, []*Booking{b2}, f.Bookings)
	assert.Equal(t, 2, f.AvailableSeats())
}

func TestFlight_WaitingList(t *testing.T) {
	f := flightWithBookings(dateIn(10), 1, 1, 100)
	alice := NewCustomer(1, "Alice", "", "", "")
	bob := NewCustomer(2, "Bob", "", "", "")

	f.AddToWaitingList(alice)
	f.AddToWaitingList(bob)
	assert.Equal(t, []*Customer{alice, bob}, f.WaitingList)

	f.RemoveFromWaitingList(alice)
	assert.Equal(t, []*Customer{bob}, f.WaitingList)

	// Removing a customer who is not queued is a no-op.
	f.RemoveFromWaitingList(alice)
	assert.Equal(t, []*Customer{bob}, f.WaitingList)
}
