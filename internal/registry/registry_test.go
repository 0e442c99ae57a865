package registry

import (
	"fmt"
	"testing"
	"time"

	"github.com/skytrail/flightbook/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestRegistry() *Registry {
	return New(WithClock(func() time.Time { return today }))
}

func dateIn(days int) string {
	return today.AddDate(0, 0, days).Format(domain.DateLayout)
}

func addFlight(r *Registry, number, destination string, capacity int, basePrice float64, departure string) *domain.Flight {
	return r.CreateFlight(number, destination, "London", departure, capacity, basePrice, "2h", 10, 12)
}

func TestCreateFlight_AssignsSequentialIDs(t *testing.T) {
	r := newTestRegistry()

	f1 := addFlight(r, "BA100", "Paris", 100, 250, dateIn(40))
	f2 := addFlight(r, "BA200", "Rome", 100, 250, dateIn(40))
	f3 := addFlight(r, "BA300", "Oslo", 100, 250, dateIn(40))

	assert.Equal(t, []int{1, 2, 3}, []int{f1.ID, f2.ID, f3.ID})
	assert.Equal(t, 4, r.NextFlightID())
}

func TestCreateCustomer_AssignsSequentialIDs(t *testing.T) {
	r := newTestRegistry()

	c1 := r.CreateCustomer("Alice", "111", "alice@example.com", "")
	c2 := r.CreateCustomer("Bob", "222", "bob@example.com", "")

	assert.Equal(t, 1, c1.ID)
	assert.Equal(t, 2, c2.ID)
	assert.Equal(t, 3, r.NextCustomerID())
}

func TestAddBooking_FanOutAppend(t *testing.T) {
	r := newTestRegistry()
	customer := r.CreateCustomer("Alice", "111", "alice@example.com", "")
	flight := addFlight(r, "BA100", "Paris", 100, 250, dateIn(40))

	b, err := r.AddBooking(customer, flight, "Economy", "Veg", 2)

	require.NoError(t, err)
	assert.Equal(t, 1, b.ID)
	assert.Equal(t, "Economy", b.SeatClass)
	assert.Equal(t, "Veg", b.MealPreference)
	assert.Equal(t, 2, b.NumberOfBags)
	assert.Same(t, customer, b.Customer)
	assert.Same(t, flight, b.Flight)
	// The booking lands in all three collections.
	assert.Equal(t, []*domain.Booking{b}, r.Bookings())
	assert.Equal(t, []*domain.Booking{b}, customer.Bookings)
	assert.Equal(t, []*domain.Booking{b}, flight.Bookings)
	assert.Equal(t, 2, r.NextBookingID())
}

func TestAddBooking_SingleSeatScenario(t *testing.T) {
	r := newTestRegistry()
	customer := r.CreateCustomer("John Doe", "555", "john@example.com", "")
	flight := addFlight(r, "BA100", "Paris", 1, 500, dateIn(40))

	b, err := r.AddBooking(customer, flight, "Economy", "Veg", 2)
	require.NoError(t, err)
	assert.Equal(t, 1, b.ID)
	assert.Equal(t, 0, flight.AvailableSeats())

	_, err = r.AddBooking(customer, flight, "Economy", "Veg", 0)
	assert.ErrorIs(t, err, ErrFlightFull)
	// The failed attempt mutated nothing.
	assert.Len(t, r.Bookings(), 1)
	assert.Len(t, customer.Bookings, 1)
	assert.Equal(t, 2, r.NextBookingID())
}

func TestCreateBooking_UnknownCustomer(t *testing.T) {
	r := newTestRegistry()
	addFlight(r, "BA100", "Paris", 10, 250, dateIn(40))

	_, err := r.CreateBooking(99, 1, "Economy", "Veg", 1)

	assert.EqualError(t, err, "Customer with ID 99 not found.")
	assert.Empty(t, r.Bookings())
}

func TestCreateBooking_UnknownFlight(t *testing.T) {
	r := newTestRegistry()
	r.CreateCustomer("Alice", "111", "alice@example.com", "")

	_, err := r.CreateBooking(1, 99, "Economy", "Veg", 1)

	assert.EqualError(t, err, "Flight with ID 99 not found.")
	assert.Empty(t, r.Bookings())
}

func TestCancelBooking_DoesNotReleaseSeat(t *testing.T) {
	r := newTestRegistry()
	customer := r.CreateCustomer("Alice", "111", "alice@example.com", "")
	flight := addFlight(r, "BA100", "Paris", 1, 250, dateIn(40))

	b, err := r.AddBooking(customer, flight, "Economy", "Veg", 0)
	require.NoError(t, err)

	r.CancelBooking(b.ID)

	assert.True(t, b.Cancelled)
	// Availability keeps counting the cancelled booking.
	assert.Equal(t, 0, flight.AvailableSeats())
	_, err = r.AddBooking(customer, flight, "Economy", "Veg", 0)
	assert.ErrorIs(t, err, ErrFlightFull)
}

func TestCancelBooking_UnknownIDIsNoop(t *testing.T) {
	r := newTestRegistry()

	assert.NotPanics(t, func() { r.CancelBooking(42) })
}

func TestDeleteFlight_SoftDelete(t *testing.T) {
	r := newTestRegistry()
	flight := addFlight(r, "BA100", "Paris", 10, 250, dateIn(40))
	addFlight(r, "BA200", "Rome", 10, 250, dateIn(40))

	r.DeleteFlight(flight.ID)

	assert.True(t, flight.Deleted)
	assert.NotContains(t, r.ActiveFlights(), flight)
	assert.NotContains(t, r.FutureFlights(), flight)
	// Lookup still sees the full collection.
	assert.Same(t, flight, r.FlightByID(flight.ID))
}

func TestDeleteCustomer_SoftDelete(t *testing.T) {
	r := newTestRegistry()
	customer := r.CreateCustomer("Alice", "111", "alice@example.com", "")

	r.DeleteCustomer(customer.ID)

	assert.True(t, customer.Deleted)
	assert.Empty(t, r.ActiveCustomers())
	assert.Equal(t, []*domain.Customer{customer}, r.DeletedCustomers())
	assert.Same(t, customer, r.CustomerByID(customer.ID))
}

func TestDepartedAndFutureFlights(t *testing.T) {
	r := newTestRegistry()
	departed := addFlight(r, "BA100", "Paris", 10, 250, dateIn(-3))
	future := addFlight(r, "BA200", "Rome", 10, 250, dateIn(3))
	deletedFuture := addFlight(r, "BA300", "Oslo", 10, 250, dateIn(3))
	r.DeleteFlight(deletedFuture.ID)

	assert.Equal(t, []*domain.Flight{departed}, r.DepartedFlights())
	// Deleted flights are excluded from future views only.
	assert.Equal(t, []*domain.Flight{future}, r.FutureFlights())
}

func TestFilterFlightsByDestination_CaseInsensitiveExactMatch(t *testing.T) {
	r := newTestRegistry()
	paris := addFlight(r, "BA100", "Paris", 10, 250, dateIn(40))
	addFlight(r, "BA200", "Paris South", 10, 250, dateIn(40))
	deleted := addFlight(r, "BA300", "Paris", 10, 250, dateIn(40))
	r.DeleteFlight(deleted.ID)

	assert.Equal(t, []*domain.Flight{paris}, r.FilterFlightsByDestination("PARIS"))
}

func TestFilterFlightsByAirline_CaseSensitivePrefix(t *testing.T) {
	r := newTestRegistry()
	ba1 := addFlight(r, "BA100", "Paris", 10, 250, dateIn(40))
	ba2 := addFlight(r, "BA200", "Rome", 10, 250, dateIn(40))
	addFlight(r, "LH300", "Oslo", 10, 250, dateIn(40))

	assert.Equal(t, []*domain.Flight{ba1, ba2}, r.FilterFlightsByAirline("BA"))
	assert.Empty(t, r.FilterFlightsByAirline("ba"))
}

func TestFilterFlightsByPrice_InclusiveBounds(t *testing.T) {
	r := newTestRegistry()
	// Far-out, empty flights: live price equals base price.
	cheap := addFlight(r, "BA100", "Paris", 10, 100, dateIn(60))
	mid := addFlight(r, "BA200", "Rome", 10, 200, dateIn(60))
	addFlight(r, "BA300", "Oslo", 10, 300, dateIn(60))

	assert.Equal(t, []*domain.Flight{cheap, mid}, r.FilterFlightsByPrice(100, 200))
}

func TestSortFlightsByPrice_StableAscending(t *testing.T) {
	r := newTestRegistry()
	expensive := addFlight(r, "BA100", "Paris", 10, 300, dateIn(60))
	cheapA := addFlight(r, "BA200", "Rome", 10, 100, dateIn(60))
	cheapB := addFlight(r, "BA300", "Oslo", 10, 100, dateIn(60))

	sorted := r.SortFlightsByPrice()

	// Equal prices keep insertion order.
	assert.Equal(t, []*domain.Flight{cheapA, cheapB, expensive}, sorted)
	// The registry's own collection is untouched.
	assert.Equal(t, []*domain.Flight{expensive, cheapA, cheapB}, r.Flights())
}

func TestSortCustomersByName(t *testing.T) {
	r := newTestRegistry()
	carol := r.CreateCustomer("Carol", "333", "", "")
	alice := r.CreateCustomer("Alice", "111", "", "")
	bob := r.CreateCustomer("Bob", "222", "", "")
	r.DeleteCustomer(bob.ID)

	assert.Equal(t, []*domain.Customer{alice, carol}, r.SortCustomersByName())
}

func TestIDAllocation_StrictlyIncreasingAcrossTypes(t *testing.T) {
	r := newTestRegistry()

	var flightIDs, customerIDs, bookingIDs []int
	for i := 0; i < 5; i++ {
		f := addFlight(r, fmt.Sprintf("BA%d", i), "Paris", 10, 100, dateIn(40))
		c := r.CreateCustomer(fmt.Sprintf("Customer %d", i), "", "", "")
		b, err := r.AddBooking(c, f, "Economy", "Veg", 0)
		require.NoError(t, err)
		flightIDs = append(flightIDs, f.ID)
		customerIDs = append(customerIDs, c.ID)
		bookingIDs = append(bookingIDs, b.ID)
	}

	for _, ids := range [][]int{flightIDs, customerIDs, bookingIDs} {
		for i := 1; i < len(ids); i++ {
			assert.Greater(t, ids[i], ids[i-1])
		}
	}
}

func TestSetNextIDs_NeverRegress(t *testing.T) {
	r := newTestRegistry()
	addFlight(r, "BA100", "Paris", 10, 100, dateIn(40))

	r.SetNextFlightID(1)

	assert.Equal(t, 2, r.NextFlightID())

	r.SetNextFlightID(10)
	assert.Equal(t, 10, r.NextFlightID())
}
