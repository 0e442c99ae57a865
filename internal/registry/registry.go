package registry

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/skytrail/flightbook/internal/domain"
)

// ErrFlightFull is returned when a booking is attempted against a flight
// with no seats left.
var ErrFlightFull = errors.New("flight is full")

// BookingSystem is the surface the presentation layer consumes.
type BookingSystem interface {
	CreateFlight(number, destination, origin, departureDate string, capacity int, basePrice float64, duration string, vegMealCost, nonVegMealCost float64) *domain.Flight
	CreateCustomer(name, phone, email, specialRequests string) *domain.Customer
	AddBooking(customer *domain.Customer, flight *domain.Flight, seatClass, mealPreference string, numberOfBags int) (*domain.Booking, error)
	CreateBooking(customerID, flightID int, seatClass, mealPreference string, numberOfBags int) (*domain.Booking, error)
	CancelBooking(bookingID int)
	DeleteFlight(flightID int)
	DeleteCustomer(customerID int)

	FlightByID(id int) *domain.Flight
	CustomerByID(id int) *domain.Customer
	BookingByID(id int) *domain.Booking

	Flights() []*domain.Flight
	Customers() []*domain.Customer
	Bookings() []*domain.Booking
	ActiveFlights() []*domain.Flight
	ActiveCustomers() []*domain.Customer
	DeletedCustomers() []*domain.Customer
	DepartedFlights() []*domain.Flight
	FutureFlights() []*domain.Flight

	FilterFlightsByDestination(destination string) []*domain.Flight
	FilterFlightsByAirline(prefix string) []*domain.Flight
	FilterFlightsByPrice(minPrice, maxPrice float64) []*domain.Flight
	SortFlightsByPrice() []*domain.Flight
	SortCustomersByName() []*domain.Customer
}

// Registry owns every flight, customer and booking in the system along with
// the per-type ID counters. All operations are serialized behind one mutex:
// the core model assumes a single writer, and the mutex keeps that assumption
// intact if a concurrent collaborator shows up.
type Registry struct {
	mu        sync.Mutex
	flights   []*domain.Flight
	customers []*domain.Customer
	bookings  []*domain.Booking

	nextFlightID   int
	nextCustomerID int
	nextBookingID  int

	now func() time.Time
}

type Option func(*Registry)

// WithClock overrides the registry's notion of the current time. Used by
// tests to pin date-sensitive views and prices.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		r.now = now
	}
}

func New(opts ...Option) *Registry {
	r := &Registry{
		nextFlightID:   1,
		nextCustomerID: 1,
		nextBookingID:  1,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// CreateFlight allocates the next flight ID, builds the flight and registers
// it. Fresh entities only ever enter the system through the Create* factories
// or the persistence layer's Add* path.
func (r *Registry) CreateFlight(number, destination, origin, departureDate string, capacity int, basePrice float64, duration string, vegMealCost, nonVegMealCost float64) *domain.Flight {
	r.mu.Lock()
	defer r.mu.Unlock()

	f := domain.NewFlight(r.nextFlightID, number, destination, origin, departureDate, capacity, basePrice, duration, vegMealCost, nonVegMealCost)
	r.nextFlightID++
	r.flights = append(r.flights, f)
	return f
}

func (r *Registry) CreateCustomer(name, phone, email, specialRequests string) *domain.Customer {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := domain.NewCustomer(r.nextCustomerID, name, phone, email, specialRequests)
	r.nextCustomerID++
	r.customers = append(r.customers, c)
	return c
}

// AddFlight inserts a flight carrying a pre-allocated ID. The registry does
// not reassign IDs; the persistence layer is responsible for advancing the
// counter past loaded data.
func (r *Registry) AddFlight(f *domain.Flight) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.flights = append(r.flights, f)
}

func (r *Registry) AddCustomer(c *domain.Customer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.customers = append(r.customers, c)
}

// AddBooking creates a booking for customer on flight, appending it to the
// registry's booking list and to both back-reference lists in one step.
// It fails with ErrFlightFull when no seats are left.
func (r *Registry) AddBooking(customer *domain.Customer, flight *domain.Flight, seatClass, mealPreference string, numberOfBags int) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.addBooking(customer, flight, seatClass, mealPreference, numberOfBags)
}

func (r *Registry) addBooking(customer *domain.Customer, flight *domain.Flight, seatClass, mealPreference string, numberOfBags int) (*domain.Booking, error) {
	if flight.AvailableSeats() <= 0 {
		logrus.WithFields(logrus.Fields{
			"flight_id":   flight.ID,
			"customer_id": customer.ID,
		}).Warn("flight is full, booking refused")
		return nil, ErrFlightFull
	}

	b := domain.NewBooking(r.nextBookingID, customer, flight, seatClass, mealPreference, 1, numberOfBags)
	r.nextBookingID++
	r.bookings = append(r.bookings, b)
	customer.AddBooking(b)
	flight.AddBooking(b)
	return b, nil
}

// CreateBooking resolves the customer and flight IDs before booking. Unknown
// IDs surface as descriptive errors; the messages are part of the
// collaborator-facing contract.
func (r *Registry) CreateBooking(customerID, flightID int, seatClass, mealPreference string, numberOfBags int) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	customer := r.customerByID(customerID)
	if customer == nil {
		return nil, fmt.Errorf("Customer with ID %d not found.", customerID)
	}
	flight := r.flightByID(flightID)
	if flight == nil {
		return nil, fmt.Errorf("Flight with ID %d not found.", flightID)
	}
	return r.addBooking(customer, flight, seatClass, mealPreference, numberOfBags)
}

// CancelBooking marks the booking cancelled. Missing IDs are a no-op, and the
// seat is not released: availability keeps counting cancelled bookings.
func (r *Registry) CancelBooking(bookingID int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if b := r.bookingByID(bookingID); b != nil {
		b.Cancelled = true
	}
}

// DeleteFlight soft-deletes the flight; a no-op when the ID is unknown.
func (r *Registry) DeleteFlight(flightID int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if f := r.flightByID(flightID); f != nil {
		f.Deleted = true
	}
}

// DeleteCustomer soft-deletes the customer. There is no restore path.
func (r *Registry) DeleteCustomer(customerID int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c := r.customerByID(customerID); c != nil {
		c.Deleted = true
	}
}

// FlightByID scans the full collection, soft-deleted flights included, and
// returns nil when absent. Callers turn nil into a domain error if they need
// one.
func (r *Registry) FlightByID(id int) *domain.Flight {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.flightByID(id)
}

func (r *Registry) flightByID(id int) *domain.Flight {
	for _, f := range r.flights {
		if f.ID == id {
			return f
		}
	}
	return nil
}

func (r *Registry) CustomerByID(id int) *domain.Customer {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.customerByID(id)
}

func (r *Registry) customerByID(id int) *domain.Customer {
	for _, c := range r.customers {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func (r *Registry) BookingByID(id int) *domain.Booking {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.bookingByID(id)
}

func (r *Registry) bookingByID(id int) *domain.Booking {
	for _, b := range r.bookings {
		if b.ID == id {
			return b
		}
	}
	return nil
}

// Flights returns the full flight collection in insertion order, including
// soft-deleted entries.
func (r *Registry) Flights() []*domain.Flight {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*domain.Flight(nil), r.flights...)
}

func (r *Registry) Customers() []*domain.Customer {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*domain.Customer(nil), r.customers...)
}

func (r *Registry) Bookings() []*domain.Booking {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*domain.Booking(nil), r.bookings...)
}

func (r *Registry) ActiveFlights() []*domain.Flight {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.activeFlights()
}

func (r *Registry) activeFlights() []*domain.Flight {
	active := make([]*domain.Flight, 0, len(r.flights))
	for _, f := range r.flights {
		if !f.Deleted {
			active = append(active, f)
		}
	}
	return active
}

func (r *Registry) ActiveCustomers() []*domain.Customer {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.activeCustomers()
}

func (r *Registry) activeCustomers() []*domain.Customer {
	active := make([]*domain.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		if !c.Deleted {
			active = append(active, c)
		}
	}
	return active
}

func (r *Registry) DeletedCustomers() []*domain.Customer {
	r.mu.Lock()
	defer r.mu.Unlock()

	var deleted []*domain.Customer
	for _, c := range r.customers {
		if c.Deleted {
			deleted = append(deleted, c)
		}
	}
	return deleted
}

// DepartedFlights lists flights whose departure date is in the past,
// soft-deleted ones included.
func (r *Registry) DepartedFlights() []*domain.Flight {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	var departed []*domain.Flight
	for _, f := range r.flights {
		if f.Departed(now) {
			departed = append(departed, f)
		}
	}
	return departed
}

// FutureFlights lists flights that have neither departed nor been deleted.
func (r *Registry) FutureFlights() []*domain.Flight {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	var future []*domain.Flight
	for _, f := range r.flights {
		if !f.Departed(now) && !f.Deleted {
			future = append(future, f)
		}
	}
	return future
}

// FilterFlightsByDestination matches active flights whose destination equals
// the query, ignoring case.
func (r *Registry) FilterFlightsByDestination(destination string) []*domain.Flight {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []*domain.Flight
	for _, f := range r.activeFlights() {
		if strings.EqualFold(f.Destination, destination) {
			matched = append(matched, f)
		}
	}
	return matched
}

// FilterFlightsByAirline matches active flights whose flight number carries
// the given airline code prefix. The match is case-sensitive.
func (r *Registry) FilterFlightsByAirline(prefix string) []*domain.Flight {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []*domain.Flight
	for _, f := range r.activeFlights() {
		if strings.HasPrefix(f.Number, prefix) {
			matched = append(matched, f)
		}
	}
	return matched
}

// FilterFlightsByPrice keeps active flights whose live price falls inside the
// inclusive [minPrice, maxPrice] range.
func (r *Registry) FilterFlightsByPrice(minPrice, maxPrice float64) []*domain.Flight {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	var matched []*domain.Flight
	for _, f := range r.activeFlights() {
		price := f.Price(now)
		if price >= minPrice && price <= maxPrice {
			matched = append(matched, f)
		}
	}
	return matched
}

// SortFlightsByPrice returns active flights ordered by ascending live price.
// Prices are sampled once so the ordering stays consistent; ties keep their
// original relative order.
func (r *Registry) SortFlightsByPrice() []*domain.Flight {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	flights := r.activeFlights()
	prices := make(map[*domain.Flight]float64, len(flights))
	for _, f := range flights {
		prices[f] = f.Price(now)
	}
	sort.SliceStable(flights, func(i, j int) bool {
		return prices[flights[i]] < prices[flights[j]]
	})
	return flights
}

// SortCustomersByName returns active customers in ascending name order; ties
// keep their original relative order.
func (r *Registry) SortCustomersByName() []*domain.Customer {
	r.mu.Lock()
	defer r.mu.Unlock()

	customers := r.activeCustomers()
	sort.SliceStable(customers, func(i, j int) bool {
		return customers[i].Name < customers[j].Name
	})
	return customers
}

var _ BookingSystem = (*Registry)(nil)
