package domain

import (
	"time"

	"github.com/sirupsen/logrus"
)

// DateLayout is the format departure dates are stored and displayed in.
const DateLayout = "2006-01-02"

type Flight struct {
	ID             int
	Number         string
	Destination    string
	Origin         string
	DepartureDate  string // YYYY-MM-DD, kept as text and parsed on demand
	Capacity       int
	BasePrice      float64
	Duration       string
	VegMealCost    float64
	NonVegMealCost float64
	Deleted        bool

	Bookings    []*Booking
	WaitingList []*Customer
}

func NewFlight(id int, number, destination, origin, departureDate string, capacity int, basePrice float64, duration string, vegMealCost, nonVegMealCost float64) *Flight {
	return &Flight{
		ID:             id,
		Number:         number,
		Destination:    destination,
		Origin:         origin,
		DepartureDate:  departureDate,
		Capacity:       capacity,
		BasePrice:      basePrice,
		Duration:       duration,
		VegMealCost:    vegMealCost,
		NonVegMealCost: nonVegMealCost,
	}
}

// AvailableSeats counts every booking against capacity, cancelled bookings
// included. Cancelling a booking does not hand its seat back.
func (f *Flight) AvailableSeats() int {
	return f.Capacity - len(f.Bookings)
}

func (f *Flight) AddBooking(b *Booking) {
	f.Bookings = append(f.Bookings, b)
}

func (f *Flight) RemoveBooking(b *Booking) {
	for i, existing := range f.Bookings {
		if existing == b {
			f.Bookings = append(f.Bookings[:i], f.Bookings[i+1:]...)
			return
		}
	}
}

// AddToWaitingList queues a customer for a full flight. The waiting list is
// driven entirely by the presentation layer; the booking path never reads it.
func (f *Flight) AddToWaitingList(c *Customer) {
	f.WaitingList = append(f.WaitingList, c)
}

func (f *Flight) RemoveFromWaitingList(c *Customer) {
	for i, existing := range f.WaitingList {
		if existing == c {
			f.WaitingList = append(f.WaitingList[:i], f.WaitingList[i+1:]...)
			return
		}
	}
}

// Departed reports whether the departure date lies strictly before today.
// A date that does not parse counts as not departed.
func (f *Flight) Departed(now time.Time) bool {
	dep, err := time.Parse(DateLayout, f.DepartureDate)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"flight_id":      f.ID,
			"departure_date": f.DepartureDate,
		}).Warn("invalid departure date, treating flight as not departed")
		return false
	}
	return dep.Before(dateOf(now))
}

// dateOf truncates a timestamp to its calendar date in UTC, so comparisons
// against parsed departure dates work on whole days.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
