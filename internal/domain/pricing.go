package domain

import (
	"time"

	"github.com/sirupsen/logrus"
)

// TicketPrice computes the demand-sensitive price of a seat on f as of today.
// Two surcharges compound on the base price: one for urgency (days left to
// departure) and one for scarcity (share of seats still free). The result is
// recomputed on every call, so displayed prices drift as the departure date
// approaches or the flight fills up.
//
// A departure date that does not parse leaves the base price untouched.
func TicketPrice(f *Flight, today time.Time) float64 {
	dep, err := time.Parse(DateLayout, f.DepartureDate)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"flight_id":      f.ID,
			"departure_date": f.DepartureDate,
		}).Warn("invalid departure date, using base price")
		return f.BasePrice
	}

	daysToDeparture := int(dep.Sub(dateOf(today)).Hours() / 24)

	price := f.BasePrice
	if daysToDeparture < 7 {
		price *= 1.5
	} else if daysToDeparture < 30 {
		price *= 1.2
	}

	seatRatio := 0.0
	if f.Capacity > 0 {
		seatRatio = float64(f.AvailableSeats()) / float64(f.Capacity)
	}
	if seatRatio < 0.2 {
		price *= 1.8
	} else if seatRatio < 0.5 {
		price *= 1.3
	}

	return price
}

// Price is TicketPrice bound to the flight.
func (f *Flight) Price(today time.Time) float64 {
	return TicketPrice(f, today)
}
