package domain

// Booking ties a customer to a flight. Cancellation is a one-way flag flip;
// there is no path back to an active booking.
type Booking struct {
	ID             int
	Customer       *Customer
	Flight         *Flight
	SeatClass      string
	MealPreference string
	SeatNumber     int
	NumberOfBags   int
	Cancelled      bool
}

func NewBooking(id int, customer *Customer, flight *Flight, seatClass, mealPreference string, seatNumber, numberOfBags int) *Booking {
	return &Booking{
		ID:             id,
		Customer:       customer,
		Flight:         flight,
		SeatClass:      seatClass,
		MealPreference: mealPreference,
		SeatNumber:     seatNumber,
		NumberOfBags:   numberOfBags,
	}
}
