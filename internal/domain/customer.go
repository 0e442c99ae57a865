package domain

type Customer struct {
	ID              int
	Name            string
	Phone           string
	Email           string
	SpecialRequests string
	Deleted         bool

	Bookings []*Booking
}

func NewCustomer(id int, name, phone, email, specialRequests string) *Customer {
	return &Customer{
		ID:              id,
		Name:            name,
		Phone:           phone,
		Email:           email,
		SpecialRequests: specialRequests,
	}
}

func (c *Customer) AddBooking(b *Booking) {
	c.Bookings = append(c.Bookings, b)
}
