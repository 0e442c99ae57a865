package registry

// ID counter accessors for the persistence layer. On load, each codec bumps
// the counter past the highest ID it saw so fresh allocations never collide
// with reloaded entities. The setters only ever move forward.

func (r *Registry) NextFlightID() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.nextFlightID
}

func (r *Registry) SetNextFlightID(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id > r.nextFlightID {
		r.nextFlightID = id
	}
}

func (r *Registry) NextCustomerID() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.nextCustomerID
}

func (r *Registry) SetNextCustomerID(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id > r.nextCustomerID {
		r.nextCustomerID = id
	}
}

func (r *Registry) NextBookingID() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.nextBookingID
}

func (r *Registry) SetNextBookingID(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id > r.nextBookingID {
		r.nextBookingID = id
	}
}
