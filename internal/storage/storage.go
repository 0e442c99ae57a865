package storage

import (
	"fmt"
	"os"

	"github.com/skytrail/flightbook/config"
	"github.com/skytrail/flightbook/internal/registry"
)

// Delimiter separates fields within a persisted record line.
const Delimiter = "::"

// Codec loads one entity type's file into a registry and snapshots it back
// out. Codecs only go through the registry's read/write accessors; business
// rules stay in the registry.
type Codec interface {
	Load(reg *registry.Registry) error
	Store(reg *registry.Registry) error
}

// Data bundles the three per-entity codecs. Load order matters: bookings
// resolve customer and flight IDs, so those two must be in place first.
type Data struct {
	dir       string
	flights   *FlightStore
	customers *CustomerStore
	bookings  *BookingStore
}

func NewData(cfg config.StorageConfig) *Data {
	return &Data{
		dir:       cfg.Dir,
		flights:   NewFlightStore(cfg),
		customers: NewCustomerStore(cfg),
		bookings:  NewBookingStore(cfg),
	}
}

// Load reads all entity files into reg. Missing files leave their entity
// type empty; malformed lines are skipped with a diagnostic.
func (d *Data) Load(reg *registry.Registry) error {
	if err := d.flights.Load(reg); err != nil {
		return fmt.Errorf("load flights: %w", err)
	}
	if err := d.customers.Load(reg); err != nil {
		return fmt.Errorf("load customers: %w", err)
	}
	if err := d.bookings.Load(reg); err != nil {
		return fmt.Errorf("load bookings: %w", err)
	}
	return nil
}

// Store rewrites every entity file from the current in-memory state. It is a
// full snapshot, invoked by collaborators after each mutating action.
func (d *Data) Store(reg *registry.Registry) error {
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if err := d.flights.Store(reg); err != nil {
		return fmt.Errorf("store flights: %w", err)
	}
	if err := d.customers.Store(reg); err != nil {
		return fmt.Errorf("store customers: %w", err)
	}
	if err := d.bookings.Store(reg); err != nil {
		return fmt.Errorf("store bookings: %w", err)
	}
	return nil
}
