package storage

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/skytrail/flightbook/config"
	"github.com/skytrail/flightbook/internal/registry"
)

const bookingFieldCount = 7

type BookingStore struct {
	path string
}

func NewBookingStore(cfg config.StorageConfig) *BookingStore {
	return &BookingStore{path: cfg.BookingsPath()}
}

// Load reconstructs bookings through the registry's normal creation path so
// the customer and flight back-references stay consistent, then overlays the
// persisted ID and cancellation flag on top of whatever the path assigned.
func (s *BookingStore) Load(reg *registry.Registry) error {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		fields := strings.Split(line, Delimiter)
		if len(fields) != bookingFieldCount {
			logrus.WithFields(logrus.Fields{"file": s.path, "line": line}).Warn("skipping booking record with wrong field count")
			continue
		}

		id, err := strconv.Atoi(fields[0])
		if err != nil {
			logrus.WithFields(logrus.Fields{"file": s.path, "line": line}).Warn("skipping booking record with bad id")
			continue
		}
		customerID, err := strconv.Atoi(fields[1])
		if err != nil {
			logrus.WithFields(logrus.Fields{"file": s.path, "line": line}).Warn("skipping booking record with bad customer id")
			continue
		}
		flightID, err := strconv.Atoi(fields[2])
		if err != nil {
			logrus.WithFields(logrus.Fields{"file": s.path, "line": line}).Warn("skipping booking record with bad flight id")
			continue
		}
		cancelled, err := strconv.ParseBool(fields[3])
		if err != nil {
			logrus.WithFields(logrus.Fields{"file": s.path, "line": line}).Warn("skipping booking record with bad cancelled flag")
			continue
		}
		numberOfBags, err := strconv.Atoi(fields[6])
		if err != nil {
			logrus.WithFields(logrus.Fields{"file": s.path, "line": line}).Warn("skipping booking record with bad bag count")
			continue
		}

		customer := reg.CustomerByID(customerID)
		flight := reg.FlightByID(flightID)
		if customer == nil || flight == nil {
			logrus.WithFields(logrus.Fields{"file": s.path, "line": line}).Warn("skipping booking record referencing unknown customer or flight")
			continue
		}

		booking, err := reg.AddBooking(customer, flight, fields[4], fields[5], numberOfBags)
		if err != nil {
			logrus.WithFields(logrus.Fields{"file": s.path, "line": line}).WithError(err).Warn("skipping booking record")
			continue
		}

		// Persisted identity wins over the freshly allocated one.
		booking.ID = id
		booking.Cancelled = cancelled
		if id >= reg.NextBookingID() {
			reg.SetNextBookingID(id + 1)
		}
	}
	return scanner.Err()
}

func (s *BookingStore) Store(reg *registry.Registry) error {
	f, err := os.Create(s.path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, b := range reg.Bookings() {
		fields := []string{
			strconv.Itoa(b.ID),
			strconv.Itoa(b.Customer.ID),
			strconv.Itoa(b.Flight.ID),
			strconv.FormatBool(b.Cancelled),
			b.SeatClass,
			b.MealPreference,
			strconv.Itoa(b.NumberOfBags),
		}
		if _, err := w.WriteString(strings.Join(fields, Delimiter) + "\n"); err != nil {
			return err
		}
	}
	return w.Flush()
}

var _ Codec = (*BookingStore)(nil)
