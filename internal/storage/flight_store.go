package storage

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/skytrail/flightbook/config"
	"github.com/skytrail/flightbook/internal/domain"
	"github.com/skytrail/flightbook/internal/registry"
)

const flightFieldCount = 10

// FlightStore persists flights across two files, partitioned by the
// soft-delete flag at write time. Load reads both and sets the flag from the
// file the record came from.
type FlightStore struct {
	path        string
	deletedPath string
}

func NewFlightStore(cfg config.StorageConfig) *FlightStore {
	return &FlightStore{
		path:        cfg.FlightsPath(),
		deletedPath: cfg.DeletedFlightsPath(),
	}
}

func (s *FlightStore) Load(reg *registry.Registry) error {
	if err := s.loadFile(reg, s.path, false); err != nil {
		return err
	}
	return s.loadFile(reg, s.deletedPath, true)
}

func (s *FlightStore) loadFile(reg *registry.Registry, path string, deleted bool) error {
	f, err := os.Open(path)
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
		if len(fields) != flightFieldCount {
			logrus.WithFields(logrus.Fields{"file": path, "line": line}).Warn("skipping flight record with wrong field count")
			continue
		}

		id, err := strconv.Atoi(fields[0])
		if err != nil {
			logrus.WithFields(logrus.Fields{"file": path, "line": line}).Warn("skipping flight record with bad id")
			continue
		}
		capacity, err := strconv.Atoi(fields[5])
		if err != nil {
			logrus.WithFields(logrus.Fields{"file": path, "line": line}).Warn("skipping flight record with bad capacity")
			continue
		}
		basePrice, err := strconv.ParseFloat(fields[6], 64)
		if err != nil {
			logrus.WithFields(logrus.Fields{"file": path, "line": line}).Warn("skipping flight record with bad base price")
			continue
		}
		vegMealCost, err := strconv.ParseFloat(fields[8], 64)
		if err != nil {
			logrus.WithFields(logrus.Fields{"file": path, "line": line}).Warn("skipping flight record with bad veg meal cost")
			continue
		}
		nonVegMealCost, err := strconv.ParseFloat(fields[9], 64)
		if err != nil {
			logrus.WithFields(logrus.Fields{"file": path, "line": line}).Warn("skipping flight record with bad non-veg meal cost")
			continue
		}

		flight := domain.NewFlight(id, fields[1], fields[2], fields[3], fields[4], capacity, basePrice, fields[7], vegMealCost, nonVegMealCost)
		flight.Deleted = deleted
		reg.AddFlight(flight)
		if id >= reg.NextFlightID() {
			reg.SetNextFlightID(id + 1)
		}
	}
	return scanner.Err()
}

func (s *FlightStore) Store(reg *registry.Registry) error {
	if err := s.storeFile(reg, s.path, false); err != nil {
		return err
	}
	return s.storeFile(reg, s.deletedPath, true)
}

func (s *FlightStore) storeFile(reg *registry.Registry, path string, deleted bool) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, flight := range reg.Flights() {
		if flight.Deleted != deleted {
			continue
		}
		fields := []string{
			strconv.Itoa(flight.ID),
			flight.Number,
			flight.Destination,
			flight.Origin,
			flight.DepartureDate,
			strconv.Itoa(flight.Capacity),
			formatDecimal(flight.BasePrice),
			flight.Duration,
			formatDecimal(flight.VegMealCost),
			formatDecimal(flight.NonVegMealCost),
		}
		if _, err := w.WriteString(strings.Join(fields, Delimiter) + "\n"); err != nil {
			return err
		}
	}
	return w.Flush()
}

func formatDecimal(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

var _ Codec = (*FlightStore)(nil)
