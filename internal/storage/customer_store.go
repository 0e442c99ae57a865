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

const customerFieldCount = 6

type CustomerStore struct {
	path string
}

func NewCustomerStore(cfg config.StorageConfig) *CustomerStore {
	return &CustomerStore{path: cfg.CustomersPath()}
}

func (s *CustomerStore) Load(reg *registry.Registry) error {
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
		if len(fields) != customerFieldCount {
			logrus.WithFields(logrus.Fields{"file": s.path, "line": line}).Warn("skipping customer record with wrong field count")
			continue
		}

		id, err := strconv.Atoi(fields[0])
		if err != nil {
			logrus.WithFields(logrus.Fields{"file": s.path, "line": line}).Warn("skipping customer record with bad id")
			continue
		}
		deleted, err := strconv.ParseBool(fields[5])
		if err != nil {
			logrus.WithFields(logrus.Fields{"file": s.path, "line": line}).Warn("skipping customer record with bad deleted flag")
			continue
		}

		customer := domain.NewCustomer(id, fields[1], fields[2], fields[3], fields[4])
		customer.Deleted = deleted
		reg.AddCustomer(customer)
		if id >= reg.NextCustomerID() {
			reg.SetNextCustomerID(id + 1)
		}
	}
	return scanner.Err()
}

func (s *CustomerStore) Store(reg *registry.Registry) error {
	f, err := os.Create(s.path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, c := range reg.Customers() {
		fields := []string{
			strconv.Itoa(c.ID),
			c.Name,
			c.Phone,
			c.Email,
			c.SpecialRequests,
			strconv.FormatBool(c.Deleted),
		}
		if _, err := w.WriteString(strings.Join(fields, Delimiter) + "\n"); err != nil {
			return err
		}
	}
	return w.Flush()
}

var _ Codec = (*CustomerStore)(nil)
