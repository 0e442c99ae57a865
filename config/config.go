package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Auth    AuthConfig    `yaml:"auth"`
	Log     LogConfig     `yaml:"log"`
}

type StorageConfig struct {
	Dir                string `yaml:"dir"`
	FlightsFile        string `yaml:"flights_file"`
	DeletedFlightsFile string `yaml:"deleted_flights_file"`
	CustomersFile      string `yaml:"customers_file"`
	BookingsFile       string `yaml:"bookings_file"`
}

func (s StorageConfig) FlightsPath() string {
	return filepath.Join(s.Dir, s.FlightsFile)
}

func (s StorageConfig) DeletedFlightsPath() string {
	return filepath.Join(s.Dir, s.DeletedFlightsFile)
}

func (s StorageConfig) CustomersPath() string {
	return filepath.Join(s.Dir, s.CustomersFile)
}

func (s StorageConfig) BookingsPath() string {
	return filepath.Join(s.Dir, s.BookingsFile)
}

type AuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Dir:                filepath.Join("resources", "data"),
			FlightsFile:        "flights.txt",
			DeletedFlightsFile: "deletedFlights.txt",
			CustomersFile:      "customers.txt",
			BookingsFile:       "bookings.txt",
		},
		Auth: AuthConfig{
			Username: "admin",
			Password: "123",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// LoadConfig reads the yaml config at path, falling back to defaults for a
// missing file and for any section the file leaves out.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}
