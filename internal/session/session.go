package session

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/skytrail/flightbook/config"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

// Session identifies one logged-in operator for the lifetime of the process.
type Session struct {
	ID        string
	User      string
	StartedAt time.Time
}

// Authenticator checks the static operator credentials from config.
type Authenticator struct {
	username string
	password string
}

func NewAuthenticator(cfg config.AuthConfig) *Authenticator {
	return &Authenticator{username: cfg.Username, password: cfg.Password}
}

func (a *Authenticator) Login(username, password string) (*Session, error) {
	if username != a.username || password != a.password {
		return nil, ErrInvalidCredentials
	}

	s := &Session{
		ID:        uuid.NewString(),
		User:      username,
		StartedAt: time.Now(),
	}
	logrus.WithFields(logrus.Fields{
		"session_id": s.ID,
		"user":       s.User,
	}).Info("operator logged in")
	return s, nil
}
