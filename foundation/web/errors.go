package web

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Error is a trusted error: its message may be returned to the caller
// together with its HTTP status.
type Error struct {
	Err    error
	Status int
}

// NewRequestError wraps a provided error with an HTTP status. The error is
// considered safe to expose.
func NewRequestError(err error, status int) error {
	return &Error{Err: err, Status: status}
}

func (e *Error) Error() string {
	return e.Err.Error()
}

// Unwrap exposes the cause so errors.Is keeps working through the wrapper.
func (e *Error) Unwrap() error {
	return e.Err
}

// GetError walks the error chain and returns the first *Error, or nil.
func GetError(err error) *Error {
	for err != nil {
		if webErr, ok := err.(*Error); ok {
			return webErr
		}
		err = errors.Unwrap(err)
	}
	return nil
}

var (
	logger     *logrus.Logger
	loggerOnce sync.Once
)

// log returns the shared structured logger.
func log() *logrus.Logger {
	loggerOnce.Do(func() {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
	})
	return logger
}

// Logger exposes the shared logger for the rest of the application.
func Logger() *logrus.Logger {
	return log()
}
