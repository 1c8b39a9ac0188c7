package streak

import (
	"errors"
	"time"

	"github.com/dvdgamer2003/learntrack-api/internal/domain"
)

// Common errors
var (
	ErrNilProgress = errors.New("progress cannot be nil")
)

// Service defines the interface for streak engine operations.
type Service interface {
	// CheckIn records a day of activity. It returns an updated copy of the
	// progress record together with what happened; the input is never
	// mutated so callers can persist the copy atomically.
	CheckIn(progress *domain.Progress, now time.Time) (*domain.Progress, CheckInResult, error)

	// Status reports whether the user still needs to check in today and
	// returns the recent activity history. Pure read, no side effects.
	Status(progress *domain.Progress, now time.Time) (Status, error)
}

// defaultService is the standard implementation of the Service interface.
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new streak service with default parameters.
func NewDefaultService() Service {
	return &defaultService{
		params: NewDefaultParams(),
	}
}

// NewServiceWithParams creates a new streak service with custom parameters.
func NewServiceWithParams(params *Params) Service {
	return &defaultService{
		params: params,
	}
}

// CheckIn implements the Service interface.
func (s *defaultService) CheckIn(
	progress *domain.Progress,
	now time.Time,
) (*domain.Progress, CheckInResult, error) {
	if progress == nil {
		return nil, CheckInResult{}, ErrNilProgress
	}

	updated, result := calculateCheckIn(progress, now, s.params)
	return updated, result, nil
}

// Status implements the Service interface.
func (s *defaultService) Status(progress *domain.Progress, now time.Time) (Status, error) {
	if progress == nil {
		return Status{}, ErrNilProgress
	}

	return calculateStatus(progress, now, s.params), nil
}
