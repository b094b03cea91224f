package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/adapta/internal/domain"
	"github.com/alexanderramin/adapta/internal/repository"
)

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}

// notAssigned translates a repository miss on an assignment into ErrNotAssigned.
func notAssigned(err error, employeeID, trackID string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("employee %s, track %s: %w", employeeID, trackID, ErrNotAssigned)
	}
	return err
}

// normalizeID maps a pointer to an empty string onto nil.
func normalizeID(id *string) *string {
	if id == nil {
		return nil
	}
	return domain.StrPtrOrNil(*id)
}

// nowUTC returns the current time at the second precision timestamps are
// stored with, so returned values compare equal to reloaded ones.
func nowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
