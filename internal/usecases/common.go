package usecases

import (
	"errors"
	"time"

	domainerrors "moto-club.backend/internal/domain/errors"
)

// nowFunc is swapped in tests that need a fixed clock.
var nowFunc = func() time.Time {
	return time.Now().UTC()
}

// notFound maps a repository miss to a 404 carrying the domain sentinel.
func notFound(err error, message string, sentinel error) error {
	if errors.Is(err, domainerrors.ErrNotFound) {
		return domainerrors.Wrap(domainerrors.NotFound(message), sentinel)
	}
	return err
}
