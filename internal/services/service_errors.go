// filepath: internal/services/service_errors.go
package services

import (
	"errors"
	"fmt"

	"petsapp/internal/shared"
)

// Standard errors returned by the service layer.
var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrUpdateFailed       = errors.New("update failed")
	ErrStorageUnavailable = errors.New("cannot open storage")
	ErrWrite              = errors.New("write failed")
)

// translateError maps a repository error onto the service error set.
// The storage-level cause is kept in the message but not in the chain.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, shared.ErrPetNotFound):
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	case errors.Is(err, shared.ErrWriteFailed):
		return fmt.Errorf("%w: %v", ErrWrite, err)
	default:
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
}
