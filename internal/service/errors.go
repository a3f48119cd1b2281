package service

import (
	"errors"

	"connectrpc.com/connect"
	"github.com/go-playground/validator/v10"

	"github.com/mmynk/warikan/internal/models"
)

var validate = validator.New()

// validateRequest checks the struct tags of a request message.
func validateRequest(msg any) error {
	if err := validate.Struct(msg); err != nil {
		return connect.NewError(connect.CodeInvalidArgument, err)
	}
	return nil
}

// toConnectError maps domain errors to Connect codes. Unknown errors are internal.
func toConnectError(err error) error {
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return err
	}

	switch {
	case errors.Is(err, models.ErrDuplicateName):
		return connect.NewError(connect.CodeAlreadyExists, err)
	case errors.Is(err, models.ErrEmptyName),
		errors.Is(err, models.ErrInvalidQuantity),
		errors.Is(err, models.ErrUnknownPolicy),
		errors.Is(err, models.ErrAttributionMismatch):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, models.ErrBelowMinimum),
		errors.Is(err, models.ErrNoMembers),
		errors.Is(err, models.ErrIncompleteOrder),
		errors.Is(err, models.ErrDanglingAttribution):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.Is(err, models.ErrMemberNotFound),
		errors.Is(err, models.ErrLineItemNotFound),
		errors.Is(err, models.ErrCatalogEntryNotFound),
		errors.Is(err, models.ErrSessionNotFound),
		errors.Is(err, models.ErrOrderNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}
