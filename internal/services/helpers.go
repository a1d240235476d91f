package services

import (
	"context"

	"streamhouse/api/internal/constants"
	"streamhouse/api/internal/errs"
	"streamhouse/api/internal/i18n"
	"streamhouse/api/internal/validation"
)

// Actor is the authenticated caller of an operation.
type Actor struct {
	UserID string
	RoleID string
}

func (a Actor) IsAdmin() bool {
	return a.RoleID == constants.RoleIDAdmin
}

func notFound(ctx context.Context, entity string) error {
	return errs.NotFound(i18n.Tc(ctx, "errors.not_found", entity))
}

func checkID(ctx context.Context, id string) error {
	if !validation.IsUUID(id) {
		return errs.BadRequest(i18n.Tc(ctx, "errors.invalid_id"))
	}
	return nil
}

// checkIDs rejects empty batches and malformed ids.
func checkIDs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return errs.BadRequest("ids " + i18n.Tc(ctx, "errors.cant_be_empty"))
	}
	for _, id := range ids {
		if err := checkID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}
