package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/noah-isme/legal-intake-api/internal/models"
	"github.com/noah-isme/legal-intake-api/internal/repository"
	appErrors "github.com/noah-isme/legal-intake-api/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type activityAppender interface {
	Append(ctx context.Context, activity *models.Activity) error
}

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows) || errors.Is(err, repository.ErrNoRowsAffected)
}

func internalError(err error, message string) error {
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, message)
}

// passThrough keeps typed errors raised inside a transaction callback and
// wraps everything else as an internal error.
func passThrough(err error, message string) error {
	var appErr *appErrors.Error
	if errors.As(err, &appErr) {
		return err
	}
	var catErr *appErrors.InvalidCategoryError
	var stateErr *appErrors.InvalidStateError
	var refErr *appErrors.ReferentialIntegrityError
	if errors.As(err, &catErr) || errors.As(err, &stateErr) || errors.As(err, &refErr) {
		return err
	}
	return internalError(err, message)
}

func actorID(actor *models.JWTClaims) (string, error) {
	id := actor.ActorID()
	if id == "" {
		return "", appErrors.ErrUnauthorized
	}
	return id, nil
}

func strPtr(s string) *string {
	return &s
}
