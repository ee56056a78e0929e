package services

import (
	"context"
	"errors"
	"slices"

	"github.com/google/uuid"
	"github.com/yukikurage/company-task-api/internal/events"
	"github.com/yukikurage/company-task-api/internal/logging"
	"github.com/yukikurage/company-task-api/internal/utils"
)

var (
	ErrInvalidSortField = errors.New("invalid sort field")

	ErrCompanyNotFound  = errors.New("company not found")
	ErrCompanyNameTaken = errors.New("company with this name already exists")

	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user with this email or username already exists")
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrRestrictedField    = errors.New("you are not allowed to update this field")
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrInactiveUser       = errors.New("inactive user")
	ErrPasswordTooShort   = errors.New("password too short")

	ErrTaskNotFound        = errors.New("task not found")
	ErrTaskAccessDenied    = errors.New("access denied")
	ErrTaskCreateForbidden = errors.New("you are not allowed to create task for this user")
	ErrTaskUpdateForbidden = errors.New("you are not allowed to update")
	ErrTaskReassign        = errors.New("you are not allowed to assign the task to another user")
	ErrTaskSearchForbidden = errors.New("you are not allowed to search tasks for this user")
	ErrInProgressLimit     = errors.New("user can have only 2 in progress tasks")
)

// Actor is the authenticated caller a service acts for.
type Actor struct {
	ID      uuid.UUID
	IsAdmin bool
}

// CanActFor reports whether the actor may act on resources owned by ownerID.
func (a Actor) CanActFor(ownerID uuid.UUID) bool {
	return a.IsAdmin || a.ID == ownerID
}

func validateSort(params utils.SearchParams, sortable []string) error {
	if params.OrderBy == "" || slices.Contains(sortable, params.OrderBy) {
		return nil
	}
	return ErrInvalidSortField
}

// publish delivers an event after the write committed. A failed delivery is
// logged and never fails the request.
func publish(ctx context.Context, publisher events.Publisher, actor *Actor, event events.Event) {
	if actor != nil {
		event.ActorID = &actor.ID
	}
	if err := publisher.Publish(ctx, event); err != nil {
		logging.FromContext(ctx).Warn("failed to publish event",
			"type", event.Type,
			"entity_id", event.EntityID,
			"error", err,
		)
	}
}
