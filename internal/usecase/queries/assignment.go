package queries

import (
	"context"

	"medslot/internal/domain/authz"
	"medslot/internal/domain/user"
	"medslot/internal/pkg/errs"

	"github.com/google/uuid"
)

type AssignmentReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*AssignmentRequestView, error)
	List(ctx context.Context, status *string, centerID *uuid.UUID) ([]AssignmentRequestView, error)
}

type AssignmentQueries interface {
	Get(ctx context.Context, actor authz.Actor, id uuid.UUID) (*AssignmentRequestView, error)
	List(ctx context.Context, actor authz.Actor, status *string) ([]AssignmentRequestView, error)
}

type assignmentQueries struct {
	store AssignmentReadStore
}

func NewAssignmentQueries(store AssignmentReadStore) AssignmentQueries {
	return &assignmentQueries{store: store}
}

func (q *assignmentQueries) Get(ctx context.Context, actor authz.Actor, id uuid.UUID) (*AssignmentRequestView, error) {
	v, err := q.store.FindByID(ctx, id)
	if err != nil {
		return nil, errs.Wrap(err, "failed to load assignment request")
	}
	if !canSeeRequests(actor, v.CenterID) {
		return nil, errs.Mark(errs.New("request belongs to another center"), ErrQueryForbidden)
	}
	return v, nil
}

// List returns every request for a superadmin; center admins see only
// their own center's history.
func (q *assignmentQueries) List(ctx context.Context, actor authz.Actor, status *string) ([]AssignmentRequestView, error) {
	var centerID *uuid.UUID
	switch actor.Role {
	case user.RoleSuperadmin:
	case user.RoleHCSAdmin:
		if actor.CenterID == nil {
			return nil, errs.Mark(errs.New("actor has no center"), ErrQueryForbidden)
		}
		centerID = actor.CenterID
	default:
		return nil, errs.Mark(errs.New("role cannot list assignment requests"), ErrQueryForbidden)
	}

	views, err := q.store.List(ctx, status, centerID)
	return views, errs.Wrap(err, "failed to list assignment requests")
}

func canSeeRequests(actor authz.Actor, centerID uuid.UUID) bool {
	if actor.Role == user.RoleSuperadmin {
		return true
	}
	return actor.Role == user.RoleHCSAdmin &&
		actor.CenterID != nil && *actor.CenterID == centerID
}
