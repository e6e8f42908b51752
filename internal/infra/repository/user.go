package repository

import (
	"context"
	"time"

	"medslot/internal/domain/user"
	"medslot/internal/infra"
	"medslot/internal/infra/db"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

// UserRepository serves both sides: phone updates inside the unit of
// work and credential lookups on the pool for authentication.
type UserRepository struct {
	db db.DBTX
}

func NewUserRepository(dbtx db.DBTX) *UserRepository {
	return &UserRepository{db: dbtx}
}

func (r *UserRepository) UpdatePhone(ctx context.Context, userID uuid.UUID, phone string) error {
	query, args, err := psql.Update("users").
		Set("phone", phone).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build phone update", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return infra.WrapRepoErr("failed to update phone", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.findBy(ctx, sq.Eq{"email": email})
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return r.findBy(ctx, sq.Eq{"id": id})
}

func (r *UserRepository) findBy(ctx context.Context, pred sq.Eq) (*user.User, error) {
	query, args, err := psql.Select(
		"id", "email", "password_hash", "role", "center_id",
		"phone", "is_active", "created_at", "updated_at",
	).From("users").Where(pred).ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build user select", err)
	}

	var (
		id                   uuid.UUID
		email, passwordHash  string
		roleStr              string
		centerID             *uuid.UUID
		phone                *string
		isActive             bool
		createdAt, updatedAt time.Time
	)
	if err := r.db.QueryRow(ctx, query, args...).Scan(
		&id, &email, &passwordHash, &roleStr, &centerID,
		&phone, &isActive, &createdAt, &updatedAt,
	); err != nil {
		return nil, infra.WrapRepoErr("failed to find user", err)
	}

	addr, err := user.NewEmail(email)
	if err != nil {
		return nil, infra.WrapRepoErr("stored email is invalid", err, infra.KindDBFailure)
	}
	role, err := user.NewRole(roleStr)
	if err != nil {
		return nil, infra.WrapRepoErr("stored role is invalid", err, infra.KindDBFailure)
	}

	var phoneVO *user.Phone
	if phone != nil && *phone != "" {
		p, err := user.NewPhone(*phone)
		if err != nil {
			return nil, infra.WrapRepoErr("stored phone is invalid", err, infra.KindDBFailure)
		}
		phoneVO = &p
	}

	return user.ReconstructUser(id, addr, passwordHash, role, centerID, phoneVO, isActive, createdAt, updatedAt), nil
}
