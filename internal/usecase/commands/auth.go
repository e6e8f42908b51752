package commands

import (
	"context"

	"medslot/internal/domain/user"
	"medslot/internal/pkg/errs"
	"medslot/internal/pkg/jwt"
	"medslot/internal/pkg/password"
	"medslot/internal/usecase/shared"
)

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type AuthCommands interface {
	Login(ctx context.Context, email, rawPassword string) (TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (TokenPair, error)
}

type authCommands struct {
	users shared.AuthUserReader
	jwt   *jwt.Service
}

func NewAuthCommands(users shared.AuthUserReader, jwtService *jwt.Service) AuthCommands {
	return &authCommands{users: users, jwt: jwtService}
}

// Login verifies credentials and issues an access/refresh pair.
// Lookup failures and bad passwords collapse into the same error so
// responses do not leak which accounts exist.
func (c *authCommands) Login(ctx context.Context, email, rawPassword string) (TokenPair, error) {
	addr, err := user.NewEmail(email)
	if err != nil {
		return TokenPair{}, errs.Mark(err, ErrValidation)
	}
	pwd, err := user.NewPassword(rawPassword)
	if err != nil {
		return TokenPair{}, errs.Mark(err, ErrValidation)
	}
	creds := user.NewCredentials(addr, pwd)

	u, err := c.users.FindByEmail(ctx, creds.Email().Value())
	if err != nil {
		return TokenPair{}, errs.Mark(errs.Wrap(err, "user lookup failed"), ErrInvalidCredentials)
	}
	if !u.IsActive() {
		return TokenPair{}, errs.Mark(errs.New("account is deactivated"), ErrInvalidCredentials)
	}
	if err := password.ComparePassword(u.PasswordHash(), creds.Password().Value()); err != nil {
		return TokenPair{}, errs.Mark(err, ErrInvalidCredentials)
	}

	return c.issue(u)
}

// Refresh exchanges a valid refresh token for a fresh pair. Claims are
// re-read from the store so role or center changes take effect on the
// next rotation.
func (c *authCommands) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	claims, err := c.jwt.ValidateToken(refreshToken)
	if err != nil {
		return TokenPair{}, errs.Mark(err, ErrInvalidCredentials)
	}
	if claims.TokenType != jwt.TokenTypeRefresh {
		return TokenPair{}, errs.Mark(errs.New("not a refresh token"), ErrInvalidCredentials)
	}

	u, err := c.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return TokenPair{}, errs.Mark(errs.Wrap(err, "user lookup failed"), ErrInvalidCredentials)
	}
	if !u.IsActive() {
		return TokenPair{}, errs.Mark(errs.New("account is deactivated"), ErrInvalidCredentials)
	}

	return c.issue(u)
}

func (c *authCommands) issue(u *user.User) (TokenPair, error) {
	access, err := c.jwt.GenerateAccessToken(u.ID(), u.Role(), u.CenterID())
	if err != nil {
		return TokenPair{}, errs.Wrap(err, "failed to generate access token")
	}
	refresh, err := c.jwt.GenerateRefreshToken(u.ID(), u.Role(), u.CenterID())
	if err != nil {
		return TokenPair{}, errs.Wrap(err, "failed to generate refresh token")
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
