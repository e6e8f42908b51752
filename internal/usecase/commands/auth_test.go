//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"medslot/internal/domain/user"
	"medslot/internal/infra"
	"medslot/internal/pkg/jwt"
	"medslot/internal/pkg/password"
	"medslot/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUserReader struct {
	users map[string]*user.User
}

func (s *stubUserReader) FindByEmail(_ context.Context, email string) (*user.User, error) {
	u, ok := s.users[email]
	if !ok {
		return nil, infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return u, nil
}

func (s *stubUserReader) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	for _, u := range s.users {
		if u.ID() == id {
			return u, nil
		}
	}
	return nil, infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
}

func seedUser(t *testing.T, email, rawPassword string, role user.Role, active bool) (*stubUserReader, *user.User) {
	t.Helper()
	addr, err := user.NewEmail(email)
	require.NoError(t, err)
	hash, err := password.HashPassword(rawPassword)
	require.NoError(t, err)

	u := user.NewUser(addr, hash, role, nil)
	if !active {
		now := time.Now()
		u = user.ReconstructUser(u.ID(), addr, hash, role, nil, nil, false, now, now)
	}
	return &stubUserReader{users: map[string]*user.User{addr.Value(): u}}, u
}

func newAuthCommands(reader *stubUserReader) commands.AuthCommands {
	svc := jwt.NewService("unit-test-secret", time.Minute, time.Hour)
	return commands.NewAuthCommands(reader, svc)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials issue a token pair", func(t *testing.T) {
		reader, _ := seedUser(t, "ada@example.com", "correct-horse", user.RoleCustomer, true)
		cmds := newAuthCommands(reader)

		pair, err := cmds.Login(ctx, "ada@example.com", "correct-horse")
		require.NoError(t, err)
		assert.NotEmpty(t, pair.AccessToken)
		assert.NotEmpty(t, pair.RefreshToken)
		assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)
	})

	t.Run("wrong password fails like an unknown account", func(t *testing.T) {
		reader, _ := seedUser(t, "ada@example.com", "correct-horse", user.RoleCustomer, true)
		cmds := newAuthCommands(reader)

		_, wrongPwd := cmds.Login(ctx, "ada@example.com", "battery-staple")
		_, unknown := cmds.Login(ctx, "nobody@example.com", "battery-staple")
		require.ErrorIs(t, wrongPwd, commands.ErrInvalidCredentials)
		require.ErrorIs(t, unknown, commands.ErrInvalidCredentials)
	})

	t.Run("deactivated accounts cannot log in", func(t *testing.T) {
		reader, _ := seedUser(t, "ada@example.com", "correct-horse", user.RoleCustomer, false)
		cmds := newAuthCommands(reader)

		_, err := cmds.Login(ctx, "ada@example.com", "correct-horse")
		require.ErrorIs(t, err, commands.ErrInvalidCredentials)
	})

	t.Run("malformed email is a validation error", func(t *testing.T) {
		reader, _ := seedUser(t, "ada@example.com", "correct-horse", user.RoleCustomer, true)
		cmds := newAuthCommands(reader)

		_, err := cmds.Login(ctx, "not-an-email", "correct-horse")
		require.ErrorIs(t, err, commands.ErrValidation)
	})
}

func TestRefresh(t *testing.T) {
	ctx := context.Background()

	t.Run("refresh token rotates the pair", func(t *testing.T) {
		reader, _ := seedUser(t, "ada@example.com", "correct-horse", user.RoleCustomer, true)
		cmds := newAuthCommands(reader)

		pair, err := cmds.Login(ctx, "ada@example.com", "correct-horse")
		require.NoError(t, err)

		rotated, err := cmds.Refresh(ctx, pair.RefreshToken)
		require.NoError(t, err)
		assert.NotEmpty(t, rotated.AccessToken)
		assert.NotEmpty(t, rotated.RefreshToken)
	})

	t.Run("access tokens are not accepted for refresh", func(t *testing.T) {
		reader, _ := seedUser(t, "ada@example.com", "correct-horse", user.RoleCustomer, true)
		cmds := newAuthCommands(reader)

		pair, err := cmds.Login(ctx, "ada@example.com", "correct-horse")
		require.NoError(t, err)

		_, err = cmds.Refresh(ctx, pair.AccessToken)
		require.ErrorIs(t, err, commands.ErrInvalidCredentials)
	})

	t.Run("deactivation takes effect on the next rotation", func(t *testing.T) {
		reader, u := seedUser(t, "ada@example.com", "correct-horse", user.RoleCustomer, true)
		cmds := newAuthCommands(reader)

		pair, err := cmds.Login(ctx, "ada@example.com", "correct-horse")
		require.NoError(t, err)

		now := time.Now()
		reader.users[u.Email().Value()] = user.ReconstructUser(
			u.ID(), u.Email(), u.PasswordHash(), u.Role(), nil, nil, false, now, now,
		)

		_, err = cmds.Refresh(ctx, pair.RefreshToken)
		require.ErrorIs(t, err, commands.ErrInvalidCredentials)
	})
}
