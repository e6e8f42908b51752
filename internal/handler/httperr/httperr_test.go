//go:build unit

package httperr_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"medslot/internal/handler/httperr"
	"medslot/internal/infra"
	"medslot/internal/pkg/errs"
	"medslot/internal/usecase/commands"
	"medslot/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func abort(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	httperr.Abort(c, err)
	return w
}

func TestAbortStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", errs.Mark(errs.New("bad input"), commands.ErrValidation), http.StatusUnprocessableEntity},
		{"test not offered", errs.Mark(errs.New("nope"), commands.ErrTestNotOffered), http.StatusUnprocessableEntity},
		{"forbidden", errs.Mark(errs.New("denied"), commands.ErrForbidden), http.StatusForbidden},
		{"query forbidden", errs.Mark(errs.New("denied"), queries.ErrQueryForbidden), http.StatusForbidden},
		{"conflict", errs.Mark(errs.New("stale"), commands.ErrConflict), http.StatusConflict},
		{"bad credentials", commands.ErrInvalidCredentials, http.StatusUnauthorized},
		{"not found", infra.WrapRepoErr("missing", nil, infra.KindNotFound), http.StatusNotFound},
		{"duplicate key", infra.WrapRepoErr("dup", nil, infra.KindDuplicateKey), http.StatusConflict},
		{"foreign key", infra.WrapRepoErr("fk", nil, infra.KindForeignKeyViolated), http.StatusUnprocessableEntity},
		{"unclassified", errs.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := abort(tc.err)
			assert.Equal(t, tc.status, w.Code)
		})
	}
}

func TestAbortCapacityDetail(t *testing.T) {
	w := abort(errs.Wrap(
		&commands.CapacityExceededError{Limit: 2, Occupied: 2},
		"admission rejected",
	))
	require.Equal(t, http.StatusConflict, w.Code)

	var body struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
		Detail struct {
			Limit    int `json:"limit"`
			Occupied int `json:"occupied"`
		} `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Daily capacity exceeded", body.Error.Message)
	assert.Equal(t, 2, body.Detail.Limit)
	assert.Equal(t, 2, body.Detail.Occupied)
}
