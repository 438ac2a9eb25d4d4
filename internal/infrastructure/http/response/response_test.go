package response

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	domerrors "github.com/amirhosseinghanipour/verigate/internal/domain/errors"
)

func TestDescribe(t *testing.T) {
	tests := []struct {
		kind domerrors.Kind
		code int
		msg  string
	}{
		{domerrors.MalformedInput, 422, "Unprocessable Entity"},
		{domerrors.Unauthenticated, 401, "Not Authorized"},
		{domerrors.WrongCredentials, 401, "Not Authorized"},
		{domerrors.NotFound, 404, "Not found"},
		{domerrors.Conflict, 409, "Conflict - The Email already exists"},
		{domerrors.InternalFailure, 500, "Internal Server/Database Error"},
		{domerrors.Kind(99), 500, "Internal Server/Database Error"},
		{domerrors.Kind(-1), 500, "Internal Server/Database Error"},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			code, msg := Describe(tt.kind)
			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.msg, msg)
		})
	}
}

func TestJSON_EmptyDataIsArray(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusOK, "Logged out successfully")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"message":"Logged out successfully","data":[]}`, rec.Body.String())
}

func TestJSON_WithData(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusOK, "ok", map[string]string{"link": "http://x/verify?id=1"})

	assert.JSONEq(t, `{"message":"ok","data":[{"link":"http://x/verify?id=1"}]}`, rec.Body.String())
}

func TestError_HidesCause(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, fmt.Errorf("signup: %w", errors.New(`relation "accounts" does not exist`)))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"Internal Server/Database Error","data":[]}`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "accounts")
}

func TestError_Classified(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, domerrors.ErrAccountExists)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"message":"Conflict - The Email already exists","data":[]}`, rec.Body.String())
}
