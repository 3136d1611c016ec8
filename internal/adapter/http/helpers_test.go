package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"loan-tracker/internal/adapter/middleware"
	"loan-tracker/internal/usecase/auth"

	"github.com/labstack/echo/v4"
)

const (
	userA = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	userB = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
	loan1 = "11111111111111111111111111111111"
)

func newEchoWithValidator() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func mustJSON(v any) *bytes.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

// tokenIsUser treats the bearer token as the user id.
type tokenIsUser struct{}

func (tokenIsUser) CurrentUser(_ context.Context, token string) (*auth.User, error) {
	if len(token) != 32 {
		return nil, auth.ErrInvalidToken
	}
	return &auth.User{UserID: token, Email: token[:4] + "@example.com"}, nil
}

// call runs h through RequireSession as userID ("" means anonymous, no middleware).
func call(t *testing.T, e *echo.Echo, h echo.HandlerFunc, method, target string, body io.Reader, userID string, params ...string) *httptest.ResponseRecorder {
	t.Helper()
	if body == nil {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if userID != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+userID)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if len(params) == 2 {
		c.SetParamNames(params[0])
		c.SetParamValues(params[1])
	}

	if userID != "" {
		h = middleware.RequireSession(tokenIsUser{})(h)
	}
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var er ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &er); err != nil {
		t.Fatalf("bad error json: %v; raw=%s", err, rec.Body.String())
	}
	return er
}
