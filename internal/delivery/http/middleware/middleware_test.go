package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"talent-match/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

func TestBearerToken(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"Bearer abc", "abc", true},
		{"bearer   abc  ", "abc", true},
		{"Basic abc", "", false},
		{"Bearer", "", false},
		{"Bearer   ", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := BearerToken(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("BearerToken(%q) = %q,%v want %q,%v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestNormalizeErrorHidesServerDetails(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"app 4xx keeps message", NewAppError(fiber.StatusConflict, "Email already registered", nil, nil), fiber.StatusConflict, "Email already registered"},
		{"app 4xx default message", NewAppError(fiber.StatusNotFound, "", nil, nil), fiber.StatusNotFound, response.MessageNotFound},
		{"app 5xx hidden", NewAppError(fiber.StatusInternalServerError, "pq: connection refused", nil, nil), fiber.StatusInternalServerError, response.MessageInternalServerError},
		{"app 503 kept", NewAppError(fiber.StatusServiceUnavailable, "rag down", nil, nil), fiber.StatusServiceUnavailable, response.MessageServiceUnavailable},
		{"fiber error", fiber.NewError(fiber.StatusMethodNotAllowed, "Method Not Allowed"), fiber.StatusMethodNotAllowed, "Method Not Allowed"},
		{"plain error", errors.New("boom"), fiber.StatusInternalServerError, response.MessageInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, msg, _ := normalizeError(tc.err)
			if status != tc.wantStatus || msg != tc.wantMsg {
				t.Fatalf("got %d %q, want %d %q", status, msg, tc.wantStatus, tc.wantMsg)
			}
		})
	}
}

type countingRecorder struct{ statuses []int }

func (r *countingRecorder) HTTPRequest(_ string, status int) { r.statuses = append(r.statuses, status) }

func TestRequireRoleAndAccessLog(t *testing.T) {
	rec := &countingRecorder{}
	app := fiber.New()
	app.Use(NewAccessLogMiddleware(nil, rec).Middleware())
	app.Use(NewErrorMiddleware(nil).Middleware())

	setRole := func(role string) fiber.Handler {
		return func(c fiber.Ctx) error {
			c.Locals(CtxRoleKey, role)
			return c.Next()
		}
	}
	ok := func(c fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) }
	app.Get("/recruiter", setRole("recruiter"), RequireRole("recruiter"), ok)
	app.Get("/candidate", setRole("candidate"), RequireRole("recruiter"), ok)

	res, err := app.Test(httptest.NewRequest(http.MethodGet, "/recruiter", nil))
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusNoContent {
		t.Fatalf("expected 204, got %d", res.StatusCode)
	}

	req := httptest.NewRequest(http.MethodGet, "/candidate", nil)
	req.Header.Set(HeaderRequestID, "rid-1")
	res, err = app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403, got %d", res.StatusCode)
	}
	if res.Header.Get(HeaderRequestID) != "rid-1" {
		t.Fatalf("request id not echoed")
	}

	if len(rec.statuses) != 2 || rec.statuses[0] != fiber.StatusNoContent || rec.statuses[1] != fiber.StatusForbidden {
		t.Fatalf("unexpected recorded statuses %v", rec.statuses)
	}
}
