package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/marketbay/storefront-api/internal/core/domain"
	"github.com/marketbay/storefront-api/internal/core/ports"
)

func TestRefreshHandler_Refresh_Success(t *testing.T) {
	stub := &stubSessionService{
		refreshFn: func(_ context.Context, token string) (*ports.SessionResult, error) {
			if token != "refresh456" {
				t.Fatalf("unexpected token: %q", token)
			}
			return &ports.SessionResult{
				Roles:       []int{domain.RoleUser, domain.RoleAdmin},
				AccessToken: "fresh-access",
			}, nil
		},
	}
	handler := NewRefreshHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/refresh", "")
	c.Request().AddCookie(&http.Cookie{Name: "jwt", Value: "refresh456"})

	if err := handler.Refresh(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.AccessToken != "fresh-access" || len(resp.Roles) != 2 {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestRefreshHandler_Refresh_MissingCookie(t *testing.T) {
	stub := &stubSessionService{
		refreshFn: func(context.Context, string) (*ports.SessionResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewRefreshHandler(stub)

	c, _ := newTestContext(t, http.MethodGet, "/refresh", "")
	err := handler.Refresh(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestRefreshHandler_Refresh_UnknownToken(t *testing.T) {
	stub := &stubSessionService{
		refreshFn: func(context.Context, string) (*ports.SessionResult, error) {
			return nil, domain.ErrSessionNotFound
		},
	}
	handler := NewRefreshHandler(stub)

	c, _ := newTestContext(t, http.MethodGet, "/refresh", "")
	c.Request().AddCookie(&http.Cookie{Name: "jwt", Value: "stale"})

	if err := handler.Refresh(c); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound to propagate, got %v", err)
	}
}

func TestRefreshHandler_Status_NeverErrors(t *testing.T) {
	stub := &stubSessionService{
		statusFn: func(_ context.Context, token string) *ports.SessionStatus {
			if token == "admin-token" {
				return &ports.SessionStatus{
					IsAdmin:  true,
					Roles:    []int{domain.RoleUser, domain.RoleAdmin},
					Username: "walter",
				}
			}
			return &ports.SessionStatus{Roles: []int{}}
		},
	}
	handler := NewRefreshHandler(stub)

	// Known session.
	c, rec := newTestContext(t, http.MethodGet, "/refresh/status", "")
	c.Request().AddCookie(&http.Cookie{Name: "jwt", Value: "admin-token"})
	if err := handler.Status(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var st ports.SessionStatus
	if err := json.Unmarshal(rec.Body.Bytes(), &st); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !st.IsAdmin || st.Username != "walter" {
		t.Fatalf("unexpected status: %+v", st)
	}

	// No cookie at all still answers 200 with the anonymous shape.
	c, rec = newTestContext(t, http.MethodGet, "/refresh/status", "")
	if err := handler.Status(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	st = ports.SessionStatus{}
	if err := json.Unmarshal(rec.Body.Bytes(), &st); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if st.IsAdmin || st.IsEditor || st.Username != "" || len(st.Roles) != 0 {
		t.Fatalf("expected anonymous status, got %+v", st)
	}
}
