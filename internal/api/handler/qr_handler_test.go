package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/smartadmin/user-api/internal/core/credentials"
	"github.com/smartadmin/user-api/internal/core/domain"
	"github.com/smartadmin/user-api/internal/core/ports"
)

func TestQRHandler_Generate_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		generateQRFn: func(ctx context.Context, actor ports.Actor) (*ports.QRCode, error) {
			if actor.ID != "123456789" || actor.Role != domain.RoleUser {
				t.Fatalf("unexpected actor: %+v", actor)
			}
			return &ports.QRCode{Token: "short-token", Image: "aVBORw=="}, nil
		},
	}
	h := NewQRHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/qr/generate", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "123456789", "user")

	if err := h.Generate(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "short-token" || resp["qr_image"] != "aVBORw==" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestQRHandler_Generate_MissingClaims(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		generateQRFn: func(ctx context.Context, actor ports.Actor) (*ports.QRCode, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewQRHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/qr/generate", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Generate(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestQRHandler_Validate_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		validateQRFn: func(ctx context.Context, token string) (*ports.QRIdentity, error) {
			if token != "short-token" {
				t.Fatalf("unexpected token %q", token)
			}
			return &ports.QRIdentity{UserID: "123456789", Role: domain.RoleUser}, nil
		},
	}
	h := NewQRHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/qr/validate", strings.NewReader(`{"token":"short-token"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Validate(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["user_id"] != "123456789" || resp["role"] != "user" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestQRHandler_Validate_NoToken(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		validateQRFn: func(ctx context.Context, token string) (*ports.QRIdentity, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewQRHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/qr/validate", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Validate(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
	if msg, _ := he.Message.(string); msg != "no token provided" {
		t.Fatalf("unexpected message: %v", he.Message)
	}
}

func TestQRHandler_Validate_InvalidToken(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		validateQRFn: func(ctx context.Context, token string) (*ports.QRIdentity, error) {
			return nil, credentials.ErrTokenInvalid
		},
	}
	h := NewQRHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/qr/validate", strings.NewReader(`{"token":"garbage"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Validate(c); !errors.Is(err, credentials.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestQRHandler_Validate_ExpiredToken(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		validateQRFn: func(ctx context.Context, token string) (*ports.QRIdentity, error) {
			return nil, credentials.ErrTokenExpired
		},
	}
	h := NewQRHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/qr/validate", strings.NewReader(`{"token":"stale"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Validate(c); !errors.Is(err, credentials.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}
