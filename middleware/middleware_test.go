package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pulsefit/globals"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
)

func mintToken(t *testing.T, userID string, isAdmin bool) string {
	t.Helper()
	claims := Claims{
		Name:    "Test User",
		UserID:  userID,
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(globals.JwtSecret)
	if err != nil {
		t.Fatal(err)
	}
	return "Bearer " + signed
}

func TestAuthenticateRejectsMissingToken(t *testing.T) {
	h := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		t.Fatal("handler must not run without a token")
	})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/api/bookings", nil), nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestOptionalAuthAnonymousPassesThrough(t *testing.T) {
	ran := false
	h := OptionalAuth(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		ran = true
		if _, ok := r.Context().Value(globals.UserIDKey).(string); ok {
			t.Fatal("anonymous request must not carry a user id")
		}
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/api/slots/2030-01-07", nil), nil)
	if !ran || rec.Code != http.StatusOK {
		t.Fatalf("anonymous request must reach the handler, ran=%v code=%d", ran, rec.Code)
	}
}

func TestOptionalAuthAttachesIdentity(t *testing.T) {
	h := OptionalAuth(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		userID, _ := r.Context().Value(globals.UserIDKey).(string)
		if userID != "user_abc" {
			t.Fatalf("expected user_abc in context, got %q", userID)
		}
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/slots/2030-01-07", nil)
	req.Header.Set("Authorization", mintToken(t, "user_abc", false))
	rec := httptest.NewRecorder()
	h(rec, req, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestOptionalAuthIgnoresGarbageToken(t *testing.T) {
	h := OptionalAuth(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		if _, ok := r.Context().Value(globals.UserIDKey).(string); ok {
			t.Fatal("a bad token must not attach an identity")
		}
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/slots/2030-01-07", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := httptest.NewRecorder()
	h(rec, req, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
