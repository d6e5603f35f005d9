package auth

import (
	"testing"

	"pulsefit/middleware"
	"pulsefit/models"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	user := models.User{
		UserID:  "user_abc123",
		Name:    "Jane Doe",
		IsAdmin: true,
	}

	token, err := generateAccessToken(user)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	claims, err := middleware.ValidateJWT("Bearer " + token)
	if err != nil {
		t.Fatalf("failed to validate token: %v", err)
	}
	if claims.UserID != user.UserID {
		t.Errorf("expected user id %s, got %s", user.UserID, claims.UserID)
	}
	if claims.Name != user.Name {
		t.Errorf("expected name %s, got %s", user.Name, claims.Name)
	}
	if !claims.IsAdmin {
		t.Error("admin flag lost in round trip")
	}
}

func TestValidateJWTRejectsGarbage(t *testing.T) {
	if _, err := middleware.ValidateJWT(""); err == nil {
		t.Error("empty token accepted")
	}
	if _, err := middleware.ValidateJWT("Bearer not.a.token"); err == nil {
		t.Error("malformed token accepted")
	}
	if _, err := middleware.ValidateJWT("Token abc"); err == nil {
		t.Error("non-bearer scheme accepted")
	}
}

func TestRefreshTokenHashing(t *testing.T) {
	tok, err := generateRefreshToken()
	if err != nil {
		t.Fatal(err)
	}
	if len(tok) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(tok))
	}
	if hashToken(tok) == tok {
		t.Fatal("stored token must be hashed")
	}
	if hashToken(tok) != hashToken(tok) {
		t.Fatal("hash must be deterministic")
	}
}
