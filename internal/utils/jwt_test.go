package utils

import (
	"testing"

	"pipecrm/internal/models"
)

const testSecret = "test-secret"

func testProfile() models.Profile {
	p := models.Profile{
		Email: "ada@example.com",
		Role:  models.RoleAdmin,
	}
	p.ID = "11111111-1111-1111-1111-111111111111"
	return p
}

// TestJWTRoundTrip verifies an issued access token parses back to the same
// identity claims.
func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT(testProfile(), testSecret)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := ParseJWT(token, testSecret)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != "11111111-1111-1111-1111-111111111111" {
		t.Errorf("user_id = %q", claims.UserID)
	}
	if claims.Email != "ada@example.com" || claims.Role != models.RoleAdmin {
		t.Errorf("claims = %+v", claims)
	}
}

// TestJWTWrongSecret verifies a token signed with another secret is rejected.
func TestJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWT(testProfile(), testSecret)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := ParseJWT(token, "other-secret"); err == nil {
		t.Fatal("expected signature error")
	}
}

// TestRefreshTokenCarriesOnlyUserID verifies refresh tokens do not embed
// email or role.
func TestRefreshTokenCarriesOnlyUserID(t *testing.T) {
	token, err := GenerateRefreshToken(testProfile(), testSecret)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	claims, err := ParseJWT(token, testSecret)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID == "" {
		t.Error("expected user_id in refresh token")
	}
	if claims.Email != "" || claims.Role != "" {
		t.Errorf("refresh token leaked claims: %+v", claims)
	}
}
