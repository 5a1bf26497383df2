package security

import (
	"testing"
	"time"

	"github.com/AssetGridHQ/assetgrid-go/internal/domain/user"
)

func mustKey(t *testing.T, length int) string {
	t.Helper()
	key, err := GenerateSecureKey(length)
	if err != nil {
		t.Fatalf("key generation failed: %v", err)
	}
	return key
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	key := mustKey(t, 64) // 32-byte AES key, hex encoded
	plaintext := "libsql://tenant-db.turso.io?authToken=secret"

	encrypted, err := Encrypt(plaintext, key)
	if err != nil {
		t.Fatalf("encrypt failed: %v", err)
	}
	if encrypted == plaintext {
		t.Fatal("ciphertext equals plaintext")
	}

	decrypted, err := Decrypt(encrypted, key)
	if err != nil {
		t.Fatalf("decrypt failed: %v", err)
	}
	if decrypted != plaintext {
		t.Errorf("round trip = %q, want %q", decrypted, plaintext)
	}
}

func TestDecryptWithWrongKeyFails(t *testing.T) {
	encrypted, err := Encrypt("secret", mustKey(t, 64))
	if err != nil {
		t.Fatalf("encrypt failed: %v", err)
	}
	if _, err := Decrypt(encrypted, mustKey(t, 64)); err == nil {
		t.Error("expected decrypt with wrong key to fail")
	}
}

func TestEncryptRejectsBadKey(t *testing.T) {
	if _, err := Encrypt("data", ""); err == nil {
		t.Error("expected empty key to be rejected")
	}
	if _, err := Encrypt("data", "short"); err == nil {
		t.Error("expected short key to be rejected")
	}
}

func TestOperatorTokenRoundTrip(t *testing.T) {
	op := &user.Operator{
		ID:           GenerateULID(),
		TenantID:     "t1",
		Email:        "admin@example.com",
		Role:         user.RoleAdmin,
		Capabilities: user.CapabilitiesForRole(user.RoleAdmin),
	}

	secret := mustKey(t, 64)
	token, err := GenerateOperatorToken(op, secret, time.Hour)
	if err != nil {
		t.Fatalf("token generation failed: %v", err)
	}

	claims, err := ValidateJWT(token, secret)
	if err != nil {
		t.Fatalf("token validation failed: %v", err)
	}

	restored, err := OperatorFromClaims(claims)
	if err != nil {
		t.Fatalf("claim reconstruction failed: %v", err)
	}
	if restored.ID != op.ID || restored.TenantID != "t1" || restored.Role != user.RoleAdmin {
		t.Errorf("restored operator = %+v", restored)
	}
	if !restored.Capabilities.CanForceDelete || !restored.Capabilities.CanEditMetadata {
		t.Errorf("admin capabilities lost: %+v", restored.Capabilities)
	}
}

func TestEditorTokenCarriesRestrictedCapabilities(t *testing.T) {
	op := &user.Operator{
		ID:           GenerateULID(),
		TenantID:     "t1",
		Email:        "editor@example.com",
		Role:         user.RoleEditor,
		Capabilities: user.CapabilitiesForRole(user.RoleEditor),
	}

	secret := mustKey(t, 64)
	token, err := GenerateOperatorToken(op, secret, time.Hour)
	if err != nil {
		t.Fatalf("token generation failed: %v", err)
	}
	claims, err := ValidateJWT(token, secret)
	if err != nil {
		t.Fatalf("token validation failed: %v", err)
	}
	restored, err := OperatorFromClaims(claims)
	if err != nil {
		t.Fatalf("claim reconstruction failed: %v", err)
	}
	if restored.Capabilities.CanForceDelete {
		t.Error("editor must not carry the force-delete capability")
	}
	if !restored.Capabilities.CanEditMetadata {
		t.Error("editor should carry the metadata capability")
	}
}

func TestValidateJWTRejectsWrongSecret(t *testing.T) {
	op := &user.Operator{ID: "op", TenantID: "t1", Role: user.RoleEditor}
	token, err := GenerateOperatorToken(op, "secret-one", time.Hour)
	if err != nil {
		t.Fatalf("token generation failed: %v", err)
	}
	if _, err := ValidateJWT(token, "secret-two"); err == nil {
		t.Error("expected validation with wrong secret to fail")
	}
}

func TestValidateJWTRejectsExpiredToken(t *testing.T) {
	op := &user.Operator{ID: "op", TenantID: "t1", Role: user.RoleEditor}
	token, err := GenerateOperatorToken(op, "secret", -time.Minute)
	if err != nil {
		t.Fatalf("token generation failed: %v", err)
	}
	if _, err := ValidateJWT(token, "secret"); err == nil {
		t.Error("expected expired token to be rejected")
	}
}

func TestGenerateULIDIsUnique(t *testing.T) {
	a := GenerateULID()
	b := GenerateULID()
	if a == b {
		t.Error("consecutive ulids collided")
	}
	if len(a) != 26 {
		t.Errorf("ulid length = %d, want 26", len(a))
	}
}
