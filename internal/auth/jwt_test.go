package auth

import (
	"testing"
	"time"

	"warehouse-backend/internal/config"
	"warehouse-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret: "test-secret-test-secret-test-secret!",
		TokenTTL:  36000,
	}
}

func TestGenerateToken(t *testing.T) {
	cfg := testConfig()
	user := &models.User{
		ID:       42,
		Username: "ayse",
		IsStaff:  true,
	}

	tokenStr, err := GenerateToken(cfg, user)
	if err != nil {
		t.Fatalf("GenerateToken hata döndü: %v", err)
	}

	claims := &JWTCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("üretilen token doğrulanamadı: %v", err)
	}

	if claims.UserID != 42 {
		t.Errorf("user_id = %d, istenen 42", claims.UserID)
	}
	if claims.Username != "ayse" {
		t.Errorf("username = %q, istenen %q", claims.Username, "ayse")
	}
	if claims.Role != models.RoleStaff {
		t.Errorf("role = %q, istenen %q", claims.Role, models.RoleStaff)
	}
	if claims.ID == "" {
		t.Error("jti boş; token iptali için jti zorunlu")
	}

	// Geçerlilik süresi TTL kadar olmalı (birkaç saniye tolerans)
	ttl := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	want := time.Duration(cfg.TokenTTL) * time.Second
	if ttl < want-5*time.Second || ttl > want+5*time.Second {
		t.Errorf("token süresi %v, istenen %v", ttl, want)
	}
}

func TestGenerateToken_UniqueJTI(t *testing.T) {
	cfg := testConfig()
	user := &models.User{ID: 1, Username: "mehmet"}

	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		tokenStr, err := GenerateToken(cfg, user)
		if err != nil {
			t.Fatalf("GenerateToken hata döndü: %v", err)
		}
		claims := parseClaimsUnverified(tokenStr)
		if claims == nil {
			t.Fatal("claims çözümlenemedi")
		}
		if seen[claims.ID] {
			t.Fatalf("jti tekrar etti: %s", claims.ID)
		}
		seen[claims.ID] = true
	}
}

func TestGenerateToken_WrongSecretRejected(t *testing.T) {
	cfg := testConfig()
	user := &models.User{ID: 7, Username: "fatma"}

	tokenStr, err := GenerateToken(cfg, user)
	if err != nil {
		t.Fatalf("GenerateToken hata döndü: %v", err)
	}

	_, err = jwt.ParseWithClaims(tokenStr, &JWTCustomClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte("baska-bir-secret-baska-bir-secret!!"), nil
	})
	if err == nil {
		t.Error("yanlış secret ile token geçerli sayıldı")
	}
}
