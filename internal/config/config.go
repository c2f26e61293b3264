package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort       string
	DatabaseDSN    string
	JWTSecret      string
	CORSOrigins    string
	TokenTTL       int // saniye cinsinden token geçerlilik süresi
	NearExpiryDays int // son kullanma tarihine kaç gün kala "nearly_expiring" sayılacak
}

func Load() *Config {
	// .env varsa yükle, yoksa sessizce devam et
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:       getEnv("HTTP_PORT", "8080"),
		DatabaseDSN:    getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=warehouse port=5432 sslmode=disable"),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		CORSOrigins:    getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		TokenTTL:       getEnvInt("TOKEN_TTL_SECONDS", 36000),
		NearExpiryDays: getEnvInt("NEAR_EXPIRY_DAYS", 7),
	}

	// Production güvenlik kontrolleri
	if cfg.JWTSecret == "" {
		log.Fatal("[FATAL] JWT_SECRET environment değişkeni tanımlanmamış! Production için zorunludur.")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("[FATAL] JWT_SECRET en az 32 karakter olmalıdır! Güvenlik riski.")
	}
	if cfg.DatabaseDSN == "host=localhost user=postgres password=postgres dbname=warehouse port=5432 sslmode=disable" {
		log.Println("[WARN] DATABASE_DSN varsayılan değer kullanılıyor, production için mutlaka kendi Postgres bağlantı bilgini tanımla.")
	}
	if cfg.CORSOrigins == "http://localhost:5173" {
		log.Println("[WARN] CORS_ALLOWED_ORIGINS varsayılan değer kullanılıyor, production için mutlaka kendi domain'ini tanımla.")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("[WARN] %s sayı değil (%q), varsayılan %d kullanılıyor", key, v, def)
		return def
	}
	return n
}
