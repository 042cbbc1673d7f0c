package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort    string
	JWTSecret   string
	CORSOrigins string

	// Row store: "postgres" (default) atau "sheets"
	StoreDriver string
	DatabaseDSN string

	// Hanya dipakai saat STORE_DRIVER=sheets
	GoogleCredentialsPath string
	SpreadsheetID         string

	// Satu akun operator warung
	AdminUsername     string
	AdminPasswordHash string // hash bcrypt
}

func Load() *Config {
	// .env opsional untuk development; production pakai env langsung
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		CORSOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),

		StoreDriver: getEnv("STORE_DRIVER", "postgres"),
		DatabaseDSN: getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=kasir port=5432 sslmode=disable"),

		GoogleCredentialsPath: getEnv("GOOGLE_CREDENTIALS_PATH", "credentials.json"),
		SpreadsheetID:         getEnv("SPREADSHEET_ID", ""),

		AdminUsername:     getEnv("ADMIN_USERNAME", "admin"),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
	}

	// Pemeriksaan keamanan untuk production
	if cfg.JWTSecret == "" {
		log.Fatal("[FATAL] Environment variable JWT_SECRET belum diset! Wajib untuk production.")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("[FATAL] JWT_SECRET minimal 32 karakter! Risiko keamanan.")
	}
	if cfg.AdminPasswordHash == "" {
		log.Fatal("[FATAL] ADMIN_PASSWORD_HASH belum diset! Isi dengan hash bcrypt password operator.")
	}
	if cfg.StoreDriver != "postgres" && cfg.StoreDriver != "sheets" {
		log.Fatalf("[FATAL] STORE_DRIVER tidak dikenal: %s (harus postgres|sheets)", cfg.StoreDriver)
	}
	if cfg.StoreDriver == "sheets" && cfg.SpreadsheetID == "" {
		log.Fatal("[FATAL] SPREADSHEET_ID wajib diisi saat STORE_DRIVER=sheets.")
	}
	if cfg.DatabaseDSN == "host=localhost user=postgres password=postgres dbname=kasir port=5432 sslmode=disable" {
		log.Println("[WARN] DATABASE_DSN masih nilai default, untuk production wajib set koneksi Postgres sendiri.")
	}
	if cfg.CORSOrigins == "http://localhost:5173" {
		log.Println("[WARN] CORS_ALLOWED_ORIGINS masih nilai default, untuk production wajib set domain sendiri.")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
