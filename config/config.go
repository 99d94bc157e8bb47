package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config carries everything the process reads from the environment.
type Config struct {
	Port               string
	SupabaseURL        string
	SupabaseAnonKey    string
	SupabaseServiceKey string
	SupabaseJWTSecret  string
	FirebaseCredFile   string
	FirebaseCredJSON   string
	AllowedOrigins     []string
}

// Load reads .env (when present) and the process environment. Missing
// required keys are fatal.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using process environment")
	}

	cfg := &Config{
		Port:               envOr("PORT", "8080"),
		SupabaseURL:        strings.TrimRight(os.Getenv("SUPABASE_URL"), "/"),
		SupabaseAnonKey:    os.Getenv("SUPABASE_ANON_KEY"),
		SupabaseServiceKey: os.Getenv("SUPABASE_SERVICE_ROLE_KEY"),
		SupabaseJWTSecret:  os.Getenv("SUPABASE_JWT_SECRET"),
		FirebaseCredFile:   os.Getenv("FIREBASE_CREDENTIALS_FILE"),
		FirebaseCredJSON:   os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON"),
	}

	if raw := os.Getenv("CORS_ALLOWED_ORIGINS"); raw != "" {
		for _, origin := range strings.Split(raw, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
			}
		}
	}

	if cfg.SupabaseURL == "" || cfg.SupabaseAnonKey == "" {
		log.Fatalf("SUPABASE_URL and SUPABASE_ANON_KEY must be set")
	}
	if cfg.SupabaseJWTSecret == "" {
		log.Fatalf("SUPABASE_JWT_SECRET must be set")
	}
	if cfg.SupabaseServiceKey == "" {
		log.Fatalf("SUPABASE_SERVICE_ROLE_KEY must be set")
	}

	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
