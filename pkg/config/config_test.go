package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MONGO_URL", "mongodb://localhost:27017")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.App.Environment != "development" {
		t.Fatalf("unexpected environment %q", cfg.App.Environment)
	}
	if cfg.HTTP.Addr() != "0.0.0.0:8080" {
		t.Fatalf("unexpected addr %q", cfg.HTTP.Addr())
	}
	if cfg.Mongo.Database != "shyntr" {
		t.Fatalf("unexpected database %q", cfg.Mongo.Database)
	}
	if len(cfg.CORS.Origins) != 1 || cfg.CORS.Origins[0] != "*" {
		t.Fatalf("unexpected CORS origins %v", cfg.CORS.Origins)
	}
}

func TestLoadRequiresMongoURL(t *testing.T) {
	t.Setenv("MONGO_URL", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when MONGO_URL is unset")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("MONGO_URL", "mongodb://db.internal:27017")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("APP_ENV", "production")
	t.Setenv("CORS_ORIGINS", "https://admin.example.com,https://app.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.HTTP.Port != 9090 {
		t.Fatalf("unexpected port %d", cfg.HTTP.Port)
	}
	if cfg.App.Environment != "production" {
		t.Fatalf("unexpected environment %q", cfg.App.Environment)
	}
	if len(cfg.CORS.Origins) != 2 {
		t.Fatalf("unexpected CORS origins %v", cfg.CORS.Origins)
	}
}
