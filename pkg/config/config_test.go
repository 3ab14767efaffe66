package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("PREVIEW_BURST", "not-a-number")
	t.Setenv("PREVIEW_RATE_PER_SEC", "2.5")

	cfg := Load()
	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Port)
	}
	if cfg.PreviewBurst != 10 {
		t.Errorf("PreviewBurst = %d, want fallback 10", cfg.PreviewBurst)
	}
	if cfg.PreviewRatePerSec != 2.5 {
		t.Errorf("PreviewRatePerSec = %v, want 2.5", cfg.PreviewRatePerSec)
	}
	if cfg.IsProduction() {
		t.Error("expected non production by default")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		secret  string
		wantErr bool
	}{
		{"local default secret", "local", "secret", false},
		{"production default secret", "production", "secret", true},
		{"production empty secret", "production", "", true},
		{"production real secret", "production", "s3cr3t-from-vault", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{AppEnv: tt.env, JWTSecret: tt.secret}
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadProductionWithoutSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	if err := Load().Validate(); err == nil {
		t.Error("expected production config without JWT_SECRET to be rejected")
	}
}
