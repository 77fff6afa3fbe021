package internal

import "testing"

func TestDefaultConfigIsValid(t *testing.T) {
	if err := NewDefaultConfig().Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestConfigValidate_RejectsBadPort(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.App.HTTP.Port = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for port 0")
	}
	cfg.App.HTTP.Port = 70000
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for port 70000")
	}
}

func TestConfigValidate_RejectsZeroPageSize(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Content.PageSize = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for page_size 0")
	}
}

func TestAuthConfig(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Auth.Mode = AuthModeToken
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for token mode without token")
	}
	cfg.Auth.Token = "secret"
	if err := cfg.Validate(); err != nil {
		t.Errorf("token mode with token should validate: %v", err)
	}
	if !cfg.Auth.AuthEnabled() {
		t.Error("AuthEnabled = false in token mode")
	}

	cfg.Auth = AuthConfig{}
	if err := cfg.Validate(); err != nil {
		t.Errorf("empty auth should normalise to disabled: %v", err)
	}
	if cfg.Auth.Mode != AuthModeDisabled {
		t.Errorf("mode = %q, want %q", cfg.Auth.Mode, AuthModeDisabled)
	}
}
