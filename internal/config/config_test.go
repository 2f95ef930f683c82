package config

import "testing"

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("CANDIDATE_ID", "")
	t.Setenv("LLM_PROVIDER", "")
	t.Setenv("LLM_MODEL", "")
	t.Setenv("PORT", "")
	t.Setenv("UPLOADS_DIR", "")

	cfg := LoadConfig()

	if cfg.CandidateID != DefaultCandidateID {
		t.Errorf("CandidateID = %q, want default", cfg.CandidateID)
	}
	if cfg.LLMProvider != "anthropic" {
		t.Errorf("LLMProvider = %q, want anthropic", cfg.LLMProvider)
	}
	if cfg.LLMModel != "claude-sonnet-4-20250514" {
		t.Errorf("LLMModel = %q", cfg.LLMModel)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.UploadsDir != "./uploads" {
		t.Errorf("UploadsDir = %q", cfg.UploadsDir)
	}
}

func TestLoadConfigInvalidCandidateID(t *testing.T) {
	t.Setenv("CANDIDATE_ID", "not-a-uuid")

	cfg := LoadConfig()
	if cfg.CandidateID != DefaultCandidateID {
		t.Errorf("CandidateID = %q, want fallback to default", cfg.CandidateID)
	}
}

func TestLoadConfigProviderModels(t *testing.T) {
	cases := []struct {
		provider string
		model    string
	}{
		{"anthropic", "claude-sonnet-4-20250514"},
		{"openai", "gpt-4o-mini"},
		{"gemini", "gemini-2.0-flash"},
	}
	for _, tc := range cases {
		t.Run(tc.provider, func(t *testing.T) {
			t.Setenv("LLM_PROVIDER", tc.provider)
			t.Setenv("LLM_MODEL", "")

			cfg := LoadConfig()
			if cfg.LLMModel != tc.model {
				t.Errorf("LLMModel = %q, want %q", cfg.LLMModel, tc.model)
			}
		})
	}
}

func TestLoadConfigModelOverride(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "anthropic")
	t.Setenv("LLM_MODEL", "claude-opus-4-20250514")

	cfg := LoadConfig()
	if cfg.LLMModel != "claude-opus-4-20250514" {
		t.Errorf("LLMModel = %q, want the explicit override", cfg.LLMModel)
	}
}
