package config

import (
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// DefaultCandidateID mirrors the fixed identifier the original deployment
// was seeded with. A real deployment overrides it with CANDIDATE_ID.
const DefaultCandidateID = "00000000-0000-0000-0000-000000000001"

type Config struct {
	DatabaseURL string
	Port        string

	// CandidateID scopes every query; the service is single-tenant.
	CandidateID string

	// LLM Configuration
	LLMProvider string // "anthropic", "openai", "gemini", or "none"
	LLMModel    string // e.g. "claude-sonnet-4-20250514", "gpt-4o-mini", "gemini-2.0-flash"
	LLMAPIKey   string

	UploadsDir string
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	candidateID := os.Getenv("CANDIDATE_ID")
	if candidateID == "" {
		candidateID = DefaultCandidateID
	} else if _, err := uuid.Parse(candidateID); err != nil {
		log.Printf("Warning: invalid CANDIDATE_ID %q, falling back to default", candidateID)
		candidateID = DefaultCandidateID
	}

	llmProvider := os.Getenv("LLM_PROVIDER")
	if llmProvider == "" {
		llmProvider = "anthropic" // default
	}

	llmModel := os.Getenv("LLM_MODEL")
	if llmModel == "" {
		switch llmProvider {
		case "anthropic":
			llmModel = "claude-sonnet-4-20250514"
		case "openai":
			llmModel = "gpt-4o-mini"
		case "gemini":
			llmModel = "gemini-2.0-flash"
		}
	}

	// Get API key based on provider
	llmAPIKey := ""
	switch llmProvider {
	case "anthropic":
		llmAPIKey = os.Getenv("ANTHROPIC_API_KEY")
	case "openai":
		llmAPIKey = os.Getenv("OPENAI_API_KEY")
	case "gemini":
		llmAPIKey = os.Getenv("GEMINI_API_KEY")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	uploadsDir := os.Getenv("UPLOADS_DIR")
	if uploadsDir == "" {
		uploadsDir = "./uploads"
	}

	return &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Port:        port,
		CandidateID: candidateID,
		LLMProvider: llmProvider,
		LLMModel:    llmModel,
		LLMAPIKey:   llmAPIKey,
		UploadsDir:  uploadsDir,
	}
}
