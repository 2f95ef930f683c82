package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"persona-api/internal/config"
	"persona-api/internal/jd"
	"persona-api/internal/llm"
	"persona-api/internal/persona"
	"persona-api/internal/storage"
)

// Token budgets per path, matching the original deployment.
const (
	chatMaxTokens     = 1024
	analysisMaxTokens = 2048
)

// Completer is the model gateway the handlers depend on; tests substitute
// a stub.
type Completer interface {
	Complete(ctx context.Context, system string, messages []llm.Message, maxTokens int) (string, error)
}

type API struct {
	db          *storage.DB
	loader      *persona.Loader
	llm         Completer
	extractor   *jd.Extractor
	cache       *portfolioCache
	candidateID string
}

func NewAPI(db *storage.DB, cfg *config.Config) *API {
	var completer Completer
	if cfg.LLMProvider != "" && cfg.LLMProvider != "none" {
		completer = llm.NewService(cfg.LLMProvider, cfg.LLMAPIKey, cfg.LLMModel)
	}

	return &API{
		db:          db,
		loader:      persona.NewLoader(db, cfg.CandidateID),
		llm:         completer,
		extractor:   jd.NewExtractor(cfg.UploadsDir),
		cache:       newPortfolioCache(5 * time.Minute),
		candidateID: cfg.CandidateID,
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[API] Failed to encode response: %v", err)
	}
}

// writeError emits the {"error": ...} body every endpoint uses. Raw
// failure details stay in the server log.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
