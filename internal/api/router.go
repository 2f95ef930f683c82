package api

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

func NewRouter(a *API) http.Handler {
	mux := http.NewServeMux()

	// Swagger documentation - must be registered first
	mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"),
	))

	// Health check (for Railway, k8s, etc.)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	// Public endpoints
	mux.HandleFunc("/api/chat", a.ChatHandler)
	mux.HandleFunc("/api/analyze-jd", a.AnalyzeJDHandler)
	mux.HandleFunc("/api/analyze-jd/upload", a.AnalyzeJDUploadHandler)
	mux.HandleFunc("/api/portfolio", a.PortfolioHandler)

	// Admin endpoints (auth is handled in front of this service)
	mux.HandleFunc("/api/admin/profile", a.AdminProfileHandler)
	mux.HandleFunc("/api/admin/experiences", a.AdminExperiencesHandler)
	mux.HandleFunc("/api/admin/skills", a.AdminSkillsHandler)
	mux.HandleFunc("/api/admin/gaps", a.AdminGapsHandler)
	mux.HandleFunc("/api/admin/values", a.AdminValuesHandler)
	mux.HandleFunc("/api/admin/faqs", a.AdminFAQsHandler)
	mux.HandleFunc("/api/admin/instructions", a.AdminInstructionsHandler)

	return withCORS(mux)
}
