package api

import (
	"database/sql"
	"errors"
	"log"
	"net/http"

	"persona-api/internal/storage"
)

// PortfolioPayload is the public read model the portfolio page renders.
type PortfolioPayload struct {
	Profile     *storage.CandidateProfile `json:"profile"`
	Experiences []storage.Experience      `json:"experiences"`
	Skills      []storage.Skill           `json:"skills"`
}

// PortfolioHandler returns the public portfolio data
// @Summary Get portfolio data
// @Description Returns the candidate profile, experiences and skills shown on the public page. Cached for 5 minutes.
// @Tags portfolio
// @Produce json
// @Success 200 {object} PortfolioPayload
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /portfolio [get]
func (a *API) PortfolioHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if payload, ok := a.cache.Get(); ok {
		writeJSON(w, http.StatusOK, payload)
		return
	}

	ctx := r.Context()

	profile, err := a.db.GetProfile(ctx, a.candidateID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "Profile not found")
			return
		}
		log.Printf("[Portfolio] Failed to load profile: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	experiences, err := a.db.ListExperiences(ctx, a.candidateID)
	if err != nil {
		log.Printf("[Portfolio] Failed to load experiences: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	skills, err := a.db.ListSkills(ctx, a.candidateID)
	if err != nil {
		log.Printf("[Portfolio] Failed to load skills: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	payload := &PortfolioPayload{
		Profile:     profile,
		Experiences: experiences,
		Skills:      skills,
	}
	a.cache.Set(payload)

	writeJSON(w, http.StatusOK, payload)
}
