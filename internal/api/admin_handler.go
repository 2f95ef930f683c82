package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"

	"persona-api/internal/storage"
)

// Admin handlers manage the candidate's own data. Every write is forced
// onto the configured candidate id so a stray payload cannot touch
// another row, and writes to publicly served tables drop the portfolio
// cache.

// AdminProfileHandler reads or replaces the profile row
// @Summary Get or update the candidate profile
// @Tags admin
// @Accept json
// @Produce json
// @Success 200 {object} storage.CandidateProfile
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /admin/profile [put]
func (a *API) AdminProfileHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		profile, err := a.db.GetProfile(r.Context(), a.candidateID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				writeError(w, http.StatusNotFound, "Profile not found")
				return
			}
			log.Printf("[Admin] Failed to load profile: %v", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeJSON(w, http.StatusOK, profile)

	case http.MethodPut:
		var p storage.CandidateProfile
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON")
			return
		}
		p.ID = a.candidateID
		if err := a.db.UpsertProfile(r.Context(), &p); err != nil {
			log.Printf("[Admin] Failed to upsert profile: %v", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		a.cache.Invalidate()
		writeJSON(w, http.StatusOK, p)

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// AdminExperiencesHandler manages experience records
// @Summary List, upsert or delete experiences
// @Tags admin
// @Accept json
// @Produce json
// @Success 200 {array} storage.Experience
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /admin/experiences [post]
func (a *API) AdminExperiencesHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		experiences, err := a.db.ListExperiences(r.Context(), a.candidateID)
		if err != nil {
			log.Printf("[Admin] Failed to list experiences: %v", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeJSON(w, http.StatusOK, experiences)

	case http.MethodPost:
		var e storage.Experience
		if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON")
			return
		}
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		e.CandidateID = a.candidateID
		if err := a.db.UpsertExperience(r.Context(), &e); err != nil {
			log.Printf("[Admin] Failed to upsert experience: %v", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		a.cache.Invalidate()
		writeJSON(w, http.StatusOK, e)

	case http.MethodDelete:
		id, ok := a.deleteID(w, r)
		if !ok {
			return
		}
		if err := a.db.DeleteExperience(r.Context(), a.candidateID, id); err != nil {
			log.Printf("[Admin] Failed to delete experience %s: %v", id, err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		a.cache.Invalidate()
		writeJSON(w, http.StatusOK, map[string]string{"deleted": id})

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// AdminSkillsHandler manages skill records
// @Summary List, upsert or delete skills
// @Tags admin
// @Accept json
// @Produce json
// @Success 200 {array} storage.Skill
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /admin/skills [post]
func (a *API) AdminSkillsHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		skills, err := a.db.ListSkills(r.Context(), a.candidateID)
		if err != nil {
			log.Printf("[Admin] Failed to list skills: %v", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeJSON(w, http.StatusOK, skills)

	case http.MethodPost:
		var s storage.Skill
		if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON")
			return
		}
		if s.ID == "" {
			s.ID = uuid.NewString()
		}
		s.CandidateID = a.candidateID
		if err := a.db.UpsertSkill(r.Context(), &s); err != nil {
			log.Printf("[Admin] Failed to upsert skill: %v", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		a.cache.Invalidate()
		writeJSON(w, http.StatusOK, s)

	case http.MethodDelete:
		id, ok := a.deleteID(w, r)
		if !ok {
			return
		}
		if err := a.db.DeleteSkill(r.Context(), a.candidateID, id); err != nil {
			log.Printf("[Admin] Failed to delete skill %s: %v", id, err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		a.cache.Invalidate()
		writeJSON(w, http.StatusOK, map[string]string{"deleted": id})

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// AdminGapsHandler manages gap/weakness records
// @Summary List, upsert or delete gaps
// @Tags admin
// @Accept json
// @Produce json
// @Success 200 {array} storage.Gap
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /admin/gaps [post]
func (a *API) AdminGapsHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		gaps, err := a.db.ListGaps(r.Context(), a.candidateID)
		if err != nil {
			log.Printf("[Admin] Failed to list gaps: %v", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeJSON(w, http.StatusOK, gaps)

	case http.MethodPost:
		var g storage.Gap
		if err := json.NewDecoder(r.Body).Decode(&g); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON")
			return
		}
		if g.ID == "" {
			g.ID = uuid.NewString()
		}
		g.CandidateID = a.candidateID
		if err := a.db.UpsertGap(r.Context(), &g); err != nil {
			log.Printf("[Admin] Failed to upsert gap: %v", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeJSON(w, http.StatusOK, g)

	case http.MethodDelete:
		id, ok := a.deleteID(w, r)
		if !ok {
			return
		}
		if err := a.db.DeleteGap(r.Context(), a.candidateID, id); err != nil {
			log.Printf("[Admin] Failed to delete gap %s: %v", id, err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"deleted": id})

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// AdminValuesHandler reads or replaces the single values/culture row
// @Summary Get or update values and culture preferences
// @Tags admin
// @Accept json
// @Produce json
// @Success 200 {object} storage.Values
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /admin/values [put]
func (a *API) AdminValuesHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		values, err := a.db.GetValues(r.Context(), a.candidateID)
		if err != nil {
			log.Printf("[Admin] Failed to load values: %v", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeJSON(w, http.StatusOK, values)

	case http.MethodPut:
		var v storage.Values
		if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON")
			return
		}
		if v.ID == "" {
			v.ID = uuid.NewString()
		}
		v.CandidateID = a.candidateID
		if err := a.db.UpsertValues(r.Context(), &v); err != nil {
			log.Printf("[Admin] Failed to upsert values: %v", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeJSON(w, http.StatusOK, v)

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// AdminFAQsHandler manages pre-written FAQ answers
// @Summary List, upsert or delete FAQ entries
// @Tags admin
// @Accept json
// @Produce json
// @Success 200 {array} storage.FAQ
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /admin/faqs [post]
func (a *API) AdminFAQsHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		faqs, err := a.db.ListFAQs(r.Context(), a.candidateID)
		if err != nil {
			log.Printf("[Admin] Failed to list FAQs: %v", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeJSON(w, http.StatusOK, faqs)

	case http.MethodPost:
		var f storage.FAQ
		if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON")
			return
		}
		if f.ID == "" {
			f.ID = uuid.NewString()
		}
		f.CandidateID = a.candidateID
		if err := a.db.UpsertFAQ(r.Context(), &f); err != nil {
			log.Printf("[Admin] Failed to upsert FAQ: %v", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeJSON(w, http.StatusOK, f)

	case http.MethodDelete:
		id, ok := a.deleteID(w, r)
		if !ok {
			return
		}
		if err := a.db.DeleteFAQ(r.Context(), a.candidateID, id); err != nil {
			log.Printf("[Admin] Failed to delete FAQ %s: %v", id, err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"deleted": id})

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// AdminInstructionsHandler manages persona steering instructions
// @Summary List, upsert or delete AI instructions
// @Tags admin
// @Accept json
// @Produce json
// @Success 200 {array} storage.Instruction
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /admin/instructions [post]
func (a *API) AdminInstructionsHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		instructions, err := a.db.ListInstructions(r.Context(), a.candidateID)
		if err != nil {
			log.Printf("[Admin] Failed to list instructions: %v", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeJSON(w, http.StatusOK, instructions)

	case http.MethodPost:
		var i storage.Instruction
		if err := json.NewDecoder(r.Body).Decode(&i); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON")
			return
		}
		if i.ID == "" {
			i.ID = uuid.NewString()
		}
		i.CandidateID = a.candidateID
		if err := a.db.UpsertInstruction(r.Context(), &i); err != nil {
			log.Printf("[Admin] Failed to upsert instruction: %v", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeJSON(w, http.StatusOK, i)

	case http.MethodDelete:
		id, ok := a.deleteID(w, r)
		if !ok {
			return
		}
		if err := a.db.DeleteInstruction(r.Context(), a.candidateID, id); err != nil {
			log.Printf("[Admin] Failed to delete instruction %s: %v", id, err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"deleted": id})

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// deleteID validates the ?id= query parameter shared by the delete
// endpoints. It writes the error response itself when invalid.
func (a *API) deleteID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id query parameter is required")
		return "", false
	}
	if _, err := uuid.Parse(id); err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return "", false
	}
	return id, true
}
