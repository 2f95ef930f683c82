package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"persona-api/internal/analysis"
	"persona-api/internal/llm"
	"persona-api/internal/persona"
)

type AnalyzeJDRequest struct {
	JobDescription string `json:"jobDescription"`
}

// AnalyzeJDHandler produces a structured fit verdict for a pasted job description
// @Summary Analyze a job description
// @Description Compares the job description against the candidate's data and returns a structured verdict
// @Tags persona
// @Accept json
// @Produce json
// @Param request body AnalyzeJDRequest true "Job description text"
// @Success 200 {object} analysis.Result
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /analyze-jd [post]
func (a *API) AnalyzeJDHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req AnalyzeJDRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if strings.TrimSpace(req.JobDescription) == "" {
		writeError(w, http.StatusBadRequest, "Job description is required")
		return
	}

	a.analyzeJD(w, r, req.JobDescription)
}

// AnalyzeJDUploadHandler accepts the job description as a document upload
// @Summary Analyze an uploaded job description file
// @Description Extracts text from a PDF/DOCX/TXT upload and runs the same fit analysis
// @Tags persona
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Job description file (PDF, DOCX or TXT)"
// @Success 200 {object} analysis.Result
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /analyze-jd/upload [post]
func (a *API) AnalyzeJDUploadHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	// Max 10MB upload
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "file too large or invalid (max 10MB)")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file uploaded")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".pdf" && ext != ".docx" && ext != ".doc" && ext != ".rtf" && ext != ".odt" && ext != ".txt" {
		writeError(w, http.StatusBadRequest, "invalid file type (supported: PDF, DOCX, DOC, RTF, ODT, TXT)")
		return
	}

	jobDescription, err := a.extractor.ExtractText(header.Filename, file)
	if err != nil {
		log.Printf("[AnalyzeJD] Failed to extract text from %s: %v", header.Filename, err)
		writeError(w, http.StatusInternalServerError, "failed to extract text from file")
		return
	}

	if jobDescription == "" {
		writeError(w, http.StatusBadRequest, "Job description is required")
		return
	}

	log.Printf("[AnalyzeJD] Extracted %d characters from %s", len(jobDescription), header.Filename)

	a.analyzeJD(w, r, jobDescription)
}

// analyzeJD is the shared tail of both analysis entry points.
func (a *API) analyzeJD(w http.ResponseWriter, r *http.Request, jobDescription string) {
	pc, err := a.loader.Load(r.Context(), persona.LoadOptions{})
	if err != nil {
		if errors.Is(err, persona.ErrProfileNotFound) {
			writeError(w, http.StatusNotFound, "Profile not found")
			return
		}
		log.Printf("[AnalyzeJD] Context load failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	systemPrompt := persona.AnalysisSystemPrompt(pc)
	messages := []llm.Message{
		{Role: "user", Content: persona.AnalysisUserTurn(jobDescription)},
	}

	reply, err := a.complete(r.Context(), systemPrompt, messages, analysisMaxTokens)
	if err != nil {
		if errors.Is(err, llm.ErrNotConfigured) {
			writeError(w, http.StatusInternalServerError, "AI provider not configured")
			return
		}
		log.Printf("[AnalyzeJD] Model call failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to get AI analysis")
		return
	}

	result, err := analysis.Parse(reply)
	if err != nil {
		// The raw reply stays server-side; the client gets a generic error.
		log.Printf("[AnalyzeJD] Failed to parse AI response: %v\nraw: %s", err, reply)
		writeError(w, http.StatusInternalServerError, "Failed to parse analysis response")
		return
	}

	writeJSON(w, http.StatusOK, result)
}
