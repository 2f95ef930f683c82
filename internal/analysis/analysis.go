// Package analysis defines the response contract for the job-fit
// assessment: the fixed verdict schema the model is asked to emit, and the
// interpreter that turns a raw reply into it.
package analysis

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// The three allowed verdict literals. Parse does not reject other values;
// successful JSON decode is the only gate, matching the upstream contract's
// deliberate leniency.
const (
	VerdictStrongFit         = "strong_fit"
	VerdictWorthConversation = "worth_conversation"
	VerdictProbablyNot       = "probably_not"
)

// ErrMalformed means the model reply was not valid JSON after fence
// stripping. The raw text is for server-side logs only, never the client.
var ErrMalformed = errors.New("analysis response is not valid JSON")

type Gap struct {
	Requirement string `json:"requirement"`
	GapTitle    string `json:"gap_title"`
	Explanation string `json:"explanation"`
}

type Result struct {
	Verdict        string `json:"verdict"`
	Headline       string `json:"headline"`
	Opening        string `json:"opening"`
	Gaps           []Gap  `json:"gaps"`
	Transfers      string `json:"transfers"`
	Recommendation string `json:"recommendation"`
}

// Clean strips a single leading and trailing markdown code fence (with or
// without a json language tag) and trims whitespace. Leading/trailing only;
// idempotent.
func Clean(raw string) string {
	out := strings.TrimSpace(raw)
	if strings.HasPrefix(out, "```json") {
		out = out[len("```json"):]
	} else if strings.HasPrefix(out, "```") {
		out = out[len("```"):]
	}
	out = strings.TrimSuffix(strings.TrimSpace(out), "```")
	return strings.TrimSpace(out)
}

// Parse cleans the raw reply and decodes it against the verdict schema.
func Parse(raw string) (*Result, error) {
	var result Result
	if err := json.Unmarshal([]byte(Clean(raw)), &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return &result, nil
}
