package analysis

import (
	"errors"
	"testing"
)

const sampleJSON = `{
  "verdict": "worth_conversation",
  "headline": "Solid backend match, thin on mobile",
  "opening": "I can cover most of this role, but not the iOS half.",
  "gaps": [
    {
      "requirement": "3+ years of Swift",
      "gap_title": "No production iOS work",
      "explanation": "I have only toyed with Swift in side projects."
    }
  ],
  "transfers": "API design, Postgres, and team leadership all transfer directly.",
  "recommendation": "Worth a conversation if the mobile half is negotiable."
}`

func TestParsePlainJSON(t *testing.T) {
	result, err := Parse(sampleJSON)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if result.Verdict != VerdictWorthConversation {
		t.Errorf("verdict = %q, want %q", result.Verdict, VerdictWorthConversation)
	}
	if len(result.Gaps) != 1 {
		t.Fatalf("len(gaps) = %d, want 1", len(result.Gaps))
	}
	if result.Gaps[0].GapTitle != "No production iOS work" {
		t.Errorf("gap_title = %q", result.Gaps[0].GapTitle)
	}
}

func TestParseStripsFences(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"json fence", "```json\n" + sampleJSON + "\n```"},
		{"bare fence", "```\n" + sampleJSON + "\n```"},
		{"fence with surrounding whitespace", "\n\n```json\n" + sampleJSON + "\n```\n\n"},
	}

	want, err := Parse(sampleJSON)
	if err != nil {
		t.Fatalf("Parse(sampleJSON) returned error: %v", err)
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(tc.raw)
			if err != nil {
				t.Fatalf("Parse returned error: %v", err)
			}
			if got.Verdict != want.Verdict || got.Headline != want.Headline || len(got.Gaps) != len(want.Gaps) {
				t.Errorf("fenced parse differs from plain parse: got %+v, want %+v", got, want)
			}
		})
	}
}

func TestCleanIdempotent(t *testing.T) {
	raw := "```json\n" + sampleJSON + "\n```"
	once := Clean(raw)
	twice := Clean(once)
	if once != twice {
		t.Errorf("Clean is not idempotent:\nonce:  %q\ntwice: %q", once, twice)
	}
}

func TestCleanLeavesInteriorFencesAlone(t *testing.T) {
	raw := `{"opening": "use ` + "```" + ` for code blocks"}`
	if got := Clean(raw); got != raw {
		t.Errorf("Clean modified interior fence: %q", got)
	}
}

func TestParseMalformed(t *testing.T) {
	cases := []string{
		"",
		"I'd rather answer in prose, sorry.",
		`{"verdict": "strong_fit"`,
		"```json\nnot json at all\n```",
	}
	for _, raw := range cases {
		if _, err := Parse(raw); !errors.Is(err, ErrMalformed) {
			t.Errorf("Parse(%q) error = %v, want ErrMalformed", raw, err)
		}
	}
}

func TestParseEmptyGaps(t *testing.T) {
	raw := `{"verdict": "strong_fit", "headline": "h", "opening": "o", "gaps": [], "transfers": "t", "recommendation": "r"}`
	result, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if result.Gaps == nil || len(result.Gaps) != 0 {
		t.Errorf("gaps = %#v, want empty non-nil slice", result.Gaps)
	}
}

func TestParseToleratesUnknownVerdict(t *testing.T) {
	// The schema gate is JSON validity, not the verdict vocabulary.
	raw := `{"verdict": "maybe", "headline": "", "opening": "", "gaps": [], "transfers": "", "recommendation": ""}`
	result, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if result.Verdict != "maybe" {
		t.Errorf("verdict = %q, want %q", result.Verdict, "maybe")
	}
}
