package persona

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"persona-api/internal/storage"
)

// ErrProfileNotFound means the deployment has no seeded candidate profile.
// All other collections default to empty instead of failing.
var ErrProfileNotFound = errors.New("candidate profile not found")

// historyLimit caps how many prior turns are replayed to the model.
const historyLimit = 20

// Context is everything the prompt assembler needs about the candidate.
type Context struct {
	Profile      *storage.CandidateProfile
	Experiences  []storage.Experience
	Skills       []storage.Skill
	Gaps         []storage.Gap
	Values       *storage.Values
	FAQs         []storage.FAQ
	Instructions []storage.Instruction
	History      []storage.ChatMessage
}

// Loader fetches the candidate context with one parallel fan-out per
// request. Every read is scoped to the single configured candidate id.
type Loader struct {
	db          *storage.DB
	candidateID string
}

func NewLoader(db *storage.DB, candidateID string) *Loader {
	return &Loader{db: db, candidateID: candidateID}
}

type LoadOptions struct {
	// SessionID enables the chat-history read when non-empty.
	SessionID string
	// WithFAQ includes pre-written FAQ answers (chat path only).
	WithFAQ bool
}

// Load runs all reads concurrently and blocks until every one has finished
// or one has failed. There is no partial-result path: a failed read fails
// the whole load.
func (l *Loader) Load(ctx context.Context, opts LoadOptions) (*Context, error) {
	pc := &Context{}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		profile, err := l.db.GetProfile(gctx, l.candidateID)
		if err == sql.ErrNoRows {
			return ErrProfileNotFound
		}
		if err != nil {
			return fmt.Errorf("load profile: %w", err)
		}
		pc.Profile = profile
		return nil
	})
	g.Go(func() error {
		experiences, err := l.db.ListExperiences(gctx, l.candidateID)
		if err != nil {
			return fmt.Errorf("load experiences: %w", err)
		}
		pc.Experiences = experiences
		return nil
	})
	g.Go(func() error {
		skills, err := l.db.ListSkills(gctx, l.candidateID)
		if err != nil {
			return fmt.Errorf("load skills: %w", err)
		}
		pc.Skills = skills
		return nil
	})
	g.Go(func() error {
		gaps, err := l.db.ListGaps(gctx, l.candidateID)
		if err != nil {
			return fmt.Errorf("load gaps: %w", err)
		}
		pc.Gaps = gaps
		return nil
	})
	g.Go(func() error {
		values, err := l.db.GetValues(gctx, l.candidateID)
		if err != nil {
			return fmt.Errorf("load values: %w", err)
		}
		pc.Values = values
		return nil
	})
	g.Go(func() error {
		instructions, err := l.db.ListInstructions(gctx, l.candidateID)
		if err != nil {
			return fmt.Errorf("load instructions: %w", err)
		}
		pc.Instructions = instructions
		return nil
	})

	if opts.WithFAQ {
		g.Go(func() error {
			faqs, err := l.db.ListFAQs(gctx, l.candidateID)
			if err != nil {
				return fmt.Errorf("load faqs: %w", err)
			}
			pc.FAQs = faqs
			return nil
		})
	}
	if opts.SessionID != "" {
		g.Go(func() error {
			history, err := l.db.GetChatHistory(gctx, opts.SessionID, historyLimit)
			if err != nil {
				return fmt.Errorf("load chat history: %w", err)
			}
			pc.History = history
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return pc, nil
}
