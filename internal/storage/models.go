package storage

import "time"

// CandidateProfile is the single row describing the candidate this
// deployment represents. The prompt pipeline reads it; only the admin
// panel writes it.
type CandidateProfile struct {
	ID                  string     `json:"id"`
	Name                string     `json:"name"`
	Email               string     `json:"email"`
	Title               string     `json:"title"`
	TargetTitles        []string   `json:"target_titles"`
	TargetCompanyStages []string   `json:"target_company_stages"`
	ElevatorPitch       string     `json:"elevator_pitch"`
	CareerNarrative     string     `json:"career_narrative"`
	LookingFor          string     `json:"looking_for"`
	NotLookingFor       string     `json:"not_looking_for"`
	ManagementStyle     string     `json:"management_style"`
	WorkStyle           string     `json:"work_style"`
	SalaryMin           int        `json:"salary_min"`
	SalaryMax           int        `json:"salary_max"`
	AvailabilityStatus  string     `json:"availability_status"`
	AvailabilityDate    *time.Time `json:"availability_date"`
	Location            string     `json:"location"`
	RemotePreference    string     `json:"remote_preference"`
	GithubURL           string     `json:"github_url"`
	LinkedinURL         string     `json:"linkedin_url"`
	TwitterURL          string     `json:"twitter_url"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// Experience is one work-history entry. BulletPoints are the public
// achievements shown on the site; the remaining fields are private
// context surfaced only inside the model prompt.
type Experience struct {
	ID                  string            `json:"id"`
	CandidateID         string            `json:"candidate_id"`
	CompanyName         string            `json:"company_name"`
	Title               string            `json:"title"`
	TitleProgression    string            `json:"title_progression"`
	StartDate           time.Time         `json:"start_date"`
	EndDate             *time.Time        `json:"end_date"`
	IsCurrent           bool              `json:"is_current"`
	BulletPoints        []string          `json:"bullet_points"`
	WhyJoined           string            `json:"why_joined"`
	WhyLeft             string            `json:"why_left"`
	ActualContributions string            `json:"actual_contributions"`
	ProudestAchievement string            `json:"proudest_achievement"`
	WouldDoDifferently  string            `json:"would_do_differently"`
	ChallengesFaced     string            `json:"challenges_faced"`
	LessonsLearned      string            `json:"lessons_learned"`
	ManagerWouldSay     string            `json:"manager_would_say"`
	ReportsWouldSay     string            `json:"reports_would_say"`
	QuantifiedImpact    map[string]string `json:"quantified_impact"`
	DisplayOrder        int               `json:"display_order"`
}

// Skill categories form a closed set; every skill belongs to exactly one.
const (
	SkillStrong   = "strong"
	SkillModerate = "moderate"
	SkillGap      = "gap"
)

type Skill struct {
	ID              string     `json:"id"`
	CandidateID     string     `json:"candidate_id"`
	SkillName       string     `json:"skill_name"`
	Category        string     `json:"category"`
	SelfRating      *int       `json:"self_rating"`
	Evidence        string     `json:"evidence"`
	HonestNotes     string     `json:"honest_notes"`
	YearsExperience *float64   `json:"years_experience"`
	LastUsed        *time.Time `json:"last_used"`
	DisplayOrder    int        `json:"display_order"`
}

// Gap is an explicitly acknowledged weakness, distinct from skills
// merely tagged with the gap category.
type Gap struct {
	ID                 string `json:"id"`
	CandidateID        string `json:"candidate_id"`
	GapType            string `json:"gap_type"` // skill_gap, experience_gap, environment_mismatch, role_type_mismatch
	Description        string `json:"description"`
	WhyItsAGap         string `json:"why_its_a_gap"`
	InterestInLearning bool   `json:"interest_in_learning"`
}

// Values is the at-most-one values/culture row for the candidate.
type Values struct {
	ID                         string   `json:"id"`
	CandidateID                string   `json:"candidate_id"`
	MustHaves                  []string `json:"must_haves"`
	Dealbreakers               []string `json:"dealbreakers"`
	ManagementStylePreferences string   `json:"management_style_preferences"`
	TeamSizePreferences        string   `json:"team_size_preferences"`
	HowHandleConflict          string   `json:"how_handle_conflict"`
	HowHandleAmbiguity         string   `json:"how_handle_ambiguity"`
	HowHandleFailure           string   `json:"how_handle_failure"`
}

type FAQ struct {
	ID           string `json:"id"`
	CandidateID  string `json:"candidate_id"`
	Question     string `json:"question"`
	Answer       string `json:"answer"`
	IsCommon     bool   `json:"is_common"`
	DisplayOrder int    `json:"display_order"`
}

// Instruction is an operator-supplied directive rendered at the top of
// the assembled prompt, ahead of all biographical data.
type Instruction struct {
	ID              string `json:"id"`
	CandidateID     string `json:"candidate_id"`
	Instruction     string `json:"instruction"`
	InstructionType string `json:"instruction_type"`
	Priority        int    `json:"priority"`
}

// ChatMessage is one turn in an append-only per-session log.
type ChatMessage struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Role      string    `json:"role"` // user or assistant
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
