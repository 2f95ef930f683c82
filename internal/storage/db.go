package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
	"time"

	"github.com/lib/pq"
)

type DB struct {
	connection *sql.DB
}

func NewDB(dataSourceName string) (*DB, error) {
	db, err := sql.Open("postgres", dataSourceName)
	if err != nil {
		return nil, err
	}

	// Connection pool tuning
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return &DB{connection: db}, nil
}

func (db *DB) Close() {
	if err := db.connection.Close(); err != nil {
		log.Println("Error closing the database connection:", err)
	}
}

// GetConnection returns the underlying database connection for advanced queries
func (db *DB) GetConnection() *sql.DB {
	return db.connection
}

// GetProfile returns the candidate profile row, or sql.ErrNoRows when the
// deployment has not been seeded yet.
func (db *DB) GetProfile(ctx context.Context, candidateID string) (*CandidateProfile, error) {
	p := &CandidateProfile{}
	query := `SELECT id, name, COALESCE(email, ''), COALESCE(title, ''),
	                 COALESCE(target_titles, '{}'), COALESCE(target_company_stages, '{}'),
	                 COALESCE(elevator_pitch, ''), COALESCE(career_narrative, ''),
	                 COALESCE(looking_for, ''), COALESCE(not_looking_for, ''),
	                 COALESCE(management_style, ''), COALESCE(work_style, ''),
	                 COALESCE(salary_min, 0), COALESCE(salary_max, 0),
	                 COALESCE(availability_status, ''), availability_date,
	                 COALESCE(location, ''), COALESCE(remote_preference, ''),
	                 COALESCE(github_url, ''), COALESCE(linkedin_url, ''), COALESCE(twitter_url, ''),
	                 updated_at
	          FROM candidate_profile WHERE id = $1`
	var availDate sql.NullTime
	err := db.connection.QueryRowContext(ctx, query, candidateID).Scan(
		&p.ID, &p.Name, &p.Email, &p.Title,
		pq.Array(&p.TargetTitles), pq.Array(&p.TargetCompanyStages),
		&p.ElevatorPitch, &p.CareerNarrative,
		&p.LookingFor, &p.NotLookingFor,
		&p.ManagementStyle, &p.WorkStyle,
		&p.SalaryMin, &p.SalaryMax,
		&p.AvailabilityStatus, &availDate,
		&p.Location, &p.RemotePreference,
		&p.GithubURL, &p.LinkedinURL, &p.TwitterURL,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if availDate.Valid {
		p.AvailabilityDate = &availDate.Time
	}
	return p, nil
}

// ListExperiences returns the candidate's experience records ordered by the
// display_order field, which the prompt assembler relies on.
func (db *DB) ListExperiences(ctx context.Context, candidateID string) ([]Experience, error) {
	query := `SELECT id, candidate_id, company_name, COALESCE(title, ''), COALESCE(title_progression, ''),
	                 start_date, end_date, is_current, COALESCE(bullet_points, '{}'),
	                 COALESCE(why_joined, ''), COALESCE(why_left, ''), COALESCE(actual_contributions, ''),
	                 COALESCE(proudest_achievement, ''), COALESCE(would_do_differently, ''),
	                 COALESCE(challenges_faced, ''), COALESCE(lessons_learned, ''),
	                 COALESCE(manager_would_say, ''), COALESCE(reports_would_say, ''),
	                 COALESCE(quantified_impact, '{}'), display_order
	          FROM experiences WHERE candidate_id = $1 ORDER BY display_order`
	rows, err := db.connection.QueryContext(ctx, query, candidateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []Experience
	for rows.Next() {
		var e Experience
		var endDate sql.NullTime
		var impact []byte
		if err := rows.Scan(&e.ID, &e.CandidateID, &e.CompanyName, &e.Title, &e.TitleProgression,
			&e.StartDate, &endDate, &e.IsCurrent, pq.Array(&e.BulletPoints),
			&e.WhyJoined, &e.WhyLeft, &e.ActualContributions,
			&e.ProudestAchievement, &e.WouldDoDifferently,
			&e.ChallengesFaced, &e.LessonsLearned,
			&e.ManagerWouldSay, &e.ReportsWouldSay,
			&impact, &e.DisplayOrder); err != nil {
			return nil, err
		}
		if endDate.Valid {
			e.EndDate = &endDate.Time
		}
		if len(impact) > 0 {
			if err := json.Unmarshal(impact, &e.QuantifiedImpact); err != nil {
				log.Printf("[Storage] Skipping malformed quantified_impact for experience %s: %v", e.ID, err)
			}
		}
		res = append(res, e)
	}
	return res, rows.Err()
}

func (db *DB) ListSkills(ctx context.Context, candidateID string) ([]Skill, error) {
	query := `SELECT id, candidate_id, skill_name, category, self_rating,
	                 COALESCE(evidence, ''), COALESCE(honest_notes, ''),
	                 years_experience, last_used, display_order
	          FROM skills WHERE candidate_id = $1 ORDER BY display_order`
	rows, err := db.connection.QueryContext(ctx, query, candidateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []Skill
	for rows.Next() {
		var s Skill
		var rating sql.NullInt64
		var years sql.NullFloat64
		var lastUsed sql.NullTime
		if err := rows.Scan(&s.ID, &s.CandidateID, &s.SkillName, &s.Category, &rating,
			&s.Evidence, &s.HonestNotes, &years, &lastUsed, &s.DisplayOrder); err != nil {
			return nil, err
		}
		if rating.Valid {
			r := int(rating.Int64)
			s.SelfRating = &r
		}
		if years.Valid {
			y := years.Float64
			s.YearsExperience = &y
		}
		if lastUsed.Valid {
			s.LastUsed = &lastUsed.Time
		}
		res = append(res, s)
	}
	return res, rows.Err()
}

func (db *DB) ListGaps(ctx context.Context, candidateID string) ([]Gap, error) {
	query := `SELECT id, candidate_id, gap_type, description, COALESCE(why_its_a_gap, ''), interest_in_learning
	          FROM gaps_weaknesses WHERE candidate_id = $1`
	rows, err := db.connection.QueryContext(ctx, query, candidateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []Gap
	for rows.Next() {
		var g Gap
		if err := rows.Scan(&g.ID, &g.CandidateID, &g.GapType, &g.Description, &g.WhyItsAGap, &g.InterestInLearning); err != nil {
			return nil, err
		}
		res = append(res, g)
	}
	return res, rows.Err()
}

// GetValues returns the candidate's values/culture row, or nil when none
// exists. A missing row is normal, not an error.
func (db *DB) GetValues(ctx context.Context, candidateID string) (*Values, error) {
	v := &Values{}
	query := `SELECT id, candidate_id, COALESCE(must_haves, '{}'), COALESCE(dealbreakers, '{}'),
	                 COALESCE(management_style_preferences, ''), COALESCE(team_size_preferences, ''),
	                 COALESCE(how_handle_conflict, ''), COALESCE(how_handle_ambiguity, ''),
	                 COALESCE(how_handle_failure, '')
	          FROM values_culture WHERE candidate_id = $1`
	err := db.connection.QueryRowContext(ctx, query, candidateID).Scan(
		&v.ID, &v.CandidateID, pq.Array(&v.MustHaves), pq.Array(&v.Dealbreakers),
		&v.ManagementStylePreferences, &v.TeamSizePreferences,
		&v.HowHandleConflict, &v.HowHandleAmbiguity, &v.HowHandleFailure,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (db *DB) ListFAQs(ctx context.Context, candidateID string) ([]FAQ, error) {
	query := `SELECT id, candidate_id, question, answer, is_common, display_order
	          FROM faq_responses WHERE candidate_id = $1 ORDER BY display_order`
	rows, err := db.connection.QueryContext(ctx, query, candidateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []FAQ
	for rows.Next() {
		var f FAQ
		if err := rows.Scan(&f.ID, &f.CandidateID, &f.Question, &f.Answer, &f.IsCommon, &f.DisplayOrder); err != nil {
			return nil, err
		}
		res = append(res, f)
	}
	return res, rows.Err()
}

func (db *DB) ListInstructions(ctx context.Context, candidateID string) ([]Instruction, error) {
	query := `SELECT id, candidate_id, instruction, COALESCE(instruction_type, ''), priority
	          FROM ai_instructions WHERE candidate_id = $1 ORDER BY priority`
	rows, err := db.connection.QueryContext(ctx, query, candidateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []Instruction
	for rows.Next() {
		var i Instruction
		if err := rows.Scan(&i.ID, &i.CandidateID, &i.Instruction, &i.InstructionType, &i.Priority); err != nil {
			return nil, err
		}
		res = append(res, i)
	}
	return res, rows.Err()
}

// GetChatHistory returns the most recent `limit` turns for the session,
// ordered oldest first so they can be replayed to the model as-is.
func (db *DB) GetChatHistory(ctx context.Context, sessionID string, limit int) ([]ChatMessage, error) {
	query := `SELECT role, content, created_at FROM (
	              SELECT role, content, created_at FROM chat_messages
	              WHERE session_id = $1 ORDER BY created_at DESC LIMIT $2
	          ) recent ORDER BY created_at ASC`
	rows, err := db.connection.QueryContext(ctx, query, sessionID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []ChatMessage
	for rows.Next() {
		var m ChatMessage
		if err := rows.Scan(&m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, err
		}
		m.SessionID = sessionID
		res = append(res, m)
	}
	return res, rows.Err()
}

// AppendChatTurn stores the user message and the assistant reply as one
// atomic pair. Callers treat failure as non-fatal; the reply has already
// been produced.
func (db *DB) AppendChatTurn(ctx context.Context, sessionID, userMessage, assistantReply string) error {
	tx, err := db.connection.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO chat_messages (session_id, role, content) VALUES ($1, $2, $3)`
	if _, err := tx.ExecContext(ctx, query, sessionID, "user", userMessage); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, query, sessionID, "assistant", assistantReply); err != nil {
		return err
	}
	return tx.Commit()
}
