package storage

import (
	"context"
	"encoding/json"

	"github.com/lib/pq"
)

// UpsertProfile writes the single profile row, keyed by the fixed
// candidate id.
func (db *DB) UpsertProfile(ctx context.Context, p *CandidateProfile) error {
	query := `INSERT INTO candidate_profile (id, name, email, title, target_titles, target_company_stages,
	              elevator_pitch, career_narrative, looking_for, not_looking_for, management_style, work_style,
	              salary_min, salary_max, availability_status, availability_date, location, remote_preference,
	              github_url, linkedin_url, twitter_url, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, NOW())
	          ON CONFLICT (id) DO UPDATE
	            SET name = EXCLUDED.name,
	                email = EXCLUDED.email,
	                title = EXCLUDED.title,
	                target_titles = EXCLUDED.target_titles,
	                target_company_stages = EXCLUDED.target_company_stages,
	                elevator_pitch = EXCLUDED.elevator_pitch,
	                career_narrative = EXCLUDED.career_narrative,
	                looking_for = EXCLUDED.looking_for,
	                not_looking_for = EXCLUDED.not_looking_for,
	                management_style = EXCLUDED.management_style,
	                work_style = EXCLUDED.work_style,
	                salary_min = EXCLUDED.salary_min,
	                salary_max = EXCLUDED.salary_max,
	                availability_status = EXCLUDED.availability_status,
	                availability_date = EXCLUDED.availability_date,
	                location = EXCLUDED.location,
	                remote_preference = EXCLUDED.remote_preference,
	                github_url = EXCLUDED.github_url,
	                linkedin_url = EXCLUDED.linkedin_url,
	                twitter_url = EXCLUDED.twitter_url,
	                updated_at = NOW()`
	_, err := db.connection.ExecContext(ctx, query,
		p.ID, p.Name, p.Email, p.Title,
		pq.Array(p.TargetTitles), pq.Array(p.TargetCompanyStages),
		p.ElevatorPitch, p.CareerNarrative, p.LookingFor, p.NotLookingFor,
		p.ManagementStyle, p.WorkStyle,
		p.SalaryMin, p.SalaryMax,
		p.AvailabilityStatus, p.AvailabilityDate,
		p.Location, p.RemotePreference,
		p.GithubURL, p.LinkedinURL, p.TwitterURL,
	)
	return err
}

func (db *DB) UpsertExperience(ctx context.Context, e *Experience) error {
	impact, err := json.Marshal(e.QuantifiedImpact)
	if err != nil {
		return err
	}
	query := `INSERT INTO experiences (id, candidate_id, company_name, title, title_progression,
	              start_date, end_date, is_current, bullet_points, why_joined, why_left,
	              actual_contributions, proudest_achievement, would_do_differently, challenges_faced,
	              lessons_learned, manager_would_say, reports_would_say, quantified_impact, display_order)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
	          ON CONFLICT (id) DO UPDATE
	            SET company_name = EXCLUDED.company_name,
	                title = EXCLUDED.title,
	                title_progression = EXCLUDED.title_progression,
	                start_date = EXCLUDED.start_date,
	                end_date = EXCLUDED.end_date,
	                is_current = EXCLUDED.is_current,
	                bullet_points = EXCLUDED.bullet_points,
	                why_joined = EXCLUDED.why_joined,
	                why_left = EXCLUDED.why_left,
	                actual_contributions = EXCLUDED.actual_contributions,
	                proudest_achievement = EXCLUDED.proudest_achievement,
	                would_do_differently = EXCLUDED.would_do_differently,
	                challenges_faced = EXCLUDED.challenges_faced,
	                lessons_learned = EXCLUDED.lessons_learned,
	                manager_would_say = EXCLUDED.manager_would_say,
	                reports_would_say = EXCLUDED.reports_would_say,
	                quantified_impact = EXCLUDED.quantified_impact,
	                display_order = EXCLUDED.display_order`
	_, err = db.connection.ExecContext(ctx, query,
		e.ID, e.CandidateID, e.CompanyName, e.Title, e.TitleProgression,
		e.StartDate, e.EndDate, e.IsCurrent, pq.Array(e.BulletPoints),
		e.WhyJoined, e.WhyLeft, e.ActualContributions,
		e.ProudestAchievement, e.WouldDoDifferently, e.ChallengesFaced,
		e.LessonsLearned, e.ManagerWouldSay, e.ReportsWouldSay,
		impact, e.DisplayOrder,
	)
	return err
}

func (db *DB) DeleteExperience(ctx context.Context, candidateID, id string) error {
	_, err := db.connection.ExecContext(ctx,
		`DELETE FROM experiences WHERE id = $1 AND candidate_id = $2`, id, candidateID)
	return err
}

func (db *DB) UpsertSkill(ctx context.Context, s *Skill) error {
	query := `INSERT INTO skills (id, candidate_id, skill_name, category, self_rating,
	              evidence, honest_notes, years_experience, last_used, display_order)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	          ON CONFLICT (id) DO UPDATE
	            SET skill_name = EXCLUDED.skill_name,
	                category = EXCLUDED.category,
	                self_rating = EXCLUDED.self_rating,
	                evidence = EXCLUDED.evidence,
	                honest_notes = EXCLUDED.honest_notes,
	                years_experience = EXCLUDED.years_experience,
	                last_used = EXCLUDED.last_used,
	                display_order = EXCLUDED.display_order`
	_, err := db.connection.ExecContext(ctx, query,
		s.ID, s.CandidateID, s.SkillName, s.Category, s.SelfRating,
		s.Evidence, s.HonestNotes, s.YearsExperience, s.LastUsed, s.DisplayOrder,
	)
	return err
}

func (db *DB) DeleteSkill(ctx context.Context, candidateID, id string) error {
	_, err := db.connection.ExecContext(ctx,
		`DELETE FROM skills WHERE id = $1 AND candidate_id = $2`, id, candidateID)
	return err
}

func (db *DB) UpsertGap(ctx context.Context, g *Gap) error {
	query := `INSERT INTO gaps_weaknesses (id, candidate_id, gap_type, description, why_its_a_gap, interest_in_learning)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          ON CONFLICT (id) DO UPDATE
	            SET gap_type = EXCLUDED.gap_type,
	                description = EXCLUDED.description,
	                why_its_a_gap = EXCLUDED.why_its_a_gap,
	                interest_in_learning = EXCLUDED.interest_in_learning`
	_, err := db.connection.ExecContext(ctx, query,
		g.ID, g.CandidateID, g.GapType, g.Description, g.WhyItsAGap, g.InterestInLearning,
	)
	return err
}

func (db *DB) DeleteGap(ctx context.Context, candidateID, id string) error {
	_, err := db.connection.ExecContext(ctx,
		`DELETE FROM gaps_weaknesses WHERE id = $1 AND candidate_id = $2`, id, candidateID)
	return err
}

// UpsertValues keys on candidate_id; there is at most one values row.
func (db *DB) UpsertValues(ctx context.Context, v *Values) error {
	query := `INSERT INTO values_culture (id, candidate_id, must_haves, dealbreakers,
	              management_style_preferences, team_size_preferences,
	              how_handle_conflict, how_handle_ambiguity, how_handle_failure)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          ON CONFLICT (candidate_id) DO UPDATE
	            SET must_haves = EXCLUDED.must_haves,
	                dealbreakers = EXCLUDED.dealbreakers,
	                management_style_preferences = EXCLUDED.management_style_preferences,
	                team_size_preferences = EXCLUDED.team_size_preferences,
	                how_handle_conflict = EXCLUDED.how_handle_conflict,
	                how_handle_ambiguity = EXCLUDED.how_handle_ambiguity,
	                how_handle_failure = EXCLUDED.how_handle_failure`
	_, err := db.connection.ExecContext(ctx, query,
		v.ID, v.CandidateID, pq.Array(v.MustHaves), pq.Array(v.Dealbreakers),
		v.ManagementStylePreferences, v.TeamSizePreferences,
		v.HowHandleConflict, v.HowHandleAmbiguity, v.HowHandleFailure,
	)
	return err
}

func (db *DB) UpsertFAQ(ctx context.Context, f *FAQ) error {
	query := `INSERT INTO faq_responses (id, candidate_id, question, answer, is_common, display_order)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          ON CONFLICT (id) DO UPDATE
	            SET question = EXCLUDED.question,
	                answer = EXCLUDED.answer,
	                is_common = EXCLUDED.is_common,
	                display_order = EXCLUDED.display_order`
	_, err := db.connection.ExecContext(ctx, query,
		f.ID, f.CandidateID, f.Question, f.Answer, f.IsCommon, f.DisplayOrder,
	)
	return err
}

func (db *DB) DeleteFAQ(ctx context.Context, candidateID, id string) error {
	_, err := db.connection.ExecContext(ctx,
		`DELETE FROM faq_responses WHERE id = $1 AND candidate_id = $2`, id, candidateID)
	return err
}

func (db *DB) UpsertInstruction(ctx context.Context, i *Instruction) error {
	query := `INSERT INTO ai_instructions (id, candidate_id, instruction, instruction_type, priority)
	          VALUES ($1, $2, $3, $4, $5)
	          ON CONFLICT (id) DO UPDATE
	            SET instruction = EXCLUDED.instruction,
	                instruction_type = EXCLUDED.instruction_type,
	                priority = EXCLUDED.priority`
	_, err := db.connection.ExecContext(ctx, query,
		i.ID, i.CandidateID, i.Instruction, i.InstructionType, i.Priority,
	)
	return err
}

func (db *DB) DeleteInstruction(ctx context.Context, candidateID, id string) error {
	_, err := db.connection.ExecContext(ctx,
		`DELETE FROM ai_instructions WHERE id = $1 AND candidate_id = $2`, id, candidateID)
	return err
}
