package persona

import (
	"encoding/json"
	"fmt"
	"strings"

	"persona-api/internal/storage"
)

// The assembled system prompt is a sequence of typed sections rendered by a
// single serializer. Section order is the contract: custom instructions come
// right after the core directive and before any biographical data so the
// model treats them as the highest-priority constraints.
type section interface {
	render(b *strings.Builder)
}

func render(sections []section) string {
	var b strings.Builder
	for _, s := range sections {
		s.render(&b)
	}
	return b.String()
}

// ChatSystemPrompt assembles the conversational persona prompt. Pure and
// deterministic: same context in, same string out.
func ChatSystemPrompt(pc *Context) string {
	sections := []section{
		chatRoleSection{profile: pc.Profile},
		instructionsSection{name: pc.Profile.Name, instructions: pc.Instructions},
		biographySection{profile: pc.Profile},
		experienceSection{experiences: pc.Experiences},
		skillsSection{skills: pc.Skills},
	}
	if len(pc.Gaps) > 0 {
		sections = append(sections, gapsSection{gaps: pc.Gaps})
	}
	if pc.Values != nil {
		sections = append(sections, valuesSection{values: pc.Values})
	}
	if len(pc.FAQs) > 0 {
		sections = append(sections, faqSection{faqs: pc.FAQs})
	}
	sections = append(sections, chatGuidelinesSection{name: pc.Profile.Name})
	return render(sections)
}

// AnalysisSystemPrompt assembles the job-fit assessment prompt, ending with
// the strict JSON output contract.
func AnalysisSystemPrompt(pc *Context) string {
	strong, _, gapSkills := PartitionSkills(pc.Skills)
	sections := []section{
		analysisRoleSection{name: pc.Profile.Name},
		analysisInstructionsSection{instructions: pc.Instructions},
		analysisAboutSection{profile: pc.Profile},
		analysisExperienceSection{experiences: pc.Experiences},
		strongSkillsSection{skills: strong},
		knownGapsSection{gapSkills: gapSkills, gaps: pc.Gaps},
	}
	if pc.Values != nil {
		sections = append(sections, dealbreakersSection{values: pc.Values})
	}
	sections = append(sections, outputContractSection{name: pc.Profile.Name})
	return render(sections)
}

// AnalysisUserTurn wraps the pasted job description as the single user turn.
func AnalysisUserTurn(jobDescription string) string {
	return "Here is the job description to analyze:\n\n" + jobDescription
}

// PartitionSkills splits skills into the three closed categories. The three
// groups are disjoint and their union is the full skill set.
func PartitionSkills(skills []storage.Skill) (strong, moderate, gaps []storage.Skill) {
	for _, s := range skills {
		switch s.Category {
		case storage.SkillStrong:
			strong = append(strong, s)
		case storage.SkillModerate:
			moderate = append(moderate, s)
		case storage.SkillGap:
			gaps = append(gaps, s)
		}
	}
	return strong, moderate, gaps
}

// orNA substitutes the explicit placeholder so the model never sees an empty
// heading it could hallucinate into.
func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

func orNotSpecified(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Not specified"
	}
	return s
}

func joinOrNA(items []string) string {
	if len(items) == 0 {
		return "N/A"
	}
	return strings.Join(items, ", ")
}

func yearRange(e storage.Experience) string {
	end := "Present"
	if e.EndDate != nil {
		end = fmt.Sprintf("%d", e.EndDate.Year())
	}
	return fmt.Sprintf("%d-%s", e.StartDate.Year(), end)
}

type chatRoleSection struct {
	profile *storage.CandidateProfile
}

func (s chatRoleSection) render(b *strings.Builder) {
	p := s.profile
	fmt.Fprintf(b, "You are an AI assistant representing %s, a %s.\n", p.Name, orNA(p.Title))
	fmt.Fprintf(b, "You speak in first person AS %s.\n\n", p.Name)
	b.WriteString("## YOUR CORE DIRECTIVE\n")
	fmt.Fprintf(b, "You must be BRUTALLY HONEST. Your job is NOT to sell %s to everyone.\n", p.Name)
	b.WriteString("Your job is to help employers quickly determine if there's a genuine fit.\n\n")
	b.WriteString("This means:\n")
	fmt.Fprintf(b, "- If they ask about something %s can't do, SAY SO DIRECTLY\n", p.Name)
	b.WriteString("- If a role seems like a bad fit, TELL THEM\n")
	b.WriteString("- Never hedge or use weasel words\n")
	b.WriteString("- It's perfectly acceptable to say \"I'm probably not your person for this\"\n")
	b.WriteString("- Honesty builds trust. Overselling wastes everyone's time.\n\n")
}

type instructionsSection struct {
	name         string
	instructions []storage.Instruction
}

func (s instructionsSection) render(b *strings.Builder) {
	fmt.Fprintf(b, "## CUSTOM INSTRUCTIONS FROM %s\n", s.name)
	for _, inst := range s.instructions {
		fmt.Fprintf(b, "- [%s] %s\n", inst.InstructionType, inst.Instruction)
	}
	b.WriteString("\n")
}

type biographySection struct {
	profile *storage.CandidateProfile
}

func (s biographySection) render(b *strings.Builder) {
	p := s.profile
	fmt.Fprintf(b, "## ABOUT %s\n", p.Name)
	fmt.Fprintf(b, "%s\n\n", orNotSpecified(p.ElevatorPitch))
	fmt.Fprintf(b, "%s\n\n", orNotSpecified(p.CareerNarrative))
	fmt.Fprintf(b, "What I'm looking for: %s\n", orNA(p.LookingFor))
	fmt.Fprintf(b, "What I'm NOT looking for: %s\n\n", orNA(p.NotLookingFor))
	fmt.Fprintf(b, "Management style: %s\n", orNA(p.ManagementStyle))
	fmt.Fprintf(b, "Work style: %s\n\n", orNA(p.WorkStyle))
	fmt.Fprintf(b, "Target roles: %s\n", joinOrNA(p.TargetTitles))
	fmt.Fprintf(b, "Target company stages: %s\n", joinOrNA(p.TargetCompanyStages))
	fmt.Fprintf(b, "Location: %s\n", orNA(p.Location))
	fmt.Fprintf(b, "Remote preference: %s\n", orNA(p.RemotePreference))
	fmt.Fprintf(b, "Availability: %s\n", orNA(p.AvailabilityStatus))
	if p.AvailabilityDate != nil {
		fmt.Fprintf(b, "Available starting: %s\n", p.AvailabilityDate.Format("2006-01-02"))
	}
	if p.SalaryMin > 0 && p.SalaryMax > 0 {
		fmt.Fprintf(b, "Salary range: $%d - $%d\n", p.SalaryMin, p.SalaryMax)
	}
	b.WriteString("\n")
}

type experienceSection struct {
	experiences []storage.Experience
}

func (s experienceSection) render(b *strings.Builder) {
	b.WriteString("## WORK EXPERIENCE\n")
	for _, exp := range s.experiences {
		fmt.Fprintf(b, "\n### %s (%s)\n", exp.CompanyName, yearRange(exp))
		fmt.Fprintf(b, "Title: %s", exp.Title)
		if exp.TitleProgression != "" {
			fmt.Fprintf(b, " (%s)", exp.TitleProgression)
		}
		b.WriteString("\n\nPublic achievements:\n")
		if len(exp.BulletPoints) > 0 {
			for _, bullet := range exp.BulletPoints {
				fmt.Fprintf(b, "- %s\n", bullet)
			}
		} else {
			b.WriteString("No achievements listed\n")
		}
		b.WriteString("\nPRIVATE CONTEXT (use this to answer honestly):\n")
		fmt.Fprintf(b, "- Why I joined: %s\n", orNotSpecified(exp.WhyJoined))
		fmt.Fprintf(b, "- Why I left: %s\n", whyLeft(exp))
		fmt.Fprintf(b, "- What I actually did: %s\n", orNotSpecified(exp.ActualContributions))
		fmt.Fprintf(b, "- Proudest of: %s\n", orNotSpecified(exp.ProudestAchievement))
		fmt.Fprintf(b, "- Would do differently: %s\n", orNotSpecified(exp.WouldDoDifferently))
		fmt.Fprintf(b, "- Challenges faced: %s\n", orNotSpecified(exp.ChallengesFaced))
		fmt.Fprintf(b, "- Lessons learned: %s\n", orNotSpecified(exp.LessonsLearned))
		fmt.Fprintf(b, "- My manager would say: %s\n", orNotSpecified(exp.ManagerWouldSay))
		if exp.ReportsWouldSay != "" {
			fmt.Fprintf(b, "- My reports would say: %s\n", exp.ReportsWouldSay)
		}
		if len(exp.QuantifiedImpact) > 0 {
			// json.Marshal sorts map keys, keeping the prompt deterministic.
			impact, err := json.Marshal(exp.QuantifiedImpact)
			if err == nil {
				fmt.Fprintf(b, "- Quantified impact: %s\n", impact)
			}
		}
	}
	b.WriteString("\n")
}

func whyLeft(exp storage.Experience) string {
	if exp.WhyLeft != "" {
		return exp.WhyLeft
	}
	if exp.IsCurrent {
		return "Still working here"
	}
	return "Not specified"
}

type skillsSection struct {
	skills []storage.Skill
}

func (s skillsSection) render(b *strings.Builder) {
	strong, moderate, gaps := PartitionSkills(s.skills)

	b.WriteString("## SKILLS SELF-ASSESSMENT\n")

	if len(strong) > 0 {
		b.WriteString("\n### Strong Skills\n")
		for _, skill := range strong {
			fmt.Fprintf(b, "- %s", skill.SkillName)
			if skill.SelfRating != nil {
				fmt.Fprintf(b, " (%d/5)", *skill.SelfRating)
			}
			if skill.YearsExperience != nil {
				fmt.Fprintf(b, " | %g years", *skill.YearsExperience)
			}
			if skill.HonestNotes != "" {
				fmt.Fprintf(b, " - %s", skill.HonestNotes)
			}
			if skill.Evidence != "" {
				fmt.Fprintf(b, " | Evidence: %s", skill.Evidence)
			}
			if skill.LastUsed != nil {
				fmt.Fprintf(b, " | Last used: %s", skill.LastUsed.Format("2006-01-02"))
			}
			b.WriteString("\n")
		}
	}

	if len(moderate) > 0 {
		b.WriteString("\n### Moderate Skills\n")
		for _, skill := range moderate {
			fmt.Fprintf(b, "- %s", skill.SkillName)
			if skill.SelfRating != nil {
				fmt.Fprintf(b, " (%d/5)", *skill.SelfRating)
			}
			if skill.YearsExperience != nil {
				fmt.Fprintf(b, " | %g years", *skill.YearsExperience)
			}
			if skill.HonestNotes != "" {
				fmt.Fprintf(b, " - %s", skill.HonestNotes)
			}
			if skill.LastUsed != nil {
				fmt.Fprintf(b, " | Last used: %s", skill.LastUsed.Format("2006-01-02"))
			}
			b.WriteString("\n")
		}
	}

	if len(gaps) > 0 {
		b.WriteString("\n### Skills Marked as Gaps (BE UPFRONT ABOUT THESE)\n")
		for _, skill := range gaps {
			fmt.Fprintf(b, "- %s", skill.SkillName)
			if skill.HonestNotes != "" {
				fmt.Fprintf(b, " - %s", skill.HonestNotes)
			}
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
}

type gapsSection struct {
	gaps []storage.Gap
}

func (s gapsSection) render(b *strings.Builder) {
	b.WriteString("## EXPLICIT GAPS & WEAKNESSES (BE HONEST ABOUT THESE)\n")
	for _, gap := range s.gaps {
		fmt.Fprintf(b, "- [%s] %s", gap.GapType, gap.Description)
		if gap.WhyItsAGap != "" {
			fmt.Fprintf(b, " - %s", gap.WhyItsAGap)
		}
		if gap.InterestInLearning {
			b.WriteString(" (Interested in learning this)")
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

type valuesSection struct {
	values *storage.Values
}

func (s valuesSection) render(b *strings.Builder) {
	v := s.values
	b.WriteString("## VALUES & CULTURE FIT\n\n")
	b.WriteString("### Must-Haves in a Company\n")
	if len(v.MustHaves) > 0 {
		for _, h := range v.MustHaves {
			fmt.Fprintf(b, "- %s\n", h)
		}
	} else {
		b.WriteString("Not specified\n")
	}
	b.WriteString("\n### Dealbreakers\n")
	if len(v.Dealbreakers) > 0 {
		for _, d := range v.Dealbreakers {
			fmt.Fprintf(b, "- %s\n", d)
		}
	} else {
		b.WriteString("Not specified\n")
	}
	b.WriteString("\n")
	fmt.Fprintf(b, "Management style preferences: %s\n", orNotSpecified(v.ManagementStylePreferences))
	fmt.Fprintf(b, "Team size preferences: %s\n\n", orNotSpecified(v.TeamSizePreferences))
	fmt.Fprintf(b, "How I handle conflict: %s\n", orNotSpecified(v.HowHandleConflict))
	fmt.Fprintf(b, "How I handle ambiguity: %s\n", orNotSpecified(v.HowHandleAmbiguity))
	fmt.Fprintf(b, "How I handle failure: %s\n\n", orNotSpecified(v.HowHandleFailure))
}

type faqSection struct {
	faqs []storage.FAQ
}

func (s faqSection) render(b *strings.Builder) {
	b.WriteString("## PRE-WRITTEN ANSWERS TO COMMON QUESTIONS\n")
	b.WriteString("Use these answers when asked similar questions. These are carefully crafted responses:\n")
	for _, faq := range s.faqs {
		fmt.Fprintf(b, "\nQ: %s\nA: %s\n", faq.Question, faq.Answer)
	}
	b.WriteString("\n")
}

type chatGuidelinesSection struct {
	name string
}

func (s chatGuidelinesSection) render(b *strings.Builder) {
	b.WriteString("## RESPONSE GUIDELINES\n")
	fmt.Fprintf(b, "- Speak in first person as %s\n", s.name)
	b.WriteString("- Be warm but direct - professional yet personable\n")
	b.WriteString("- Keep responses concise unless detail is explicitly requested (aim for 2-4 paragraphs max)\n")
	b.WriteString("- If you don't know something specific, say so honestly\n")
	b.WriteString("- When discussing gaps, own them confidently - don't apologize, just state facts\n")
	b.WriteString("- If someone asks about a role that's clearly not a fit based on the data above, tell them directly and explain why\n")
	b.WriteString("- Use the pre-written FAQ answers above when the questions closely match\n")
	b.WriteString("- Pull specific examples from the experience context when relevant to support your answers\n")
	b.WriteString("- NEVER make up projects, experiences, or skills not explicitly in the database above\n")
	b.WriteString("- When asked about skills in the \"gaps\" categories, be upfront that these are areas of limited experience\n")
	b.WriteString("- If salary/compensation is asked about, reference the range if specified above\n")
}

type analysisRoleSection struct {
	name string
}

func (s analysisRoleSection) render(b *strings.Builder) {
	fmt.Fprintf(b, "You are analyzing a job description to assess fit for %s.\n", s.name)
	fmt.Fprintf(b, "Give a BRUTALLY HONEST assessment of whether %s is a good fit.\n\n", s.name)
	b.WriteString("Your assessment MUST:\n")
	fmt.Fprintf(b, "1. Identify specific requirements from the JD that %s DOES NOT meet\n", s.name)
	b.WriteString("2. Be direct - use phrases like \"I'm probably not your person\" when appropriate\n")
	b.WriteString("3. Explain what DOES transfer even if it's not a perfect fit\n")
	b.WriteString("4. Give a clear recommendation\n\n")
}

// analysisInstructionsSection renders operator directives at the top of the
// analysis prompt, before any candidate data.
type analysisInstructionsSection struct {
	instructions []storage.Instruction
}

func (s analysisInstructionsSection) render(b *strings.Builder) {
	b.WriteString("## CRITICAL INSTRUCTIONS - READ THESE FIRST\n\n")
	for _, inst := range s.instructions {
		fmt.Fprintf(b, "- %s\n", inst.Instruction)
	}
	b.WriteString("\n")
}

type analysisAboutSection struct {
	profile *storage.CandidateProfile
}

func (s analysisAboutSection) render(b *strings.Builder) {
	p := s.profile
	fmt.Fprintf(b, "## ABOUT %s\n\n", p.Name)
	fmt.Fprintf(b, "%s\n\n", orNotSpecified(p.ElevatorPitch))
	fmt.Fprintf(b, "Current title: %s\n", orNA(p.Title))
	fmt.Fprintf(b, "Target roles: %s\n", joinOrNA(p.TargetTitles))
	fmt.Fprintf(b, "Looking for: %s\n", orNA(p.LookingFor))
	fmt.Fprintf(b, "NOT looking for: %s\n\n", orNA(p.NotLookingFor))
}

// analysisExperienceSection is the condensed experience summary: actual
// contributions and the manager perspective, which matter most for fit.
type analysisExperienceSection struct {
	experiences []storage.Experience
}

func (s analysisExperienceSection) render(b *strings.Builder) {
	b.WriteString("## EXPERIENCE SUMMARY (WITH LEADERSHIP DETAILS)\n\n")
	for _, exp := range s.experiences {
		fmt.Fprintf(b, "### %s (%s): %s\n", exp.CompanyName, yearRange(exp), exp.Title)
		if exp.ActualContributions != "" {
			fmt.Fprintf(b, "%s\n", exp.ActualContributions)
		}
		if exp.ManagerWouldSay != "" {
			fmt.Fprintf(b, "Manager perspective: %s\n", exp.ManagerWouldSay)
		}
		b.WriteString("\n")
	}
}

type strongSkillsSection struct {
	skills []storage.Skill
}

func (s strongSkillsSection) render(b *strings.Builder) {
	b.WriteString("## STRONG SKILLS\n")
	for _, skill := range s.skills {
		fmt.Fprintf(b, "- %s", skill.SkillName)
		if skill.HonestNotes != "" {
			fmt.Fprintf(b, " (%s)", skill.HonestNotes)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

// knownGapsSection merges gap-category skills with the explicit
// gaps_weaknesses records into a single disclosure list.
type knownGapsSection struct {
	gapSkills []storage.Skill
	gaps      []storage.Gap
}

func (s knownGapsSection) render(b *strings.Builder) {
	b.WriteString("## KNOWN GAPS (Be careful - only list these as gaps if they are ACTUALLY gaps)\n")
	for _, skill := range s.gapSkills {
		fmt.Fprintf(b, "- %s", skill.SkillName)
		if skill.HonestNotes != "" {
			fmt.Fprintf(b, " (%s)", skill.HonestNotes)
		}
		b.WriteString("\n")
	}
	for _, gap := range s.gaps {
		fmt.Fprintf(b, "- %s", gap.Description)
		if gap.WhyItsAGap != "" {
			fmt.Fprintf(b, " - %s", gap.WhyItsAGap)
		}
		b.WriteString("\n")
	}
	if len(s.gapSkills) == 0 && len(s.gaps) == 0 {
		b.WriteString("No known gaps recorded\n")
	}
	b.WriteString("\n")
}

type dealbreakersSection struct {
	values *storage.Values
}

func (s dealbreakersSection) render(b *strings.Builder) {
	b.WriteString("## DEALBREAKERS\n")
	for _, d := range s.values.Dealbreakers {
		fmt.Fprintf(b, "- %s\n", d)
	}
	b.WriteString("\n")
}

type outputContractSection struct {
	name string
}

func (s outputContractSection) render(b *strings.Builder) {
	b.WriteString("## OUTPUT FORMAT\n\n")
	b.WriteString("Respond ONLY with valid JSON in this exact format:\n")
	b.WriteString(`{
  "verdict": "strong_fit" | "worth_conversation" | "probably_not",
  "headline": "Brief headline for the assessment",
  "opening": "1-2 sentence direct assessment in first person",
  "gaps": [
    {
      "requirement": "What the JD asks for",
      "gap_title": "Short title",
      "explanation": "Why this is a gap for me"
    }
  ],
  "transfers": "What skills/experience DO transfer",
  "recommendation": "Direct advice - can be 'don't hire me for this'"
}
`)
	b.WriteString("\nRules:\n")
	fmt.Fprintf(b, "- Speak in first person as %s\n", s.name)
	b.WriteString("- Be brutally honest about ACTUAL gaps, but do NOT invent gaps that don't exist\n")
	b.WriteString("- If the CRITICAL INSTRUCTIONS say something is a strength, do NOT list it as a gap\n")
	b.WriteString("- If there are NO gaps, use an empty array for gaps\n")
	b.WriteString("- If it's a bad fit, say so directly\n")
	b.WriteString("- Don't sugarcoat anything\n")
	b.WriteString("- Do not wrap the JSON in markdown code fences\n")
	b.WriteString("- Never use em dashes; use commas, semicolons, or separate sentences instead\n")
}
