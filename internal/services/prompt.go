package services

import (
	"encoding/json"
	"fmt"
	"strings"
)

const maxPromptResumeChars = 12000

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// ResumeScreening is the structured answer expected from the screening prompt.
type ResumeScreening struct {
	Summary         string   `json:"summary"`
	KeySkills       []string `json:"key_skills"`
	YearsExperience float64  `json:"years_experience"`
	Concerns        []string `json:"concerns"`
}

// BuildResumeScreeningPrompt creates the prompt used to pre-screen a resume against the job it was submitted for
func (pb *PromptBuilder) BuildResumeScreeningPrompt(resumeText, jobTitle, jobDescription string) string {
	resumeText = truncateUTF8(resumeText, maxPromptResumeChars)

	return fmt.Sprintf(`You are a recruiter pre-screening an application for the %s position.

JOB DESCRIPTION:
%s

CANDIDATE RESUME:
%s

Summarise the resume for the hiring team. Do not invent facts that are not in the resume.

Return your response in the following JSON format:
{
  "summary": "<2-3 sentences on how the candidate fits the role>",
  "key_skills": ["<skill>", "..."],
  "years_experience": <number, 0 if unknown>,
  "concerns": ["<gap or risk>", "..."]
}`,
		jobTitle, jobDescription, resumeText)
}

// BuildJobQuery is the text embedded when ranking resumes for a job.
func (pb *PromptBuilder) BuildJobQuery(title, department, description string) string {
	return strings.TrimSpace(fmt.Sprintf("%s (%s)\n%s", title, department, description))
}

// ParseResumeScreening extracts the JSON object from a model answer that may be wrapped in markdown.
func ParseResumeScreening(response string) (*ResumeScreening, error) {
	var result ResumeScreening
	if err := json.Unmarshal([]byte(extractJSON(response)), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal screening JSON: %w", err)
	}
	if strings.TrimSpace(result.Summary) == "" {
		return nil, fmt.Errorf("screening response has no summary")
	}
	return &result, nil
}

// FormatScreeningNote renders a screening result as a candidate note body.
func FormatScreeningNote(s *ResumeScreening) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(s.Summary))

	if len(s.KeySkills) > 0 {
		b.WriteString("\nKey skills: ")
		b.WriteString(strings.Join(s.KeySkills, ", "))
	}
	if s.YearsExperience > 0 {
		fmt.Fprintf(&b, "\nExperience: %.1f years", s.YearsExperience)
	}
	if len(s.Concerns) > 0 {
		b.WriteString("\nConcerns: ")
		b.WriteString(strings.Join(s.Concerns, "; "))
	}

	return b.String()
}

func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end > start {
		return text[start : end+1]
	}

	return text
}
