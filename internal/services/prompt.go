package services

import (
	"fmt"
	"strings"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildQuestionGenerationPrompt creates the prompt for interview question
// generation. guidance is optional retrieved coaching material; empty means
// none was available.
func (pb *PromptBuilder) BuildQuestionGenerationPrompt(numberOfQuestions int, context, interviewType, difficulty, jobLevel, guidance string) string {
	guidanceBlock := ""
	if guidance != "" {
		guidanceBlock = fmt.Sprintf("\nINTERVIEWER GUIDANCE:\n%s\n", guidance)
	}

	return fmt.Sprintf(`You are an expert interviewer. Generate %d interview questions based on the following context:

%s
%s
Requirements:
- Questions should be appropriate for %s difficulty level
- Questions should match the %s level position
- Focus on %s questions
- Make questions specific to the job role and company
- Include a mix of question types within the category
- Questions should be realistic and commonly asked in interviews
- Adjust complexity based on job level

IMPORTANT: For technical questions, ask about concepts, tools, trade-offs,
troubleshooting and processes. DO NOT ask the candidate to write code,
pseudocode or solve live programming exercises.

Return ONLY a JSON array with this exact format (no other text):
[
    {"id": 1, "question": "Question text here", "question_type": "%s", "difficulty": "%s"},
    {"id": 2, "question": "Question text here", "question_type": "%s", "difficulty": "%s"},
    ...
]`,
		numberOfQuestions, context, guidanceBlock,
		strings.ToLower(difficulty), strings.ToLower(jobLevel), strings.ToLower(interviewType),
		interviewType, difficulty, interviewType, difficulty)
}

// BuildFeedbackPrompt creates the scoring prompt for a finished interview.
func (pb *PromptBuilder) BuildFeedbackPrompt(context string) string {
	return fmt.Sprintf(`You are an expert interview coach. Analyze the following interview responses and provide comprehensive feedback.

%s

Provide feedback in the following JSON format (return ONLY the JSON, no other text):
{
    "overall_score": 8,
    "question_scores": [
        {"question_index": 0, "score": 8, "feedback": "Strong response with good examples", "suggestions": ["Consider adding more technical detail"]}
    ],
    "category_scores": {
        "communication": 8,
        "technical": 6,
        "problem_solving": 7,
        "behavioral": 8
    },
    "strengths": [
        {"category": "strength", "title": "Strong Technical Knowledge", "description": "Demonstrated solid understanding of core concepts", "suggestion": null}
    ],
    "weaknesses": [
        {"category": "weakness", "title": "Limited Depth", "description": "Could benefit from more hands-on detail", "suggestion": "Work through a realistic project end to end"}
    ],
    "improvements": [
        {"category": "improvement", "title": "Use STAR Method", "description": "Structure behavioral responses better", "suggestion": "Practice the Situation, Task, Action, Result framework"}
    ],
    "summary": "Overall strong performance with room for improvement in specific areas..."
}

Focus on:
- Technical competency (for technical questions)
- Communication skills
- Problem-solving approach
- Use of examples and frameworks (STAR method, etc.)
- Specific, actionable suggestions`, context)
}

// BuildResumeAnalysisPrompt creates the structured resume extraction prompt.
func (pb *PromptBuilder) BuildResumeAnalysisPrompt(resumeText string) string {
	return fmt.Sprintf(`Analyze this resume and extract key information in JSON format. Be thorough and accurate.

Resume Text:
%s

Extract the following information and return ONLY a JSON object (no other text):
{
    "name": "Full name of the candidate",
    "email": "Email address if found",
    "location": "City, State/Country if found",
    "summary": "Professional summary or objective (2-3 sentences)",
    "experience_years": "Total years of professional experience (number)",
    "current_role": "Current or most recent job title",
    "current_company": "Current or most recent company",
    "education": "Highest degree and institution",
    "skills": ["list", "of", "key", "technical", "skills"],
    "technologies": ["list", "of", "languages", "and", "tools"],
    "achievements": ["list", "of", "key", "achievements"],
    "experience_level": "entry/mid/senior/executive based on years and roles",
    "key_strengths": ["list", "of", "main", "professional", "strengths"]
}

If information is not available, use null or empty arrays as appropriate.
Be accurate and don't make up information that isn't clearly stated.`, resumeText)
}
