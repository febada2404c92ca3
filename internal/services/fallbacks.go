package services

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"mockmate/interview-api/internal/models"
)

// FallbackStore holds the canned question lists and the fixed scorecards
// substituted when the model is unavailable or the answers are degenerate.
// The built-in defaults can be replaced by a YAML data file so content edits
// do not require code changes.
type FallbackStore struct {
	Questions  map[string][]string                  `yaml:"questions"`
	Scorecards map[string]models.InterviewFeedback `yaml:"scorecards"`
}

// Scorecard keys in the fallback data.
const (
	ScorecardNonsensical = "nonsensical"
	ScorecardPoorQuality = "poor_quality"
	ScorecardNoResponses = "no_responses"
	ScorecardUnavailable = "unavailable"
)

// NewFallbackStore loads the fallback data, preferring the YAML file at path
// when one is given. An invalid file is an error rather than a silent revert:
// bad data should fail startup, not an interview.
func NewFallbackStore(path string) (*FallbackStore, error) {
	if path == "" {
		return defaultFallbacks(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fallback data file: %w", err)
	}

	var store FallbackStore
	if err := yaml.Unmarshal(raw, &store); err != nil {
		return nil, fmt.Errorf("failed to parse fallback data file: %w", err)
	}

	if err := store.validate(); err != nil {
		return nil, fmt.Errorf("invalid fallback data file: %w", err)
	}

	return &store, nil
}

func (s *FallbackStore) validate() error {
	for _, interviewType := range []string{
		models.InterviewTypeTechnical,
		models.InterviewTypeBehavioral,
		models.InterviewTypeResume,
		models.InterviewTypeMixed,
	} {
		questions, ok := s.Questions[interviewType]
		if !ok {
			return fmt.Errorf("missing question list for type %q", interviewType)
		}
		if len(questions) < 5 {
			return fmt.Errorf("question list for type %q needs at least 5 entries, got %d", interviewType, len(questions))
		}
	}

	for _, key := range []string{ScorecardNonsensical, ScorecardPoorQuality, ScorecardNoResponses, ScorecardUnavailable} {
		card, ok := s.Scorecards[key]
		if !ok {
			return fmt.Errorf("missing scorecard %q", key)
		}
		if card.OverallScore < 1 || card.OverallScore > 10 {
			return fmt.Errorf("scorecard %q has out-of-range overall score %d", key, card.OverallScore)
		}
	}

	return nil
}

// QuestionsFor returns the canned question list for an interview type,
// defaulting to the mixed list for unknown types.
func (s *FallbackStore) QuestionsFor(interviewType string) []string {
	if questions, ok := s.Questions[interviewType]; ok {
		return questions
	}
	return s.Questions[models.InterviewTypeMixed]
}

// Scorecard returns a copy of the named fixed scorecard.
func (s *FallbackStore) Scorecard(key string) models.InterviewFeedback {
	return s.Scorecards[key]
}

func strPtr(s string) *string { return &s }

func defaultFallbacks() *FallbackStore {
	return &FallbackStore{
		Questions: map[string][]string{
			models.InterviewTypeTechnical: {
				"Tell me about yourself and your technical background.",
				"What technologies and tools are you most comfortable working with?",
				"Describe a challenging technical problem you solved recently and how you approached it.",
				"How do you approach debugging and troubleshooting complex issues?",
				"What's your experience with version control and collaboration tools, and how do they fit into your workflow?",
			},
			models.InterviewTypeBehavioral: {
				"Tell me about a time when you had to work under pressure.",
				"Describe a situation where you had to resolve a conflict with a team member.",
				"Give me an example of a time when you failed and what you learned from it.",
				"Tell me about a time when you had to learn something new quickly.",
				"Describe a situation where you had to persuade others to adopt your idea.",
			},
			models.InterviewTypeResume: {
				"Walk me through your resume and highlight your most relevant experience.",
				"Tell me about a specific project mentioned on your resume and your role in it.",
				"What skills listed on your resume are you most proud of?",
				"Can you explain any gaps in your employment history?",
				"How does your educational background relate to this position?",
			},
			models.InterviewTypeMixed: {
				"Tell me about yourself.",
				"Why do you want this position?",
				"Describe a challenging problem you solved.",
				"How do you handle tight deadlines?",
				"What are your strengths and weaknesses?",
			},
		},
		Scorecards: map[string]models.InterviewFeedback{
			ScorecardNonsensical: {
				OverallScore: 1,
				QuestionScores: []models.QuestionScore{
					{QuestionIndex: 0, Score: 1, Feedback: "Nonsensical response", Suggestions: []string{"Take interviews seriously"}},
					{QuestionIndex: 1, Score: 1, Feedback: "Complete failure", Suggestions: []string{"Learn professionalism"}},
				},
				CategoryScores: models.CategoryScores{Communication: 1, Technical: 1, ProblemSolving: 1, Behavioral: 1},
				Strengths: []models.FeedbackItem{
					{
						Category:    "strength",
						Title:       "Wasted Everyone's Time",
						Description: "You managed to waste both your time and the interviewer's time with completely nonsensical responses",
					},
				},
				Weaknesses: []models.FeedbackItem{
					{
						Category:    "weakness",
						Title:       "COMPLETE FAILURE: Nonsensical Responses",
						Description: "Your responses are random characters or test data. This shows zero respect for the interview process and would end any real interview immediately.",
						Suggestion:  strPtr("If you can't take an interview seriously, don't waste people's time. This behavior would get you blacklisted from any reputable company."),
					},
				},
				Improvements: []models.FeedbackItem{
					{
						Category:    "improvement",
						Title:       "URGENT: Learn Basic Professionalism",
						Description: "Interviews are serious professional interactions, not a joke. This level of disrespect is unacceptable.",
						Suggestion:  strPtr("Learn to take professional opportunities seriously before applying again."),
					},
				},
				Summary: "This is a COMPLETE WASTE OF TIME. Your nonsensical responses show zero professionalism and would result in immediate rejection. Learn to take interviews seriously or don't apply for jobs.",
			},
			ScorecardPoorQuality: {
				OverallScore: 2,
				QuestionScores: []models.QuestionScore{
					{QuestionIndex: 0, Score: 2, Feedback: "Incomplete and incoherent response", Suggestions: []string{"Complete your thoughts and use full sentences"}},
					{QuestionIndex: 1, Score: 1, Feedback: "Fragment of an answer, no substance", Suggestions: []string{"Prepare properly and give complete responses"}},
				},
				CategoryScores: models.CategoryScores{Communication: 2, Technical: 1, ProblemSolving: 2, Behavioral: 2},
				Strengths: []models.FeedbackItem{
					{
						Category:    "strength",
						Title:       "At Least You Tried to Start",
						Description: "You began to answer the question, which is slightly better than saying nothing at all",
					},
				},
				Weaknesses: []models.FeedbackItem{
					{
						Category:    "weakness",
						Title:       "CRITICAL FAILURE: Incomplete and Incoherent Responses",
						Description: "Your answers are fragments that trail off mid-thought. Responses like 'for example I have to look at all the...' show you either gave up or weren't prepared.",
						Suggestion:  strPtr("Finish your sentences. Record yourself and listen back - if you can't understand what you're saying, neither can the interviewer."),
					},
				},
				Improvements: []models.FeedbackItem{
					{
						Category:    "improvement",
						Title:       "URGENT: Learn to Complete Your Thoughts",
						Description: "Practice speaking in full, coherent sentences. Incomplete responses suggest poor preparation or lack of substance.",
						Suggestion:  strPtr("Practice the STAR method (Situation, Task, Action, Result) and always finish your sentences. Prepare concrete examples beforehand."),
					},
				},
				Summary: "UNACCEPTABLE PERFORMANCE. Your responses are incomplete fragments that would result in immediate rejection. Finish your sentences, provide complete thoughts, and prepare actual examples. This is not interview-ready by any standard.",
			},
			ScorecardNoResponses: {
				OverallScore:   2,
				QuestionScores: []models.QuestionScore{},
				CategoryScores: models.CategoryScores{Communication: 2, Technical: 2, ProblemSolving: 2, Behavioral: 2},
				Strengths:      []models.FeedbackItem{},
				Weaknesses: []models.FeedbackItem{
					{
						Category:    "weakness",
						Title:       "No Responses Provided",
						Description: "The interview ended without any answers, so there is nothing to evaluate.",
						Suggestion:  strPtr("Answer every question, even partially - an imperfect answer scores better than silence."),
					},
				},
				Improvements: []models.FeedbackItem{
					{
						Category:    "improvement",
						Title:       "Complete the Interview",
						Description: "Feedback can only be as good as the material you give the interviewer.",
						Suggestion:  strPtr("Restart the interview and respond to each question before requesting feedback."),
					},
				},
				Summary: "No responses were provided for this interview. Complete the questions and request feedback again to receive a meaningful evaluation.",
			},
			ScorecardUnavailable: {
				OverallScore: 4,
				QuestionScores: []models.QuestionScore{
					{QuestionIndex: 0, Score: 4, Feedback: "Mediocre response lacking depth", Suggestions: []string{"Provide specific examples"}},
					{QuestionIndex: 1, Score: 3, Feedback: "Vague and generic answer", Suggestions: []string{"Use STAR method"}},
				},
				CategoryScores: models.CategoryScores{Communication: 5, Technical: 3, ProblemSolving: 4, Behavioral: 4},
				Strengths: []models.FeedbackItem{
					{
						Category:    "strength",
						Title:       "Basic Communication",
						Description: "You can string sentences together coherently - that's the bare minimum",
					},
				},
				Weaknesses: []models.FeedbackItem{
					{
						Category:    "weakness",
						Title:       "LACKS SUBSTANCE: Vague and Generic Responses",
						Description: "Your answers carry no concrete examples or specific details, which suggests thin preparation.",
						Suggestion:  strPtr("Stop giving generic answers and start providing specific examples using the STAR method."),
					},
				},
				Improvements: []models.FeedbackItem{
					{
						Category:    "improvement",
						Title:       "Develop Real Technical Depth",
						Description: "Surface-level knowledge shows. Study harder and gain hands-on experience before the next attempt.",
						Suggestion:  strPtr("Study the fundamentals, build real projects, and return with something substantial to discuss."),
					},
				},
				Summary: "MEDIOCRE performance that shows you're not ready for this level. Your responses lack depth, specificity, and real-world experience. Significantly improve your preparation before interviewing at this level.",
			},
		},
	}
}
