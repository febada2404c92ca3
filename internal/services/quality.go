package services

import (
	"strings"
	"unicode"
)

// AnswerQuality classifies a batch of answers before any model call is spent
// on scoring them.
type AnswerQuality int

const (
	QualityNormal AnswerQuality = iota
	QualityPoor
	QualityNonsensical
)

func (q AnswerQuality) String() string {
	switch q {
	case QualityNonsensical:
		return "nonsensical"
	case QualityPoor:
		return "poor"
	default:
		return "normal"
	}
}

// QAPair is one question with the answer the candidate gave it.
type QAPair struct {
	Question string
	Answer   string
}

// QualityGate screens interview answers for degenerate input. Catching junk
// before scoring keeps the output deterministic and saves a model call that
// could not produce meaningful feedback anyway.
type QualityGate struct {
	echoThreshold float64
}

var junkTokens = map[string]struct{}{
	"asdasdasdasd": {},
	"test":         {},
	"testing":      {},
	"asdf":         {},
	"qwerty":       {},
	"123":          {},
	"abc":          {},
}

var fillerTokens = map[string]struct{}{
	"uh":   {},
	"um":   {},
	"yes":  {},
	"no":   {},
	"ok":   {},
	"sure": {},
}

// NewQualityGate builds a gate with the given echo-overlap threshold: the
// share of answer words also present in the question above which the answer
// counts as the question echoed back. Values outside (0,1] fall back to 0.6.
func NewQualityGate(echoThreshold float64) *QualityGate {
	if echoThreshold <= 0 || echoThreshold > 1 {
		echoThreshold = 0.6
	}
	return &QualityGate{echoThreshold: echoThreshold}
}

// Classify inspects the whole batch. A single nonsensical answer marks the
// batch nonsensical; otherwise a single poor answer marks it poor.
func (g *QualityGate) Classify(pairs []QAPair) AnswerQuality {
	for _, pair := range pairs {
		if g.isNonsensical(pair) {
			return QualityNonsensical
		}
	}

	for _, pair := range pairs {
		if isPoorQuality(pair.Answer) {
			return QualityPoor
		}
	}

	return QualityNormal
}

func (g *QualityGate) isNonsensical(pair QAPair) bool {
	answer := strings.ToLower(strings.TrimSpace(pair.Answer))
	question := strings.ToLower(strings.TrimSpace(pair.Question))

	if _, junk := junkTokens[answer]; junk {
		return true
	}
	if len(answer) < 3 {
		return true
	}
	if isNumeric(answer) {
		return true
	}

	// Echoing the question back: most of the answer's words already appear
	// in the question.
	if len(answer) > 10 && len(question) > 10 {
		answerWords := strings.Fields(answer)
		shared := sharedWordCount(answerWords, strings.Fields(question))
		if float64(shared) > float64(len(answerWords))*g.echoThreshold {
			return true
		}
	}

	return false
}

func isPoorQuality(rawAnswer string) bool {
	answer := strings.ToLower(strings.TrimSpace(rawAnswer))
	words := strings.Fields(answer)

	if _, filler := fillerTokens[answer]; filler {
		return true
	}
	if len(words) < 5 {
		return true
	}
	if !strings.ContainsAny(answer, ".!?") && len(words) < 20 {
		return true
	}
	if len(words) < 10 && strings.HasSuffix(answer, "for example") {
		return true
	}

	return false
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// sharedWordCount counts the distinct answer words that also occur in the
// question.
func sharedWordCount(answerWords, questionWords []string) int {
	questionSet := make(map[string]struct{}, len(questionWords))
	for _, w := range questionWords {
		questionSet[w] = struct{}{}
	}

	seen := make(map[string]struct{}, len(answerWords))
	count := 0
	for _, w := range answerWords {
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		if _, ok := questionSet[w]; ok {
			count++
		}
	}
	return count
}
