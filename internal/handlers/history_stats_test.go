package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"mockmate/interview-api/internal/models"
)

func scoredRecord(interviewType string, score float64, daysAgo int) models.InterviewRecord {
	return models.InterviewRecord{
		InterviewType: interviewType,
		OverallScore:  &score,
		CreatedAt:     time.Now().AddDate(0, 0, -daysAgo),
	}
}

func TestComputeStats_Empty(t *testing.T) {
	stats := computeStats(nil)

	assert.Equal(t, 0, stats.TotalInterviews)
	assert.Equal(t, 0.0, stats.AverageScore)
	assert.Equal(t, 0.0, stats.BestScore)
	assert.Equal(t, "not_enough_data", stats.RecentTrend)
	assert.Empty(t, stats.ScoreProgression)
}

func TestComputeStats_Aggregates(t *testing.T) {
	records := []models.InterviewRecord{
		scoredRecord(models.InterviewTypeTechnical, 6, 3),
		scoredRecord(models.InterviewTypeTechnical, 8, 2),
		scoredRecord(models.InterviewTypeBehavioral, 7, 1),
	}

	stats := computeStats(records)

	assert.Equal(t, 3, stats.TotalInterviews)
	assert.InDelta(t, 7.0, stats.AverageScore, 0.001)
	assert.Equal(t, 8.0, stats.BestScore)
	assert.Equal(t, 2, stats.InterviewsByType[models.InterviewTypeTechnical])
	assert.Equal(t, 1, stats.InterviewsByType[models.InterviewTypeBehavioral])
	assert.Len(t, stats.ScoreProgression, 3)
}

func TestComputeStats_UnscoredRecordsCountButDoNotScore(t *testing.T) {
	records := []models.InterviewRecord{
		{InterviewType: models.InterviewTypeMixed, CreatedAt: time.Now()},
		scoredRecord(models.InterviewTypeTechnical, 9, 0),
	}

	stats := computeStats(records)

	assert.Equal(t, 2, stats.TotalInterviews)
	assert.Equal(t, 9.0, stats.AverageScore)
	assert.Len(t, stats.ScoreProgression, 1)
	// Only one scored record, no trend yet.
	assert.Equal(t, "not_enough_data", stats.RecentTrend)
}

func TestComputeStats_Trend(t *testing.T) {
	tests := []struct {
		name   string
		scores []float64
		want   string
	}{
		{"improving", []float64{4, 4, 7, 8, 8}, "improving"},
		{"declining", []float64{8, 8, 4, 4, 3}, "declining"},
		{"stable", []float64{6, 6, 6, 6, 6}, "stable"},
		{"two scores improving", []float64{4, 6}, "improving"},
		{"two scores stable", []float64{6, 6}, "stable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var records []models.InterviewRecord
			for i, score := range tt.scores {
				records = append(records, scoredRecord(models.InterviewTypeMixed, score, len(tt.scores)-i))
			}

			stats := computeStats(records)
			assert.Equal(t, tt.want, stats.RecentTrend)
		})
	}
}
