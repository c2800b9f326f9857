package service

import (
	"math"

	"github.com/lorenzodc/catalyst-api/internal/domain"
)

// Readiness bands by overall percentage.
const (
	BandCatalystReady = "Catalyst Ready"
	BandAccelerating  = "Accelerating"
	BandEmerging      = "Emerging"
	BandFoundational  = "Foundational"
)

var bandRecommendations = map[string]string{
	BandCatalystReady: "You're ready to scale AI across your business. Focus on advanced automation and measurement.",
	BandAccelerating:  "Strong foundations are in place. Prioritize the two lowest-scoring areas to unlock the next level.",
	BandEmerging:      "You've started the journey. Build consistent habits around your highest-impact workflows first.",
	BandFoundational:  "Start small: pick one workflow, apply AI to it weekly, and measure the time saved.",
}

// AssessmentService scores readiness assessment submissions. Scoring is
// pure arithmetic over 1-5 answers; no external calls.
type AssessmentService struct{}

// NewAssessmentService creates a new assessment service.
func NewAssessmentService() *AssessmentService {
	return &AssessmentService{}
}

// Score averages answers per category, converts to percentages, and maps
// the overall percentage to a readiness band.
func (s *AssessmentService) Score(submission domain.AssessmentSubmission) domain.AssessmentResult {
	sums := make(map[string]int)
	counts := make(map[string]int)
	order := make([]string, 0)

	for _, answer := range submission.Answers {
		if _, seen := sums[answer.Category]; !seen {
			order = append(order, answer.Category)
		}
		sums[answer.Category] += answer.Score
		counts[answer.Category]++
	}

	categories := make([]domain.CategoryScore, 0, len(order))
	var overall float64
	for _, category := range order {
		avg := float64(sums[category]) / float64(counts[category])
		percent := round1(avg / 5 * 100)
		categories = append(categories, domain.CategoryScore{
			Category: category,
			Score:    round1(avg),
			Percent:  percent,
		})
		overall += percent
	}
	if len(categories) > 0 {
		overall = round1(overall / float64(len(categories)))
	}

	band := bandFor(overall)
	return domain.AssessmentResult{
		OverallPercent: overall,
		Band:           band,
		Recommendation: bandRecommendations[band],
		Categories:     categories,
	}
}

func bandFor(percent float64) string {
	switch {
	case percent >= 80:
		return BandCatalystReady
	case percent >= 60:
		return BandAccelerating
	case percent >= 40:
		return BandEmerging
	default:
		return BandFoundational
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
