package domain

// AssessmentAnswer is a single answer in the readiness assessment.
// Score is on a 1-5 scale.
type AssessmentAnswer struct {
	Category string `json:"category" validate:"required"`
	Score    int    `json:"score" validate:"required,min=1,max=5"`
}

// AssessmentSubmission is one completed assessment.
type AssessmentSubmission struct {
	Answers []AssessmentAnswer `json:"answers" validate:"required,min=1,dive"`
}

// CategoryScore is the averaged result for one assessment category.
type CategoryScore struct {
	Category string  `json:"category"`
	Score    float64 `json:"score"`
	Percent  float64 `json:"percent"`
}

// AssessmentResult is the scored outcome of a submission.
type AssessmentResult struct {
	OverallPercent float64         `json:"overall_percent"`
	Band           string          `json:"band"`
	Recommendation string          `json:"recommendation"`
	Categories     []CategoryScore `json:"categories"`
}
