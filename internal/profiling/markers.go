package profiling

// ScoreProfile summarises the TotalScore distribution of one school
type ScoreProfile struct {
	Count    int     `json:"count"`
	Mean     float64 `json:"mean"`
	StdDev   float64 `json:"std_dev"`
	Median   float64 `json:"median"`
	Q25      float64 `json:"q25"`
	Q75      float64 `json:"q75"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Skewness float64 `json:"skewness"`
}

// QuestionProfile describes the responses to one survey question
type QuestionProfile struct {
	Question      int     `json:"question"` // 1-based
	Reversed      bool    `json:"reversed"`
	MeanAnswer    float64 `json:"mean_answer"`     // stored (post-reversal) scale
	OftenOrAlways float64 `json:"often_or_always"` // percent on the original scale
	OriginalMean  float64 `json:"original_mean"`
}

// SchoolProfile is the drill-down view for a single school
type SchoolProfile struct {
	SchoolName string            `json:"school_name"`
	Scores     ScoreProfile      `json:"scores"`
	Questions  []QuestionProfile `json:"questions"`
}
