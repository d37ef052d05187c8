package types

// Bucket names a score band.
type Bucket string

const (
	BucketPerfect Bucket = "perfect"
	BucketGood    Bucket = "good"
	BucketPartial Bucket = "partial"
)

// Match is one scored record inside a bucket.
type Match struct {
	Vendor ModelRecord `json:"vendor"`
	Score  float64     `json:"score"`
	Reason string      `json:"reason"`
}

type Summary struct {
	TotalMatches   int `json:"total_matches"`
	PerfectMatches int `json:"perfect_matches"`
	GoodMatches    int `json:"good_matches"`
	PartialMatches int `json:"partial_matches"`
}

// Recommendation is the bucketed output of the scoring engine.
type Recommendation struct {
	Summary        Summary `json:"summary"`
	PerfectMatches []Match `json:"perfect_matches"`
	GoodMatches    []Match `json:"good_matches"`
	PartialMatches []Match `json:"partial_matches"`
}

// NewRecommendation returns an empty result whose lists marshal as [] rather than null.
func NewRecommendation() *Recommendation {
	return &Recommendation{
		PerfectMatches: []Match{},
		GoodMatches:    []Match{},
		PartialMatches: []Match{},
	}
}

// Add appends m to the bucket's list and updates the summary.
func (r *Recommendation) Add(b Bucket, m Match) {
	switch b {
	case BucketPerfect:
		r.PerfectMatches = append(r.PerfectMatches, m)
		r.Summary.PerfectMatches++
	case BucketGood:
		r.GoodMatches = append(r.GoodMatches, m)
		r.Summary.GoodMatches++
	default:
		r.PartialMatches = append(r.PartialMatches, m)
		r.Summary.PartialMatches++
	}
	r.Summary.TotalMatches++
}
