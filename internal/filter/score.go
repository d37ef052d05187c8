package filter

import (
	"strings"

	"github.com/af-corp/model-catalog/internal/types"
)

const (
	criteriaCount = 4

	// PerfectThreshold and GoodThreshold bound the score buckets.
	PerfectThreshold = 0.9
	GoodThreshold    = 0.7
)

var bucketReasons = map[types.Bucket]string{
	types.BucketPerfect: "Perfect match for all requirements",
	types.BucketGood:    "Good match with minor considerations",
	types.BucketPartial: "Partial match - may need additional configuration",
}

// Score rates record against req in [0, 1], in steps of 0.25. Each of
// deployment, latency, input modality and output modality is worth one
// point. A deployment of "Any" earns nothing: only equality is rewarded.
func Score(record types.ModelRecord, req types.RequirementSpec) float64 {
	points := 0

	if strings.EqualFold(record.DeploymentType, req.Deployment.Type) {
		points++
	}

	have := strings.ToLower(record.LatencySupport)
	switch strings.ToLower(req.Latency.Type) {
	case types.RequireRealTime:
		if strings.Contains(have, types.RequireRealTime) {
			points++
		}
	case types.RequireBatch:
		if strings.Contains(have, types.RequireBatch) {
			points++
		}
	case types.RequireBoth:
		points++
	}

	if containsAny(record.InputModalities, req.Modality.Input) {
		points++
	}
	if containsAny(record.OutputModalities, req.Modality.Output) {
		points++
	}

	return float64(points) / criteriaCount
}

// Bucket classifies a score.
func Bucket(score float64) types.Bucket {
	switch {
	case score >= PerfectThreshold:
		return types.BucketPerfect
	case score >= GoodThreshold:
		return types.BucketGood
	default:
		return types.BucketPartial
	}
}

// Reason returns the human-readable explanation attached to a bucket.
func Reason(b types.Bucket) string {
	return bucketReasons[b]
}
