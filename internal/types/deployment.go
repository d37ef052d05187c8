package types

import "strings"

// Deployment types a record may carry.
const (
	DeploymentCloud      = "Cloud"
	DeploymentOnPremises = "On-premises"
	DeploymentHybrid     = "Hybrid"
)

// Latency labels produced by the latency extractor.
const (
	LatencyRealTimeOnly   = "real-time only"
	LatencyBatchSupported = "batch-supported"
)

// Requirement values understood by the filter stages. Comparison is
// case-insensitive; anything else is an unrecognized requirement.
const (
	RequireAny      = "any"
	RequireRealTime = "real-time"
	RequireBatch    = "batch"
	RequireBoth     = "both"
)

// IsAny reports whether a requirement value means "no constraint".
func IsAny(v string) bool {
	return strings.EqualFold(strings.TrimSpace(v), RequireAny)
}

// NormalizeDeployment maps loose deployment text onto the canonical labels.
// Other text is kept as the source wrote it, trimmed; blank text is Unknown.
func NormalizeDeployment(s string) string {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "unknown":
		return Unknown
	case "cloud":
		return DeploymentCloud
	case "on-premises", "on-premise", "on-prem", "on premises":
		return DeploymentOnPremises
	case "hybrid":
		return DeploymentHybrid
	default:
		return s
	}
}
