package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/af-corp/model-catalog/internal/types"
)

// topN caps the good and partial listings; perfect matches are always shown in full.
const topN = 3

func printRecommendations(w io.Writer, rec *types.Recommendation, uc types.UseCase) {
	req := uc.Requirements
	fmt.Fprintf(w, "=== RECOMMENDATIONS FOR: %s ===\n", uc.Name)
	fmt.Fprintf(w, "Requirements: deployment=%s latency=%s input=[%s] output=[%s]\n",
		req.Deployment.Type, req.Latency.Type,
		strings.Join(req.Modality.Input, ", "), strings.Join(req.Modality.Output, ", "))
	fmt.Fprintf(w, "Total matches found: %d\n", rec.Summary.TotalMatches)
	fmt.Fprintf(w, "Perfect matches: %d\n", rec.Summary.PerfectMatches)
	fmt.Fprintf(w, "Good matches: %d\n", rec.Summary.GoodMatches)
	fmt.Fprintf(w, "Partial matches: %d\n", rec.Summary.PartialMatches)

	if len(rec.PerfectMatches) > 0 {
		fmt.Fprintln(w, "\n🎯 PERFECT MATCHES:")
		for _, m := range rec.PerfectMatches {
			v := m.Vendor
			fmt.Fprintf(w, "  • %s (Score: %.2f)\n", v.ModelName, m.Score)
			fmt.Fprintf(w, "    - Deployment: %s\n", v.DeploymentType)
			fmt.Fprintf(w, "    - Latency: %s\n", v.LatencySupport)
			fmt.Fprintf(w, "    - Input: %s\n", v.InputModalities)
			fmt.Fprintf(w, "    - Output: %s\n", v.OutputModalities)
			fmt.Fprintf(w, "    - Reason: %s\n\n", m.Reason)
		}
	}

	if len(rec.GoodMatches) > 0 {
		fmt.Fprintln(w, "\n✅ GOOD MATCHES:")
		printShort(w, rec.GoodMatches)
	}

	// Partial matches only matter when nothing better exists.
	if len(rec.PartialMatches) > 0 && len(rec.PerfectMatches) == 0 && len(rec.GoodMatches) == 0 {
		fmt.Fprintln(w, "\n⚠️  PARTIAL MATCHES:")
		printShort(w, rec.PartialMatches)
	}
}

func printShort(w io.Writer, matches []types.Match) {
	for i, m := range matches {
		if i == topN {
			fmt.Fprintf(w, "  ... and %d more\n", len(matches)-topN)
			break
		}
		fmt.Fprintf(w, "  • %s (Score: %.2f)\n", m.Vendor.ModelName, m.Score)
		fmt.Fprintf(w, "    - %s\n\n", m.Reason)
	}
}
