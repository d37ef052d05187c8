package catalog

import (
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/af-corp/model-catalog/internal/config"
	"github.com/af-corp/model-catalog/internal/types"
)

// Enrichment attribute names.
const (
	AttrVendor         = "vendor"
	AttrVendorCompany  = "vendor_company"
	AttrVendorMaturity = "vendor_maturity"
	AttrFormationYear  = "formation_year"
	AttrContextWindow  = "context_window"
	AttrCostInput      = "cost_input_per_1k"
	AttrCostOutput     = "cost_output_per_1k"
	AttrCostCategory   = "cost_category"
	AttrSourceType     = "source_type"

	// Supplied by the specificity source rather than the lookup tables.
	AttrSpecificity         = "specificity"
	AttrSpecificityKeywords = "specificity_keywords"
)

// Cost categories by input price per 1K tokens.
const (
	CostLow    = "Low Cost"
	CostMedium = "Medium Cost"
	CostHigh   = "High Cost"

	lowCostMax    = 0.001
	mediumCostMax = 0.005
)

// CostCategory buckets an input rate in USD per 1K tokens.
func CostCategory(inputRate float64) string {
	switch {
	case inputRate <= lowCostMax:
		return CostLow
	case inputRate <= mediumCostMax:
		return CostMedium
	default:
		return CostHigh
	}
}

// Enrich returns a copy of records with the static lookup attributes
// attached. Values the tables do not cover are Unknown; attributes already
// supplied by an extractor are left alone.
func Enrich(records []types.ModelRecord, lookups *config.LookupsConfig) []types.ModelRecord {
	if lookups == nil {
		lookups = &config.LookupsConfig{}
	}
	out := make([]types.ModelRecord, len(records))
	for i, r := range records {
		attrs := maps.Clone(r.Attributes)
		if attrs == nil {
			attrs = make(map[string]string)
		}
		set := func(k, v string) {
			if cur, ok := attrs[k]; ok && cur != "" && cur != types.Unknown {
				return
			}
			attrs[k] = v
		}

		vendor := resolveVendor(r, lookups)
		set(AttrVendor, vendor)
		info, known := lookups.Vendors[vendor]
		if known {
			set(AttrVendorCompany, orUnknown(info.Company))
			set(AttrVendorMaturity, orUnknown(info.Maturity))
			if info.FormationYear > 0 {
				set(AttrFormationYear, strconv.Itoa(info.FormationYear))
			} else {
				set(AttrFormationYear, types.Unknown)
			}
		} else {
			set(AttrVendorCompany, types.Unknown)
			set(AttrVendorMaturity, types.Unknown)
			set(AttrFormationYear, types.Unknown)
		}
		set(AttrSourceType, orUnknown(lookups.SourceTypes[vendor]))

		if tokens, ok := lookups.ContextWindows[r.ModelName]; ok && tokens > 0 {
			set(AttrContextWindow, strconv.Itoa(tokens))
		} else {
			set(AttrContextWindow, types.Unknown)
		}

		if price, ok := lookups.Pricing[r.ModelName]; ok {
			set(AttrCostInput, formatRate(price.Input))
			set(AttrCostOutput, formatRate(price.Output))
			set(AttrCostCategory, CostCategory(price.Input))
		} else {
			set(AttrCostInput, types.Unknown)
			set(AttrCostOutput, types.Unknown)
			set(AttrCostCategory, types.Unknown)
		}

		r.Attributes = attrs
		out[i] = r
	}
	return out
}

// resolveVendor tries the name keywords first, then the model id provider
// prefix ("anthropic.claude-..." or "us.meta.llama-...").
func resolveVendor(r types.ModelRecord, lookups *config.LookupsConfig) string {
	name := strings.ToLower(r.ModelName)
	for _, kw := range lookups.VendorKeywords {
		if kw.Keyword != "" && strings.Contains(name, strings.ToLower(kw.Keyword)) {
			return kw.Vendor
		}
	}

	if r.ModelID == types.Unknown {
		return types.Unknown
	}
	vendors := slices.Sorted(maps.Keys(lookups.Vendors))
	for _, seg := range strings.Split(r.ModelID, ".") {
		for _, v := range vendors {
			if strings.EqualFold(seg, v) {
				return v
			}
		}
	}
	return types.Unknown
}

func formatRate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return types.Unknown
	}
	return s
}
