package config

// LookupsConfig holds the hand-maintained enrichment tables. All of them are
// snapshots; none is an authority on live pricing.
type LookupsConfig struct {
	Vendors        map[string]VendorInfo `yaml:"vendors"`
	VendorKeywords []VendorKeyword       `yaml:"vendor_keywords"`
	Pricing        map[string]PriceEntry `yaml:"pricing"`         // model_name -> USD per 1K tokens
	ContextWindows map[string]int        `yaml:"context_windows"` // model_name -> tokens
	SourceTypes    map[string]string     `yaml:"source_types"`    // vendor -> open/closed
}

type VendorInfo struct {
	FormationYear int    `yaml:"formation_year"`
	Company       string `yaml:"company"`
	Maturity      string `yaml:"maturity"`
}

// VendorKeyword attributes a model to a vendor when Keyword appears in the
// lower-cased model name. Keywords are tried in order.
type VendorKeyword struct {
	Keyword string `yaml:"keyword"`
	Vendor  string `yaml:"vendor"`
}

type PriceEntry struct {
	Input  float64 `yaml:"input"`
	Output float64 `yaml:"output"`
}
