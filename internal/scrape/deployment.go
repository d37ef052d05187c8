package scrape

import (
	"strings"

	"github.com/af-corp/model-catalog/internal/catalog"
	"github.com/af-corp/model-catalog/internal/types"
)

// Catalog page columns.
const (
	colModelName      = "Model name"
	colRegions        = "Regions supported"
	colInputModality  = "Input modalities"
	colOutputModality = "Output modalities"
)

// hybridKeywords mark a model as deployable into customer-controlled
// networks. Matched case-insensitively against every cell of the row.
var hybridKeywords = []string{
	"VPC endpoint",
	"Private deployment",
	"Custom model hosting",
	"Outposts compatible",
	"Provisioned throughput",
	"Dedicated instance",
	"Amazon VPC integration",
	"AWS PrivateLink",
	"Bring your own VPC",
	"Network isolation",
}

// DeploymentType infers a deployment label from one catalog row.
func DeploymentType(row Row) string {
	for _, v := range row {
		lower := strings.ToLower(v)
		for _, kw := range hybridKeywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				return types.DeploymentHybrid
			}
		}
	}
	if strings.TrimSpace(row[colRegions]) != "" {
		return types.DeploymentCloud
	}
	return types.DeploymentOnPremises
}

// DeploymentSet labels every named catalog row, keyed by model name.
func DeploymentSet(rows []Row) catalog.AttributeSet {
	set := catalog.AttributeSet{Name: "deployment", Key: catalog.KeyModelName}
	for _, row := range rows {
		name := strings.TrimSpace(row[colModelName])
		if name == "" {
			continue
		}
		set.Add(name, map[string]string{catalog.FieldDeploymentType: DeploymentType(row)})
	}
	return set
}
