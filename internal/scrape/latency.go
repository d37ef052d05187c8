package scrape

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/af-corp/model-catalog/internal/catalog"
	"github.com/af-corp/model-catalog/internal/types"
)

// masterModel is a catalog row reduced to what batch matching needs.
type masterModel struct {
	id       string
	provider string
	name     string
}

func masterModels(rows []Row) []masterModel {
	var out []masterModel
	for _, row := range rows {
		id := strings.TrimSpace(row.First("Model ID", "Model Id", "Model"))
		if id == "" {
			continue
		}
		out = append(out, masterModel{
			id:       id,
			provider: strings.ToLower(row.First("Provider", "Model provider")),
			name:     strings.ToLower(row.First(colModelName, "Model")),
		})
	}
	return out
}

// BatchModelIDs matches rows of the batch inference page to catalog model
// ids. A batch row matches a catalog row when its provider is contained in
// the catalog provider and its model text is contained in the catalog name
// or id. Among several candidates the id closest by edit distance wins.
func BatchModelIDs(master, batch []Row) map[string]bool {
	models := masterModels(master)
	ids := make(map[string]bool)
	for _, b := range batch {
		if !b.HasColumns("Provider", "Model") {
			continue
		}
		provider := strings.ToLower(strings.TrimSpace(b["Provider"]))
		model := strings.ToLower(strings.TrimSpace(b["Model"]))
		if model == "" {
			continue
		}

		best, bestDist := "", -1
		for _, m := range models {
			if !strings.Contains(m.provider, provider) {
				continue
			}
			if !strings.Contains(m.name, model) && !strings.Contains(strings.ToLower(m.id), model) {
				continue
			}
			d := levenshtein.ComputeDistance(model, strings.ToLower(m.id))
			if bestDist < 0 || d < bestDist {
				best, bestDist = m.id, d
			}
		}
		if best != "" {
			ids[best] = true
		}
	}
	return ids
}

// LatencySet labels every catalog model id batch-supported or real-time
// only, keyed by model id.
func LatencySet(master, batch []Row) catalog.AttributeSet {
	batchIDs := BatchModelIDs(master, batch)
	set := catalog.AttributeSet{Name: "latency", Key: catalog.KeyModelID}
	for _, m := range masterModels(master) {
		label := types.LatencyRealTimeOnly
		if batchIDs[m.id] {
			label = types.LatencyBatchSupported
		}
		set.Add(m.id, map[string]string{catalog.FieldLatencySupport: label})
	}
	return set
}
