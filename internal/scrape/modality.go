package scrape

import (
	"strings"

	"github.com/af-corp/model-catalog/internal/catalog"
)

// ModalitySet copies the raw modality text of every named catalog row.
func ModalitySet(rows []Row) catalog.AttributeSet {
	set := catalog.AttributeSet{Name: "modality", Key: catalog.KeyModelName}
	for _, row := range rows {
		name := strings.TrimSpace(row[colModelName])
		if name == "" {
			continue
		}
		set.Add(name, map[string]string{
			catalog.FieldInputModalities:  strings.TrimSpace(row[colInputModality]),
			catalog.FieldOutputModalities: strings.TrimSpace(row[colOutputModality]),
		})
	}
	return set
}
