// Package normalize converts raw provider records into StockAssetVariation values.
package normalize

import (
	"github.com/google/uuid"
	"github.com/mahmudulbisd/stockgen-ai-pro/models"
)

// Normalizer assigns ids and applies asset toggles. The zero value uses random UUIDs.
type Normalizer struct {
	NewID func() string
}

// Variations normalizes raw with a default Normalizer.
func Variations(raw []models.RawVariation, assets models.AssetToggles) []models.StockAssetVariation {
	return Normalizer{}.Normalize(raw, assets)
}

// Normalize returns one variation per raw record, in the same order. Values
// are copied through untouched; fields whose toggle is off are left nil.
func (n Normalizer) Normalize(raw []models.RawVariation, assets models.AssetToggles) []models.StockAssetVariation {
	newID := n.NewID
	if newID == nil {
		newID = uuid.NewString
	}

	out := make([]models.StockAssetVariation, 0, len(raw))
	for idx, item := range raw {
		v := models.StockAssetVariation{
			ID:             newID(),
			VariationIndex: idx + 1,
		}
		if item.VariationIndex != nil && *item.VariationIndex != 0 {
			v.VariationIndex = *item.VariationIndex
		}
		if assets.Title {
			v.Title = item.Title
		}
		if assets.Description {
			v.Description = item.Description
		}
		if assets.Keywords {
			v.Keywords = item.Keywords
		}
		if assets.Prompt {
			v.ImagePrompt = item.ImagePrompt
		}
		out = append(out, v)
	}
	return out
}
