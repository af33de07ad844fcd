package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrEmptyNiche is returned by GeneratorConfig.Validate when the niche is blank.
var ErrEmptyNiche = errors.New("Please describe your topic first.")

var validate = validator.New()

// AssetToggles selects which content fields survive normalization.
type AssetToggles struct {
	Title       bool `json:"title"`
	Description bool `json:"description"`
	Keywords    bool `json:"keywords"`
	Prompt      bool `json:"prompt"`
}

// AllAssets returns toggles with every field enabled.
func AllAssets() AssetToggles {
	return AssetToggles{Title: true, Description: true, Keywords: true, Prompt: true}
}

// GeneratorConfig describes one generation request.
type GeneratorConfig struct {
	Niche       string       `json:"niche" validate:"required"`
	Temperature float64      `json:"temperature" validate:"gte=0,lte=1.5"`
	Quantity    int          `json:"quantity" validate:"gte=1,lte=10"`
	Assets      AssetToggles `json:"assets"`
}

// DefaultGeneratorConfig returns the settings a new request starts from.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{Temperature: 0.8, Quantity: 1, Assets: AllAssets()}
}

// TrimmedNiche returns the niche with surrounding whitespace removed.
func (c GeneratorConfig) TrimmedNiche() string {
	return strings.TrimSpace(c.Niche)
}

// Validate checks the ranges the generator UI enforces. The facade itself
// does not call it.
func (c GeneratorConfig) Validate() error {
	if c.TrimmedNiche() == "" {
		return ErrEmptyNiche
	}
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return validationMessage(verrs[0])
		}
		return err
	}
	return nil
}

func validationMessage(fe validator.FieldError) error {
	switch fe.Field() {
	case "Quantity":
		return fmt.Errorf("quantity must be between 1 and 10, got %v", fe.Value())
	case "Temperature":
		return fmt.Errorf("temperature must be between 0.0 and 1.5, got %v", fe.Value())
	case "Niche":
		return ErrEmptyNiche
	}
	return fmt.Errorf("invalid %s: failed %q", strings.ToLower(fe.Field()), fe.Tag())
}

// StockAssetVariation is one normalized set of stock metadata. Content fields
// are nil when the matching asset toggle was off or the provider omitted them.
type StockAssetVariation struct {
	ID             string  `json:"id"`
	VariationIndex int     `json:"variationIndex"`
	Title          *string `json:"title,omitempty"`
	Description    *string `json:"description,omitempty"`
	Keywords       *string `json:"keywords,omitempty"`
	ImagePrompt    *string `json:"imagePrompt,omitempty"`
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

// Deref returns *p, or the zero value when p is nil.
func Deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
