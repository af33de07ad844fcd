package googlegemini

import "github.com/google/generative-ai-go/genai"

// variationsSchema constrains the response to {"variations": [...]}. The
// length hints are advisory to the model and are not enforced locally.
func variationsSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"variations": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"variationIndex": {
							Type:        genai.TypeInteger,
							Description: "1-based position of this variation in the batch",
						},
						"title": {
							Type:        genai.TypeString,
							Description: "SEO Title (Agency optimized, max 70 chars)",
						},
						"description": {
							Type:        genai.TypeString,
							Description: "Detailed description (150-200 chars)",
						},
						"keywords": {
							Type:        genai.TypeString,
							Description: "Exactly 40 relevant tags, comma-separated",
						},
						"imagePrompt": {
							Type:        genai.TypeString,
							Description: "Highly detailed AI image generation prompt including style, lighting, and composition",
						},
					},
					Required: []string{"variationIndex", "title", "description", "keywords", "imagePrompt"},
				},
			},
		},
		Required: []string{"variations"},
	}
}
