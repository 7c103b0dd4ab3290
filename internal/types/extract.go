package types

// ExtractedIngredient is an ingredient as returned by an AI provider
// during recipe extraction. Ids are assigned only when the extracted
// recipe is saved.
type ExtractedIngredient struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
	Unit   string `json:"unit"`
}

// ExtractedStep references ingredients by name rather than id; the
// provider has no knowledge of storage identifiers.
type ExtractedStep struct {
	Instructions string   `json:"instructions"`
	Ingredients  []string `json:"ingredients"`
}

// ExtractedRecipe is the structured result of extracting a recipe
// from a webpage URL via an AI provider.
type ExtractedRecipe struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	PrepTime    int                   `json:"prepTime"`
	CookTime    int                   `json:"cookTime"`
	Servings    int                   `json:"servings"`
	ImageURL    string                `json:"imageUrl"`
	Ingredients []ExtractedIngredient `json:"ingredients"`
	Steps       []ExtractedStep       `json:"steps"`
	Tags        []string              `json:"tags"`
	Source      string                `json:"source"`
}
