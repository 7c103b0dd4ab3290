package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/TheOneTrueGod/lomithBackend/internal/types"
)

var (
	ErrInvalidURL    = errors.New("invalid URL")
	ErrNoRecipeFound = errors.New("no recipe found on this page")
)

// ExtractService turns a webpage URL into structured recipe data by
// calling the user's configured AI provider.
type ExtractService struct {
	integrations *AIIntegrationService
	client       *http.Client
}

// NewExtractService creates an ExtractService.
func NewExtractService(integrations *AIIntegrationService) *ExtractService {
	return &ExtractService{
		integrations: integrations,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// ExtractFromURL resolves the user's integration, calls the provider
// with the extraction prompt, and decodes the response. provider may
// be empty, in which case the most recent active integration is used.
func (s *ExtractService) ExtractFromURL(ctx context.Context, userID uuid.UUID, rawURL, provider string) (*types.ExtractedRecipe, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, ErrInvalidURL
	}

	integration, err := s.integrations.ActiveIntegration(ctx, userID, provider)
	if err != nil {
		return nil, err
	}
	apiKey, err := s.integrations.DecryptAPIKey(integration.EncryptedAPIKey)
	if err != nil {
		return nil, err
	}

	prompt := buildExtractionPrompt(rawURL)

	var content string
	switch integration.Provider {
	case "openai":
		content, err = s.callOpenAI(ctx, apiKey, integration.Model, integration.BaseURL, prompt)
	case "anthropic":
		content, err = s.callAnthropic(ctx, apiKey, integration.Model, integration.BaseURL, prompt)
	case "google":
		content, err = s.callGoogle(ctx, apiKey, integration.Model, integration.BaseURL, prompt)
	default:
		return nil, fmt.Errorf("unsupported provider %q", integration.Provider)
	}
	if err != nil {
		return nil, err
	}

	recipe, err := parseExtractedRecipe(content)
	if err != nil {
		return nil, err
	}
	recipe.Source = rawURL
	return recipe, nil
}

func buildExtractionPrompt(rawURL string) string {
	return fmt.Sprintf(`You are a recipe extraction assistant. Visit the following website URL and extract recipe information:

URL: %s

Extract the recipe's title, description, prepTime and cookTime (minutes, numbers), servings (number), imageUrl (or null), ingredients (name, amount, unit), steps (instructions plus the names of ingredients used in the step), and 3-5 relevant tags.

Do NOT include id, userId, createdAt, updatedAt, or source fields. Return ONLY valid JSON in this format:
{
  "title": "string",
  "description": "string",
  "prepTime": number,
  "cookTime": number,
  "servings": number,
  "imageUrl": "string or null",
  "ingredients": [{"name": "string", "amount": "string", "unit": "string"}],
  "steps": [{"instructions": "string", "ingredients": ["ingredient name"]}],
  "tags": ["tag1", "tag2"]
}

If you cannot find a recipe on the page, return: {"error": "No recipe found on this page"}`, rawURL)
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIRequest struct {
	Model          string            `json:"model"`
	Messages       []chatMessage     `json:"messages"`
	ResponseFormat map[string]string `json:"response_format"`
	Temperature    float64           `json:"temperature"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (s *ExtractService) callOpenAI(ctx context.Context, apiKey, model, baseURL, prompt string) (string, error) {
	endpoint := joinBaseURL(baseURL, "https://api.openai.com/v1", "/chat/completions")

	body, err := json.Marshal(openAIRequest{
		Model:          model,
		Messages:       []chatMessage{{Role: "user", Content: prompt}},
		ResponseFormat: map[string]string{"type": "json_object"},
		Temperature:    0.3,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	raw, err := s.do(req)
	if err != nil {
		return "", err
	}
	var parsed openAIResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("decoding provider response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New("provider returned no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}

type anthropicRequest struct {
	Model     string        `json:"model"`
	MaxTokens int           `json:"max_tokens"`
	Messages  []chatMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

func (s *ExtractService) callAnthropic(ctx context.Context, apiKey, model, baseURL, prompt string) (string, error) {
	endpoint := joinBaseURL(baseURL, "https://api.anthropic.com/v1", "/messages")

	body, err := json.Marshal(anthropicRequest{
		Model:     model,
		MaxTokens: 4096,
		Messages:  []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	raw, err := s.do(req)
	if err != nil {
		return "", err
	}
	var parsed anthropicResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("decoding provider response: %w", err)
	}
	if len(parsed.Content) == 0 {
		return "", errors.New("provider returned no content")
	}
	return parsed.Content[0].Text, nil
}

type googlePart struct {
	Text string `json:"text"`
}

type googleContent struct {
	Parts []googlePart `json:"parts"`
}

type googleRequest struct {
	Contents []googleContent `json:"contents"`
}

type googleResponse struct {
	Candidates []struct {
		Content googleContent `json:"content"`
	} `json:"candidates"`
}

func (s *ExtractService) callGoogle(ctx context.Context, apiKey, model, baseURL, prompt string) (string, error) {
	base := joinBaseURL(baseURL, "https://generativelanguage.googleapis.com/v1beta", "")
	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", base, model, url.QueryEscape(apiKey))

	body, err := json.Marshal(googleRequest{
		Contents: []googleContent{{Parts: []googlePart{{Text: prompt}}}},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	raw, err := s.do(req)
	if err != nil {
		return "", err
	}
	var parsed googleResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("decoding provider response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("provider returned no candidates")
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}

func (s *ExtractService) do(req *http.Request) ([]byte, error) {
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling AI provider: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("AI provider returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	return raw, nil
}

// joinBaseURL picks the integration override or the fallback and
// appends the endpoint path exactly once.
func joinBaseURL(baseURL, fallback, path string) string {
	base := strings.TrimRight(baseURL, "/")
	if base == "" {
		base = fallback
	}
	if path != "" && !strings.HasSuffix(base, path) {
		base += path
	}
	return base
}

// parseExtractedRecipe strips optional markdown fences and decodes
// the provider's JSON payload.
func parseExtractedRecipe(content string) (*types.ExtractedRecipe, error) {
	cleaned := strings.TrimSpace(content)
	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")
		cleaned = strings.TrimSpace(cleaned)
	}

	var probe struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal([]byte(cleaned), &probe); err == nil && probe.Error != "" {
		return nil, ErrNoRecipeFound
	}

	var recipe types.ExtractedRecipe
	if err := json.Unmarshal([]byte(cleaned), &recipe); err != nil {
		return nil, fmt.Errorf("decoding extracted recipe: %w", err)
	}
	if recipe.Title == "" {
		return nil, ErrNoRecipeFound
	}
	return &recipe, nil
}
