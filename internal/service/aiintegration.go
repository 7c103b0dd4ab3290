package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/chacha20poly1305"
	"gorm.io/gorm"

	"github.com/TheOneTrueGod/lomithBackend/internal/models"
)

var ErrNoIntegration = errors.New("no active AI integration configured")

// knownProviders are the providers the extraction service can call.
var knownProviders = map[string]struct {
	defaultModel   string
	defaultBaseURL string
}{
	"openai":    {defaultModel: "gpt-4o-mini", defaultBaseURL: "https://api.openai.com/v1"},
	"anthropic": {defaultModel: "claude-sonnet-4-20250514", defaultBaseURL: "https://api.anthropic.com/v1"},
	"google":    {defaultModel: "gemini-2.0-flash", defaultBaseURL: "https://generativelanguage.googleapis.com/v1beta"},
}

// AIIntegrationService manages per-user AI provider credentials.
// API keys are encrypted with XChaCha20-Poly1305 before they touch
// the database; the cipher key is derived from the application secret
// so no extra key material has to be provisioned.
type AIIntegrationService struct {
	db  *gorm.DB
	key [chacha20poly1305.KeySize]byte
}

// NewAIIntegrationService derives the encryption key from the
// application secret and returns the service.
func NewAIIntegrationService(db *gorm.DB, appSecret string) *AIIntegrationService {
	return &AIIntegrationService{
		db:  db,
		key: sha256.Sum256([]byte(appSecret)),
	}
}

// EncryptAPIKey seals the key; output is base64(nonce || ciphertext).
func (s *AIIntegrationService) EncryptAPIKey(apiKey string) (string, error) {
	if apiKey == "" {
		return "", nil
	}
	aead, err := chacha20poly1305.NewX(s.key[:])
	if err != nil {
		return "", err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	sealed := aead.Seal(nonce, nonce, []byte(apiKey), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// DecryptAPIKey reverses EncryptAPIKey.
func (s *AIIntegrationService) DecryptAPIKey(encrypted string) (string, error) {
	if encrypted == "" {
		return "", nil
	}
	raw, err := base64.StdEncoding.DecodeString(encrypted)
	if err != nil {
		return "", fmt.Errorf("decoding stored API key: %w", err)
	}
	aead, err := chacha20poly1305.NewX(s.key[:])
	if err != nil {
		return "", err
	}
	if len(raw) < aead.NonceSize() {
		return "", errors.New("stored API key is truncated")
	}
	nonce, ciphertext := raw[:aead.NonceSize()], raw[aead.NonceSize():]
	plain, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("decrypting stored API key: %w", err)
	}
	return string(plain), nil
}

// DetectProvider guesses the provider from the API key format.
// Returns "" when the format is not recognizable.
func DetectProvider(apiKey string) string {
	switch {
	case strings.HasPrefix(apiKey, "sk-ant-"):
		return "anthropic"
	case strings.HasPrefix(apiKey, "sk-"):
		return "openai"
	case strings.HasPrefix(apiKey, "AIza"):
		return "google"
	}
	return ""
}

// DefaultModel returns the provider's default model name.
func DefaultModel(provider string) string {
	return knownProviders[provider].defaultModel
}

// DefaultBaseURL returns the provider's default API endpoint.
func DefaultBaseURL(provider string) string {
	return knownProviders[provider].defaultBaseURL
}

// IsKnownProvider reports whether the extraction service supports the
// provider.
func IsKnownProvider(provider string) bool {
	_, ok := knownProviders[provider]
	return ok
}

// UpsertParams are the caller-supplied fields of an integration.
// Empty optional fields fall back to provider defaults.
type UpsertParams struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
	Name     string
	IsActive bool
}

// Upsert creates or replaces the user's integration for a provider.
// Returns the stored row and whether it was newly created.
func (s *AIIntegrationService) Upsert(ctx context.Context, userID uuid.UUID, params UpsertParams) (*models.AIIntegration, bool, error) {
	encrypted, err := s.EncryptAPIKey(params.APIKey)
	if err != nil {
		return nil, false, err
	}

	model := params.Model
	if model == "" {
		model = DefaultModel(params.Provider)
	}
	baseURL := params.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL(params.Provider)
	}
	name := params.Name
	if name == "" {
		name = params.Provider
	}

	var integration models.AIIntegration
	err = s.db.WithContext(ctx).
		Where("user_id = ? AND provider = ?", userID, params.Provider).
		First(&integration).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		integration = models.AIIntegration{
			ID:              uuid.New(),
			UserID:          userID,
			Provider:        params.Provider,
			EncryptedAPIKey: encrypted,
			Model:           model,
			BaseURL:         baseURL,
			Name:            name,
			IsActive:        params.IsActive,
		}
		if err := s.db.WithContext(ctx).Create(&integration).Error; err != nil {
			return nil, false, err
		}
		return &integration, true, nil
	}
	if err != nil {
		return nil, false, err
	}

	integration.EncryptedAPIKey = encrypted
	integration.Model = model
	integration.BaseURL = baseURL
	integration.Name = name
	integration.IsActive = params.IsActive
	if err := s.db.WithContext(ctx).Save(&integration).Error; err != nil {
		return nil, false, err
	}
	return &integration, false, nil
}

// List returns all of the user's integrations, newest first.
func (s *AIIntegrationService) List(ctx context.Context, userID uuid.UUID) ([]models.AIIntegration, error) {
	var integrations []models.AIIntegration
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&integrations).Error
	return integrations, err
}

// GetByProvider returns the user's integration for a provider, or
// (nil, nil) when none exists.
func (s *AIIntegrationService) GetByProvider(ctx context.Context, userID uuid.UUID, provider string) (*models.AIIntegration, error) {
	var integration models.AIIntegration
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND provider = ?", userID, provider).
		First(&integration).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &integration, nil
}

// ActiveIntegration picks the integration used for an extraction
// call: the named provider when given, otherwise the most recently
// created active one.
func (s *AIIntegrationService) ActiveIntegration(ctx context.Context, userID uuid.UUID, provider string) (*models.AIIntegration, error) {
	if provider != "" {
		integration, err := s.GetByProvider(ctx, userID, provider)
		if err != nil {
			return nil, err
		}
		if integration == nil || !integration.IsActive {
			return nil, ErrNoIntegration
		}
		return integration, nil
	}

	var integration models.AIIntegration
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at DESC").
		First(&integration).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoIntegration
	}
	if err != nil {
		return nil, err
	}
	return &integration, nil
}

// Delete removes the user's integration for a provider and reports
// whether a row was removed.
func (s *AIIntegrationService) Delete(ctx context.Context, userID uuid.UUID, provider string) (bool, error) {
	res := s.db.WithContext(ctx).
		Where("user_id = ? AND provider = ?", userID, provider).
		Delete(&models.AIIntegration{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// MaskAPIKey renders a stored key for display without revealing it.
func MaskAPIKey(apiKey string) string {
	if len(apiKey) <= 4 {
		return "****"
	}
	return "****" + apiKey[len(apiKey)-4:]
}
