package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"distrifoods/models"
	"distrifoods/repository"
	"distrifoods/utils"
)

// DefaultGenerativeAPIBaseURL is the production generative-language endpoint
const DefaultGenerativeAPIBaseURL = "https://generativelanguage.googleapis.com"

const generativeModel = "gemini-2.0-flash"

// ErrAssistantDisabled is returned when the AI assistant is turned off or not
// configured by the administrator
var ErrAssistantDisabled = fmt.Errorf("AI assistant is not available")

// AssistantResult is the structured answer to a product search query. When
// the model answers with free text instead of the expected JSON, Type is
// "general" and Response carries the raw text.
type AssistantResult struct {
	Type        string      `json:"type"` // "product", "category", "brand", "general", "unknown"
	Found       bool        `json:"found"`
	MatchedItem interface{} `json:"matchedItem,omitempty"`
	Confidence  int         `json:"confidence,omitempty"`
	Reasoning   string      `json:"reasoning,omitempty"`
	Response    string      `json:"response,omitempty"`
}

// AssistantService answers AI-assisted product searches by sending the full
// inventory as context to a generative-language model. The feature is gated
// by the system settings row: it only works when the administrator enabled it
// and stored an API key.
type AssistantService struct {
	store        *CachedStore
	settingsRepo repository.SettingsRepositoryInterface
	settings     *DataCache // short-TTL settings cache
	client       *http.Client
	apiBaseURL   string
}

// NewAssistantService creates an AssistantService. apiBaseURL overrides the
// generative-language endpoint; pass "" for the production default.
func NewAssistantService(
	store *CachedStore,
	settingsRepo repository.SettingsRepositoryInterface,
	settingsCache *DataCache,
	apiBaseURL string,
) *AssistantService {
	if apiBaseURL == "" {
		apiBaseURL = DefaultGenerativeAPIBaseURL
	}
	return &AssistantService{
		store:        store,
		settingsRepo: settingsRepo,
		settings:     settingsCache,
		client:       &http.Client{Timeout: 30 * time.Second},
		apiBaseURL:   apiBaseURL,
	}
}

// generateContent request/response wire shapes (generative-language v1beta)
type generatePart struct {
	Text       string          `json:"text,omitempty"`
	InlineData *generativeBlob `json:"inline_data,omitempty"`
}

type generativeBlob struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generateContent struct {
	Parts []generatePart `json:"parts"`
}

type generateRequest struct {
	Contents []generateContent `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// getSettings reads the settings row through a short-lived cache
func (s *AssistantService) getSettings(ctx context.Context) (*models.SystemSettings, error) {
	var cached models.SystemSettings
	if s.settings.Read(ctx, "systemSettings", &cached) {
		return &cached, nil
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return nil, nil
	}
	s.settings.Write(ctx, "systemSettings", settings)
	return settings, nil
}

// Search sends query (and an optional image) to the model together with the
// inventory context and returns the parsed result
func (s *AssistantService) Search(ctx context.Context, query string, imageData []byte, imageMIME string) (*AssistantResult, error) {
	settings, err := s.getSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	if settings == nil || !settings.AIEnabled || settings.GeminiAPIKey == "" {
		return nil, ErrAssistantDisabled
	}

	if query == "" && len(imageData) == 0 {
		return nil, fmt.Errorf("query or image is required")
	}

	products, err := s.store.GetProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	categories, err := s.store.GetCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	brands, err := s.store.GetBrands(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load brands: %w", err)
	}

	parts := []generatePart{{Text: buildInventoryContext(query, len(imageData) > 0, products, categories, brands)}}
	if len(imageData) > 0 {
		parts = append(parts, generatePart{
			InlineData: &generativeBlob{
				MimeType: imageMIME,
				Data:     base64.StdEncoding.EncodeToString(imageData),
			},
		})
	}

	req := generateRequest{Contents: []generateContent{{Parts: parts}}}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", s.apiBaseURL, generativeModel)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-goog-api-key", settings.GeminiAPIKey)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("assistant request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read assistant response: %w", err)
	}

	var genResp generateResponse
	if err := json.Unmarshal(respBody, &genResp); err != nil {
		return nil, fmt.Errorf("failed to decode assistant response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		msg := "request failed"
		if genResp.Error != nil && genResp.Error.Message != "" {
			msg = genResp.Error.Message
		}
		return nil, fmt.Errorf("assistant API error: %s", msg)
	}

	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no response from assistant")
	}
	aiText := genResp.Candidates[0].Content.Parts[0].Text
	if aiText == "" {
		return nil, fmt.Errorf("no response from assistant")
	}

	return parseAssistantResult(aiText), nil
}

// parseAssistantResult decodes the model's fenced-JSON answer, degrading to a
// free-text general result when the payload does not parse
func parseAssistantResult(aiText string) *AssistantResult {
	cleaned := strings.TrimSpace(aiText)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var result AssistantResult
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		log.Printf("⚠️  Assistant returned unstructured text: %v", err)
		return &AssistantResult{
			Type:      "general",
			Found:     false,
			Reasoning: "AI provided unstructured response",
			Response:  aiText,
		}
	}
	return &result
}

// categoryNameFor resolves a product's category reference, which holds a
// category id in healthy data and a plain name in legacy rows
func categoryNameFor(p models.Product, categories []models.Category) string {
	for _, c := range categories {
		if c.ID == p.Category {
			return c.Name
		}
	}
	for _, c := range categories {
		if c.Name == p.Category {
			return c.Name
		}
	}
	return "Uncategorized"
}

// buildInventoryContext assembles the system prompt: the complete inventory
// plus matching instructions and the expected JSON response shape
func buildInventoryContext(query string, hasImage bool, products []models.Product, categories []models.Category, brands []models.Brand) string {
	var b strings.Builder

	b.WriteString("You are an intelligent AI assistant for a food distribution catalog. ")
	b.WriteString("You understand products conceptually and can suggest alternatives when exact matches aren't available.\n\n")
	b.WriteString("COMPLETE SYSTEM INVENTORY:\n\nPRODUCTS:\n")

	for _, p := range products {
		price := "Price not listed"
		if p.Price != nil {
			price = utils.FormatPrice(*p.Price)
		}
		bestSeller := "No"
		if p.IsBestSeller {
			bestSeller = "Yes"
		}
		desc := p.Description
		if desc == "" {
			desc = "No description available"
		}
		fmt.Fprintf(&b, "• %q\n  - Description: %s\n  - Category: %s\n  - Price: %s\n  - Best Seller: %s\n",
			p.Title, desc, categoryNameFor(p, categories), price, bestSeller)
	}

	b.WriteString("\nCATEGORIES:\n")
	for _, c := range categories {
		desc := c.Description
		if desc == "" {
			desc = "No description available"
		}
		fmt.Fprintf(&b, "• %q - %s\n", c.Name, desc)
	}

	b.WriteString("\nBRANDS:\n")
	for _, br := range brands {
		desc := br.Description
		if desc == "" {
			desc = "No description available"
		}
		fmt.Fprintf(&b, "• %q - %s\n", br.Name, desc)
	}

	b.WriteString("\nMATCHING INSTRUCTIONS:\n")
	b.WriteString("1. Look for exact or close spelling matches first.\n")
	b.WriteString("2. If no exact match, understand what the user is asking for conceptually and find products serving the same purpose.\n")
	b.WriteString("3. When nothing related exists, say so and explain what was searched for.\n\n")

	if query != "" {
		fmt.Fprintf(&b, "User Question: %s\n", query)
	}
	if hasImage {
		b.WriteString("User has also provided an image for analysis.\n")
	}

	b.WriteString("\nRespond in JSON format:\n")
	b.WriteString(`{"type": "product|category|brand|general", "found": true/false, "matchedItem": "exact matches or conceptual alternatives", "confidence": 0-100, "reasoning": "explain your search process", "response": "helpful response"}`)
	b.WriteString("\n")

	return b.String()
}
