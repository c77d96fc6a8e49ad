package controller

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"distrifoods/service"
)

// maxAssistantImageBytes caps uploaded search images at 10MB
const maxAssistantImageBytes = 10 * 1024 * 1024

// AssistantController handles HTTP requests for the AI product search
type AssistantController struct {
	assistant *service.AssistantService
}

// NewAssistantController creates a new AssistantController
func NewAssistantController(assistant *service.AssistantService) *AssistantController {
	return &AssistantController{assistant: assistant}
}

// assistantSearchRequest is the request body for an assistant search
type assistantSearchRequest struct {
	Query         string `json:"query"`
	ImageBase64   string `json:"imageBase64,omitempty"`
	ImageMimeType string `json:"imageMimeType,omitempty"`
}

// Search handles POST /api/assistant/search
func (c *AssistantController) Search(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 AssistantSearch: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req assistantSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ AssistantSearch: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	req.Query = strings.TrimSpace(req.Query)

	var imageData []byte
	if req.ImageBase64 != "" {
		var err error
		imageData, err = base64.StdEncoding.DecodeString(req.ImageBase64)
		if err != nil {
			http.Error(w, "imageBase64 is not valid base64", http.StatusBadRequest)
			return
		}
		if len(imageData) > maxAssistantImageBytes {
			http.Error(w, "image must be smaller than 10MB", http.StatusBadRequest)
			return
		}
	}

	if req.Query == "" && len(imageData) == 0 {
		http.Error(w, "query or image is required", http.StatusBadRequest)
		return
	}

	result, err := c.assistant.Search(context.Background(), req.Query, imageData, req.ImageMimeType)
	if err != nil {
		if errors.Is(err, service.ErrAssistantDisabled) {
			http.Error(w, "AI features are currently not configured by the administrator", http.StatusServiceUnavailable)
			return
		}
		log.Printf("❌ AssistantSearch: Search failed: %v", err)
		http.Error(w, "Unable to search products. Please try again.", http.StatusBadGateway)
		return
	}

	writeJSON(w, result)
}
