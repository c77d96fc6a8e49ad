package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/mail"
	"strings"

	"distrifoods/models"
	"distrifoods/repository"
)

// ContactController handles HTTP requests for contact messages
type ContactController struct {
	repo repository.ContactMessageRepositoryInterface
}

// NewContactController creates a new ContactController
func NewContactController(repo repository.ContactMessageRepositoryInterface) *ContactController {
	return &ContactController{repo: repo}
}

// CreateMessage handles POST /api/contact
func (c *ContactController) CreateMessage(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 CreateMessage: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		log.Printf("❌ CreateMessage: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.CreateContactMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ CreateMessage: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Message = strings.TrimSpace(req.Message)

	if req.Name == "" {
		http.Error(w, "name cannot be empty", http.StatusBadRequest)
		return
	}
	if req.Email == "" {
		http.Error(w, "email cannot be empty", http.StatusBadRequest)
		return
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		log.Printf("❌ CreateMessage: Invalid email: %s", req.Email)
		http.Error(w, "email is not valid", http.StatusBadRequest)
		return
	}
	if req.Message == "" {
		http.Error(w, "message cannot be empty", http.StatusBadRequest)
		return
	}

	msg := &models.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	}
	if err := c.repo.Insert(context.Background(), msg); err != nil {
		log.Printf("❌ CreateMessage: Error storing message: %v", err)
		http.Error(w, "Failed to send message. Please try again.", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(msg); err != nil {
		log.Printf("❌ CreateMessage: Error encoding response: %v", err)
	}
}
