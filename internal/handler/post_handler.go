// internal/handler/post_handler.go
package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	appErrors "github.com/unclebandit/socialflow-backend/internal/errors"
	"github.com/unclebandit/socialflow-backend/internal/repository"
	"github.com/unclebandit/socialflow-backend/internal/service"
)

// PostHandler holds the dependencies for post-related HTTP handlers
type PostHandler struct {
	Repo         *repository.PostRepository
	Service      *service.PostService
	DeliveryRepo repository.DeliveryRepositoryInterface
}

// CreatePostHandler creates a post and fans out its deliveries
func (h *PostHandler) CreatePostHandler(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		CampaignID  int        `json:"campaign_id"`
		Caption     string     `json:"caption"`
		ImageURL    string     `json:"image_url"`
		ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if payload.Caption == "" {
		http.Error(w, "caption is required", http.StatusBadRequest)
		return
	}

	result, err := h.Service.CreatePost(payload.CampaignID, payload.Caption, payload.ImageURL, payload.ScheduledAt)
	if err != nil {
		var notFound *appErrors.ErrCampaignNotFound
		if errors.As(err, &notFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, "failed to create post: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"post":               result.Post,
		"deliveries_created": result.DeliveriesCreated,
		"delivery_ids":       result.DeliveryIDs,
	})
}

// GetPostHandlerWithDeliveries returns a post with its per-destination
// delivery breakdown and status counts
func (h *PostHandler) GetPostHandlerWithDeliveries(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "invalid post id", http.StatusBadRequest)
		return
	}

	log.Println("📥 Handler called for post ID:", id)

	post, err := h.Repo.GetByID(id)
	if err != nil {
		var notFound *appErrors.ErrPostNotFound
		if errors.As(err, &notFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		log.Println("❌ Error fetching post:", err)
		http.Error(w, "failed to fetch post: "+err.Error(), http.StatusInternalServerError)
		return
	}

	deliveries, err := h.DeliveryRepo.ListByPostID(id)
	if err != nil {
		http.Error(w, "failed to fetch deliveries: "+err.Error(), http.StatusInternalServerError)
		return
	}

	stats, err := h.Repo.GetDeliveryStats(id)
	if err != nil {
		http.Error(w, "failed to fetch stats: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"post":       post,
		"deliveries": deliveries,
		"stats":      stats,
	})
}
