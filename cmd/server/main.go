// cmd/server/main.go
package main

import (
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/unclebandit/socialflow-backend/internal/controller"
	"github.com/unclebandit/socialflow-backend/internal/db"
	"github.com/unclebandit/socialflow-backend/internal/handler"
	"github.com/unclebandit/socialflow-backend/internal/platform"
	"github.com/unclebandit/socialflow-backend/internal/queue"
	"github.com/unclebandit/socialflow-backend/internal/repository"
	"github.com/unclebandit/socialflow-backend/internal/service"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}

	// Init DB
	db.Init()

	q := queue.NewInMemoryQueue()
	queue.StartPostStatusSubscriber(q)

	campaignRepo := &repository.CampaignRepository{DB: db.DB}
	postRepo := &repository.PostRepository{DB: db.DB}
	deliveryRepo := &repository.DeliveryRepository{DB: db.DB}
	destinationRepo := &repository.DestinationRepository{DB: db.DB}

	adapters := platform.NewRegistry()
	if bridge := os.Getenv("PLATFORM_BRIDGE_URL"); bridge != "" {
		adapters.Register("facebook", platform.NewWebhookAdapter(bridge+"/facebook"))
		adapters.Register("instagram", platform.NewWebhookAdapter(bridge+"/instagram"))
	} else {
		adapters.Register("facebook", &platform.ConsoleAdapter{Platform: "facebook"})
		adapters.Register("instagram", &platform.ConsoleAdapter{Platform: "instagram"})
	}

	publisher := &service.PublisherService{
		DeliveryRepo: deliveryRepo,
		PostRepo:     postRepo,
		Adapters:     adapters,
		Queue:        q,
	}

	postService := &service.PostService{
		CampaignRepo:    campaignRepo,
		PostRepo:        postRepo,
		DeliveryRepo:    deliveryRepo,
		DestinationRepo: destinationRepo,
	}

	publishController := &controller.PublishController{
		Publisher:    publisher,
		DeliveryRepo: deliveryRepo,
	}

	postHandler := &handler.PostHandler{
		Repo:         postRepo,
		Service:      postService,
		DeliveryRepo: deliveryRepo,
	}

	r := chi.NewRouter()

	// Post + publishing routes
	r.Post("/posts", postHandler.CreatePostHandler)
	r.Get("/posts/{id}", postHandler.GetPostHandlerWithDeliveries)
	r.Post("/publish/run", publishController.RunPublishingPass)
	r.Post("/deliveries/{id}/retry", publishController.RetryDelivery)

	log.Println("🚀 Server running on :8080")
	log.Fatal(http.ListenAndServe(":8080", r))
}
