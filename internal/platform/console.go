package platform

import (
	"context"
	"log"

	"github.com/google/uuid"
)

// ConsoleAdapter pretends to publish and just logs the request. Used in local
// environments where no real platform credentials exist.
type ConsoleAdapter struct {
	Platform string
}

func (a *ConsoleAdapter) Publish(ctx context.Context, req PublishRequest) (*PublishResult, error) {
	log.Printf("📤 [%s] publishing to page %s: %q", a.Platform, req.ExternalPageID, req.Caption)
	return &PublishResult{ExternalID: uuid.NewString()}, nil
}
