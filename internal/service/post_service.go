// internal/service/post_service.go
package service

import (
    "log"
    "time"

    "github.com/unclebandit/socialflow-backend/internal/model"
    "github.com/unclebandit/socialflow-backend/internal/repository"
)

type PostService struct {
    CampaignRepo    repository.CampaignRepositoryInterface
    PostRepo        repository.PostRepositoryInterface
    DeliveryRepo    repository.DeliveryRepositoryInterface
    DestinationRepo repository.DestinationRepositoryInterface
}

// Result struct for CreatePost
type CreatePostResult struct {
    Post              *model.Post
    DeliveriesCreated int
    DeliveryIDs       []int
}

// CreatePost stores the post and fans out one pending delivery per connected
// destination of the campaign's store. Fanout is idempotent: a (post,
// destination) pair only ever gets one delivery.
func (s *PostService) CreatePost(campaignID int, caption, imageURL string, scheduledAt *time.Time) (*CreatePostResult, error) {
    campaign, err := s.CampaignRepo.GetByID(campaignID)
    if err != nil {
        return nil, err
    }

    post := &model.Post{
        CampaignID:  campaignID,
        StoreID:     campaign.StoreID,
        Caption:     caption,
        ImageURL:    imageURL,
        ScheduledAt: scheduledAt,
        Status:      model.StatusPending,
    }
    if err := s.PostRepo.Create(post); err != nil {
        return nil, err
    }

    // No preferred time means "as soon as the next pass runs".
    when := time.Now()
    if scheduledAt != nil {
        when = *scheduledAt
    }

    destinations, err := s.DestinationRepo.ListConnectedByStore(campaign.StoreID)
    if err != nil {
        return nil, err
    }

    result := &CreatePostResult{
        Post:        post,
        DeliveryIDs: []int{},
    }

    for _, dest := range destinations {
        d, err := s.DeliveryRepo.CreateForDestination(post.ID, dest.ID, when)
        if err != nil {
            log.Println("⚠️ failed to create delivery for destination", dest.ID, ":", err)
            continue
        }

        result.DeliveryIDs = append(result.DeliveryIDs, d.ID)
        result.DeliveriesCreated++
    }

    if result.DeliveriesCreated == 0 {
        log.Println("⚠️ post", post.ID, "created with no deliveries (store", campaign.StoreID, "has no connected destinations)")
    }

    return result, nil
}
