// internal/service/publisher_service.go
package service

import (
    "context"
    "fmt"
    "log"
    "time"

    "github.com/unclebandit/socialflow-backend/internal/model"
    "github.com/unclebandit/socialflow-backend/internal/platform"
    "github.com/unclebandit/socialflow-backend/internal/queue"
    "github.com/unclebandit/socialflow-backend/internal/repository"
)

// PublisherService drives due deliveries through their lifecycle and rolls
// the outcomes up into the parent post. It holds no state between passes;
// all progress lives in the persisted delivery/post rows.
type PublisherService struct {
    DeliveryRepo repository.DeliveryRepositoryInterface
    PostRepo     repository.PostRepositoryInterface
    Adapters     *platform.Registry
    Queue        queue.Queue
}

// RunPublishingPass processes everything due at `now`: fetch due deliveries,
// group them by post, attempt each delivery, then reconcile each post once.
// Individual delivery and group failures are absorbed; only an
// infrastructure error from the due-work query comes back to the caller.
func (s *PublisherService) RunPublishingPass(ctx context.Context, now time.Time) error {
    due, err := s.DeliveryRepo.FetchDuePlatformDeliveries(now)
    if err != nil {
        log.Println("⚠️ failed to fetch due deliveries:", err)
        return err
    }
    if len(due) == 0 {
        return nil
    }

    // Group by parent post, keeping first-seen order.
    groups := map[int][]*model.Delivery{}
    order := []int{}
    for _, d := range due {
        if _, ok := groups[d.PostID]; !ok {
            order = append(order, d.PostID)
        }
        groups[d.PostID] = append(groups[d.PostID], d)
    }

    for _, postID := range order {
        // Cancellation is only honored between groups; once a delivery is
        // claimed its attempt runs to completion.
        select {
        case <-ctx.Done():
            log.Println("⚠️ publishing pass cancelled before post", postID)
            return ctx.Err()
        default:
        }

        for _, d := range groups[postID] {
            s.AttemptDelivery(ctx, d, now)
        }

        if err := s.ReconcilePostStatus(postID); err != nil {
            log.Println("⚠️ failed to reconcile post", postID, ":", err)
            continue
        }
    }

    return nil
}

// AttemptDelivery runs one delivery through the guarded state machine:
// reload, eligibility guards, claim, dispatch, terminal write. Safe to call
// repeatedly (and concurrently) for the same record; only one caller ever
// reaches the adapter.
func (s *PublisherService) AttemptDelivery(ctx context.Context, stale *model.Delivery, now time.Time) {
    // The due-work snapshot may be stale by the time we get here, so work
    // from a fresh copy.
    d, err := s.DeliveryRepo.GetByID(stale.ID)
    if err != nil {
        log.Println("⚠️ failed to reload delivery", stale.ID, ":", err)
        return
    }
    if d == nil || d.Status != model.StatusPending {
        return // already claimed, terminal, or deleted
    }

    campaign := d.Campaign
    if campaign == nil {
        log.Println("⚠️ delivery", d.ID, "came back without campaign context, skipping")
        return
    }
    if !campaign.SchedulingEnabled {
        return
    }
    if campaign.WindowStart != nil && now.Before(*campaign.WindowStart) {
        return
    }
    if campaign.WindowEnd != nil && now.After(*campaign.WindowEnd) {
        return
    }

    // Claim before dispatch. The conditional update must commit before the
    // external call starts; whoever flips pending -> publishing owns the
    // record, everyone else backs off with no side effects.
    claimed, err := s.DeliveryRepo.ClaimPending(d.ID, now)
    if err != nil {
        log.Println("⚠️ failed to claim delivery", d.ID, ":", err)
        return
    }
    if !claimed {
        return // another worker got there first
    }
    d.Status = model.StatusPublishing

    s.dispatch(ctx, d, now)

    if err := s.DeliveryRepo.Update(d); err != nil {
        log.Println("⚠️ failed to persist terminal state for delivery", d.ID, ":", err)
    }
}

// dispatch resolves the adapter and records the outcome on the delivery
// in memory. It never returns an error: every failure, including an adapter
// panic, becomes a failed terminal state so sibling deliveries keep going.
func (s *PublisherService) dispatch(ctx context.Context, d *model.Delivery, now time.Time) {
    dest := d.Destination
    post := d.Post
    if dest == nil || post == nil {
        d.Status = model.StatusFailed
        d.LastError = "delivery is missing post or destination context"
        return
    }

    adapter, ok := s.Adapters.Resolve(dest.Platform)
    if !ok {
        d.Status = model.StatusFailed
        d.LastError = "no adapter for destination type " + dest.Platform
        return
    }

    result, err := safePublish(ctx, adapter, platform.PublishRequest{
        Caption:        post.Caption,
        ImageURL:       post.ImageURL,
        AccessToken:    dest.AccessToken,
        ExternalPageID: dest.ExternalPageID,
    })
    if err != nil {
        d.Status = model.StatusFailed
        d.LastError = err.Error()
        return
    }

    d.Status = model.StatusPublished
    d.ExternalID = result.ExternalID
    d.PublishedAt = &now
    d.LastError = ""
}

// safePublish converts adapter panics into ordinary failures.
func safePublish(ctx context.Context, adapter platform.Adapter, req platform.PublishRequest) (result *platform.PublishResult, err error) {
    defer func() {
        if r := recover(); r != nil {
            result = nil
            err = fmt.Errorf("adapter panic: %v", r)
        }
    }()
    return adapter.Publish(ctx, req)
}
