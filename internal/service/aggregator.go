// internal/service/aggregator.go
package service

import (
    "log"
    "strings"
    "time"

    "github.com/unclebandit/socialflow-backend/internal/model"
    "github.com/unclebandit/socialflow-backend/internal/queue"
)

// ReconcilePostStatus recomputes the post's aggregate status from its
// deliveries and persists it only when something actually changed. The
// aggregate is a pure function of the delivery statuses; nothing else may
// write the post's status.
func (s *PublisherService) ReconcilePostStatus(postID int) error {
    deliveries, err := s.DeliveryRepo.ListByPostID(postID)
    if err != nil {
        return err
    }
    if len(deliveries) == 0 {
        // Fanout creates deliveries together with the post, so this should
        // not happen.
        log.Println("⚠️ post", postID, "has no deliveries, nothing to reconcile")
        return nil
    }

    post, err := s.PostRepo.GetByID(postID)
    if err != nil {
        return err
    }

    status, publishedAt, lastError := aggregateStatus(deliveries)

    if post.Status == status && post.LastError == lastError && equalTime(post.PublishedAt, publishedAt) {
        return nil // no redundant write
    }

    post.Status = status
    post.LastError = lastError
    post.PublishedAt = publishedAt
    if err := s.PostRepo.Update(post); err != nil {
        return err
    }

    s.publishStatusEvent(post)
    return nil
}

// aggregateStatus applies the roll-up precedence:
//  1. everything published        -> published, with the latest published-at
//  2. any failed, none in flight  -> failed, with all failure messages
//  3. any in flight               -> publishing
//  4. mixed published/pending     -> publishing if anything published, else pending
func aggregateStatus(deliveries []*model.Delivery) (model.PublishStatus, *time.Time, string) {
    published, failed, publishing := 0, 0, 0
    var latest *time.Time
    failures := []string{}

    for _, d := range deliveries {
        switch d.Status {
        case model.StatusPublished:
            published++
            if d.PublishedAt != nil && (latest == nil || d.PublishedAt.After(*latest)) {
                latest = d.PublishedAt
            }
        case model.StatusFailed:
            failed++
            name := "unknown"
            if d.Destination != nil {
                name = d.Destination.Platform
            }
            failures = append(failures, name+": "+d.LastError)
        case model.StatusPublishing:
            publishing++
        }
    }

    switch {
    case published == len(deliveries):
        return model.StatusPublished, latest, ""
    case failed > 0 && publishing == 0:
        return model.StatusFailed, nil, strings.Join(failures, "; ")
    case publishing > 0:
        return model.StatusPublishing, nil, ""
    case published > 0:
        return model.StatusPublishing, nil, ""
    default:
        return model.StatusPending, nil, ""
    }
}

func (s *PublisherService) publishStatusEvent(post *model.Post) {
    if s.Queue == nil {
        return
    }
    err := s.Queue.Publish(queue.TopicPostStatusChanged, queue.PostStatusEvent{
        PostID: post.ID,
        Status: string(post.Status),
        Error:  post.LastError,
    })
    if err != nil {
        log.Println("⚠️ failed to publish post status event:", err)
    }
}

func equalTime(a, b *time.Time) bool {
    if a == nil || b == nil {
        return a == b
    }
    return a.Equal(*b)
}
