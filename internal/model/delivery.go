// internal/model/delivery.go
package model

import "time"

// Delivery is one per-destination publish attempt for a post. Exactly one
// row exists per (post, destination) pair.
type Delivery struct {
    ID            int           `db:"id" json:"id"`
    PostID        int           `db:"post_id" json:"post_id"`
    DestinationID int           `db:"destination_id" json:"destination_id"`
    ScheduledAt   time.Time     `db:"scheduled_at" json:"scheduled_at"`
    Status        PublishStatus `db:"status" json:"status"`
    ExternalID    string        `db:"external_id" json:"external_id,omitempty"`
    LastError     string        `db:"last_error" json:"last_error,omitempty"`
    PublishedAt   *time.Time    `db:"published_at" json:"published_at,omitempty"`
    CreatedAt     time.Time     `db:"created_at" json:"created_at"`
    UpdatedAt     time.Time     `db:"updated_at" json:"updated_at"`

    // Navigation data, populated by the repository joins so the engine
    // never needs a second round-trip for context.
    Post        *Post        `db:"-" json:"post,omitempty"`
    Campaign    *Campaign    `db:"-" json:"campaign,omitempty"`
    Destination *Destination `db:"-" json:"destination,omitempty"`
}
