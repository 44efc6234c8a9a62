// internal/model/post.go
package model

import "time"

// Post is one content item under a campaign. Status, LastError and
// PublishedAt are the aggregate rolled up from its deliveries; only the
// status aggregator writes them.
type Post struct {
    ID          int           `db:"id" json:"id"`
    CampaignID  int           `db:"campaign_id" json:"campaign_id"`
    StoreID     int           `db:"store_id" json:"store_id"`
    Caption     string        `db:"caption" json:"caption"`
    ImageURL    string        `db:"image_url" json:"image_url,omitempty"`
    ScheduledAt *time.Time    `db:"scheduled_at" json:"scheduled_at,omitempty"`
    Status      PublishStatus `db:"status" json:"status"`
    LastError   string        `db:"last_error" json:"last_error,omitempty"`
    PublishedAt *time.Time    `db:"published_at" json:"published_at,omitempty"`
    CreatedAt   time.Time     `db:"created_at" json:"created_at"`
    UpdatedAt   time.Time     `db:"updated_at" json:"updated_at"`
}
