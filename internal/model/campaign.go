// internal/model/campaign.go
package model

import "time"

// Campaign is the scheduling envelope for its posts. The publishing engine
// only reads it: if scheduling is disabled, or now is outside the window,
// no delivery under this campaign gets dispatched.
type Campaign struct {
    ID                int        `db:"id" json:"id"`
    StoreID           int        `db:"store_id" json:"store_id"`
    Name              string     `db:"name" json:"name"`
    SchedulingEnabled bool       `db:"scheduling_enabled" json:"scheduling_enabled"`
    WindowStart       *time.Time `db:"window_start" json:"window_start,omitempty"`
    WindowEnd         *time.Time `db:"window_end" json:"window_end,omitempty"`
    CreatedAt         time.Time  `db:"created_at" json:"created_at"`
    UpdatedAt         *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}
