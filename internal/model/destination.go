// internal/model/destination.go
package model

import "time"

// Destination is a connected social platform account (page) for a store.
// The engine only reads destinations; connecting/disconnecting them is the
// OAuth layer's job.
type Destination struct {
    ID             int       `db:"id" json:"id"`
    StoreID        int       `db:"store_id" json:"store_id"`
    Platform       string    `db:"platform" json:"platform"`
    ExternalPageID string    `db:"external_page_id" json:"external_page_id"`
    AccessToken    string    `db:"access_token" json:"-"`
    Connected      bool      `db:"connected" json:"connected"`
    CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
