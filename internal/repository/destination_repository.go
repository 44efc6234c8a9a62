package repository

import (
    "database/sql"

    "github.com/unclebandit/socialflow-backend/internal/model"
)

type DestinationRepositoryInterface interface {
    ListConnectedByStore(storeID int) ([]*model.Destination, error)
}

type DestinationRepository struct {
    DB *sql.DB
}

// ListConnectedByStore returns the store's currently connected platform
// accounts. Post fanout creates one delivery per destination returned here.
func (r *DestinationRepository) ListConnectedByStore(storeID int) ([]*model.Destination, error) {
    query := `
        SELECT id, store_id, platform, external_page_id, access_token, connected, created_at
        FROM destinations
        WHERE store_id = $1 AND connected = TRUE
        ORDER BY id
    `
    rows, err := r.DB.Query(query, storeID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    destinations := []*model.Destination{}
    for rows.Next() {
        d := &model.Destination{}
        if err := rows.Scan(&d.ID, &d.StoreID, &d.Platform, &d.ExternalPageID, &d.AccessToken, &d.Connected, &d.CreatedAt); err != nil {
            return nil, err
        }
        destinations = append(destinations, d)
    }
    return destinations, rows.Err()
}
