package repository

import (
    "database/sql"
    "time"

    appErrors "github.com/unclebandit/socialflow-backend/internal/errors"
    "github.com/unclebandit/socialflow-backend/internal/model"
)

type CampaignRepositoryInterface interface {
    GetByID(id int) (*model.Campaign, error)
    Create(c *model.Campaign) error
}

type CampaignRepository struct {
    DB *sql.DB
}

// Campaign rows are read-only to the publishing engine; Create exists for
// the seeder and tests. Editing campaigns belongs to the campaign-management
// surface.

func (r *CampaignRepository) Create(c *model.Campaign) error {
    c.CreatedAt = time.Now()
    query := `
        INSERT INTO campaigns (store_id, name, scheduling_enabled, window_start, window_end, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id
    `
    return r.DB.QueryRow(query, c.StoreID, c.Name, c.SchedulingEnabled, c.WindowStart, c.WindowEnd, c.CreatedAt).Scan(&c.ID)
}

func (r *CampaignRepository) GetByID(id int) (*model.Campaign, error) {
    query := `
        SELECT id, store_id, name, scheduling_enabled, window_start, window_end, created_at, updated_at
        FROM campaigns WHERE id=$1
    `
    var c model.Campaign
    err := r.DB.QueryRow(query, id).Scan(&c.ID, &c.StoreID, &c.Name, &c.SchedulingEnabled, &c.WindowStart, &c.WindowEnd, &c.CreatedAt, &c.UpdatedAt)
    if err != nil {
        if err == sql.ErrNoRows {
            return nil, appErrors.NewCampaignNotFound(id)
        }
        return nil, err
    }
    return &c, nil
}
