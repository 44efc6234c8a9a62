package repository

import (
    "database/sql"
    "time"

    appErrors "github.com/unclebandit/socialflow-backend/internal/errors"
    "github.com/unclebandit/socialflow-backend/internal/model"
)

type PostRepositoryInterface interface {
    GetByID(id int) (*model.Post, error)
    Create(p *model.Post) error
    Update(p *model.Post) error
    GetDeliveryStats(postID int) (map[string]int, error)
}

type PostRepository struct {
    DB *sql.DB
}

func (r *PostRepository) Create(p *model.Post) error {
    now := time.Now()
    p.CreatedAt = now
    p.UpdatedAt = now
    if p.Status == "" {
        p.Status = model.StatusPending
    }

    query := `
        INSERT INTO posts (campaign_id, store_id, caption, image_url, scheduled_at, status, last_error, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id
    `
    return r.DB.QueryRow(
        query,
        p.CampaignID,
        p.StoreID,
        p.Caption,
        p.ImageURL,
        p.ScheduledAt,
        string(p.Status),
        p.LastError,
        p.CreatedAt,
        p.UpdatedAt,
    ).Scan(&p.ID)
}

// Update writes the aggregate fields (status, last_error, published_at).
// Only the status aggregator should call this.
func (r *PostRepository) Update(p *model.Post) error {
    p.UpdatedAt = time.Now()
    query := `
        UPDATE posts
        SET status=$1, last_error=$2, published_at=$3, updated_at=$4
        WHERE id=$5
    `
    _, err := r.DB.Exec(query, string(p.Status), p.LastError, p.PublishedAt, p.UpdatedAt, p.ID)
    return err
}

func (r *PostRepository) GetByID(id int) (*model.Post, error) {
    query := `
        SELECT id, campaign_id, store_id, caption, image_url, scheduled_at, status, last_error, published_at, created_at, updated_at
        FROM posts WHERE id=$1
    `
    var p model.Post
    err := r.DB.QueryRow(query, id).Scan(
        &p.ID,
        &p.CampaignID,
        &p.StoreID,
        &p.Caption,
        &p.ImageURL,
        &p.ScheduledAt,
        &p.Status,
        &p.LastError,
        &p.PublishedAt,
        &p.CreatedAt,
        &p.UpdatedAt,
    )
    if err != nil {
        if err == sql.ErrNoRows {
            return nil, appErrors.NewPostNotFound(id)
        }
        return nil, err
    }
    return &p, nil
}

// GetDeliveryStats returns a status -> count map over the post's deliveries,
// for the status endpoint.
func (r *PostRepository) GetDeliveryStats(postID int) (map[string]int, error) {
    query := `
        SELECT status, COUNT(*) FROM deliveries
        WHERE post_id = $1
        GROUP BY status
    `
    rows, err := r.DB.Query(query, postID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    stats := map[string]int{
        "pending":    0,
        "publishing": 0,
        "published":  0,
        "failed":     0,
    }
    for rows.Next() {
        var status string
        var count int
        if err := rows.Scan(&status, &count); err != nil {
            return nil, err
        }
        stats[status] = count
    }
    return stats, rows.Err()
}
