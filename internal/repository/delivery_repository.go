package repository

import (
    "database/sql"
    "time"

    "github.com/unclebandit/socialflow-backend/internal/model"
)

type DeliveryRepositoryInterface interface {
    FetchDuePlatformDeliveries(now time.Time) ([]*model.Delivery, error)
    GetByID(id int) (*model.Delivery, error)
    ClaimPending(id int, now time.Time) (bool, error)
    Update(d *model.Delivery) error
    ListByPostID(postID int) ([]*model.Delivery, error)
    ResetToPending(id int) (bool, error)
    CreateForDestination(postID, destinationID int, scheduledAt time.Time) (*model.Delivery, error)
}

type DeliveryRepository struct {
    DB *sql.DB
}

// hydratedDeliveryColumns is shared by every query that must return a
// delivery with its post, campaign and destination attached. The engine
// relies on this: no caller should ever need a second round-trip for
// campaign or destination context.
const hydratedDeliveryColumns = `
        d.id, d.post_id, d.destination_id, d.scheduled_at, d.status, d.external_id, d.last_error, d.published_at, d.created_at, d.updated_at,
        p.id, p.campaign_id, p.store_id, p.caption, p.image_url, p.scheduled_at, p.status, p.last_error, p.published_at, p.created_at, p.updated_at,
        c.id, c.store_id, c.name, c.scheduling_enabled, c.window_start, c.window_end, c.created_at, c.updated_at,
        dest.id, dest.store_id, dest.platform, dest.external_page_id, dest.access_token, dest.connected, dest.created_at`

const hydratedDeliveryJoins = `
        FROM deliveries d
        JOIN posts p ON p.id = d.post_id
        JOIN campaigns c ON c.id = p.campaign_id
        JOIN destinations dest ON dest.id = d.destination_id`

type rowScanner interface {
    Scan(dest ...interface{}) error
}

func scanHydratedDelivery(row rowScanner) (*model.Delivery, error) {
    var d model.Delivery
    var p model.Post
    var c model.Campaign
    var dst model.Destination

    err := row.Scan(
        &d.ID, &d.PostID, &d.DestinationID, &d.ScheduledAt, &d.Status, &d.ExternalID, &d.LastError, &d.PublishedAt, &d.CreatedAt, &d.UpdatedAt,
        &p.ID, &p.CampaignID, &p.StoreID, &p.Caption, &p.ImageURL, &p.ScheduledAt, &p.Status, &p.LastError, &p.PublishedAt, &p.CreatedAt, &p.UpdatedAt,
        &c.ID, &c.StoreID, &c.Name, &c.SchedulingEnabled, &c.WindowStart, &c.WindowEnd, &c.CreatedAt, &c.UpdatedAt,
        &dst.ID, &dst.StoreID, &dst.Platform, &dst.ExternalPageID, &dst.AccessToken, &dst.Connected, &dst.CreatedAt,
    )
    if err != nil {
        return nil, err
    }

    d.Post = &p
    d.Campaign = &c
    d.Destination = &dst
    return &d, nil
}

// FetchDuePlatformDeliveries returns every delivery scheduled at or before
// `now` that is still pending, fully hydrated. No side effects.
func (r *DeliveryRepository) FetchDuePlatformDeliveries(now time.Time) ([]*model.Delivery, error) {
    query := `SELECT` + hydratedDeliveryColumns + hydratedDeliveryJoins + `
        WHERE d.scheduled_at <= $1 AND d.status = 'pending'
        ORDER BY d.post_id, d.scheduled_at
    `
    rows, err := r.DB.Query(query, now)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    deliveries := []*model.Delivery{}
    for rows.Next() {
        d, err := scanHydratedDelivery(rows)
        if err != nil {
            return nil, err
        }
        deliveries = append(deliveries, d)
    }
    return deliveries, rows.Err()
}

// GetByID reloads one delivery with full context. Returns nil when the row
// is gone (the caller treats that as "skip").
func (r *DeliveryRepository) GetByID(id int) (*model.Delivery, error) {
    query := `SELECT` + hydratedDeliveryColumns + hydratedDeliveryJoins + `
        WHERE d.id = $1
    `
    d, err := scanHydratedDelivery(r.DB.QueryRow(query, id))
    if err != nil {
        if err == sql.ErrNoRows {
            return nil, nil
        }
        return nil, err
    }
    return d, nil
}

// ClaimPending flips the delivery to publishing, but only if it is still
// pending. The rows-affected check is the whole concurrency story: when two
// workers race on the same record, exactly one sees a row update here and
// the loser backs off without side effects.
func (r *DeliveryRepository) ClaimPending(id int, now time.Time) (bool, error) {
    query := `
        UPDATE deliveries
        SET status='publishing', updated_at=$1
        WHERE id=$2 AND status='pending'
    `
    res, err := r.DB.Exec(query, now, id)
    if err != nil {
        return false, err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return false, err
    }
    return n == 1, nil
}

// Update persists the terminal outcome of an attempt (status, external id,
// error, published timestamp).
func (r *DeliveryRepository) Update(d *model.Delivery) error {
    d.UpdatedAt = time.Now()
    query := `
        UPDATE deliveries
        SET status=$1, external_id=$2, last_error=$3, published_at=$4, updated_at=$5
        WHERE id=$6
    `
    _, err := r.DB.Exec(query, string(d.Status), d.ExternalID, d.LastError, d.PublishedAt, d.UpdatedAt, d.ID)
    return err
}

// ListByPostID returns all deliveries for one post with their destination
// attached (the aggregator needs the platform name for error messages).
func (r *DeliveryRepository) ListByPostID(postID int) ([]*model.Delivery, error) {
    query := `
        SELECT d.id, d.post_id, d.destination_id, d.scheduled_at, d.status, d.external_id, d.last_error, d.published_at, d.created_at, d.updated_at,
               dest.id, dest.store_id, dest.platform, dest.external_page_id, dest.access_token, dest.connected, dest.created_at
        FROM deliveries d
        JOIN destinations dest ON dest.id = d.destination_id
        WHERE d.post_id = $1
        ORDER BY d.id
    `
    rows, err := r.DB.Query(query, postID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    deliveries := []*model.Delivery{}
    for rows.Next() {
        var d model.Delivery
        var dst model.Destination
        err := rows.Scan(
            &d.ID, &d.PostID, &d.DestinationID, &d.ScheduledAt, &d.Status, &d.ExternalID, &d.LastError, &d.PublishedAt, &d.CreatedAt, &d.UpdatedAt,
            &dst.ID, &dst.StoreID, &dst.Platform, &dst.ExternalPageID, &dst.AccessToken, &dst.Connected, &dst.CreatedAt,
        )
        if err != nil {
            return nil, err
        }
        d.Destination = &dst
        deliveries = append(deliveries, &d)
    }
    return deliveries, rows.Err()
}

// ResetToPending is the explicit external retry: a failed delivery goes back
// to pending so the next publishing pass picks it up. The engine itself
// never calls this.
func (r *DeliveryRepository) ResetToPending(id int) (bool, error) {
    query := `
        UPDATE deliveries
        SET status='pending', last_error='', updated_at=$1
        WHERE id=$2 AND status='failed'
    `
    res, err := r.DB.Exec(query, time.Now(), id)
    if err != nil {
        return false, err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return false, err
    }
    return n == 1, nil
}

// CreateForDestination inserts the pending delivery for a (post, destination)
// pair, or returns the existing one. Exactly one delivery may exist per pair.
func (r *DeliveryRepository) CreateForDestination(postID, destinationID int, scheduledAt time.Time) (*model.Delivery, error) {
    existing := `
        SELECT id, post_id, destination_id, scheduled_at, status, external_id, last_error, published_at, created_at, updated_at
        FROM deliveries
        WHERE post_id = $1 AND destination_id = $2
    `
    var d model.Delivery
    err := r.DB.QueryRow(existing, postID, destinationID).Scan(
        &d.ID, &d.PostID, &d.DestinationID, &d.ScheduledAt, &d.Status, &d.ExternalID, &d.LastError, &d.PublishedAt, &d.CreatedAt, &d.UpdatedAt,
    )
    if err == nil {
        return &d, nil
    }
    if err != sql.ErrNoRows {
        return nil, err
    }

    now := time.Now()
    d = model.Delivery{
        PostID:        postID,
        DestinationID: destinationID,
        ScheduledAt:   scheduledAt,
        Status:        model.StatusPending,
        CreatedAt:     now,
        UpdatedAt:     now,
    }
    insert := `
        INSERT INTO deliveries (post_id, destination_id, scheduled_at, status, external_id, last_error, created_at, updated_at)
        VALUES ($1, $2, $3, $4, '', '', $5, $6)
        RETURNING id
    `
    err = r.DB.QueryRow(insert, d.PostID, d.DestinationID, d.ScheduledAt, string(d.Status), d.CreatedAt, d.UpdatedAt).Scan(&d.ID)
    if err != nil {
        return nil, err
    }
    return &d, nil
}
