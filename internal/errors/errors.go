// internal/errors/errors.go
package appErrors

import "fmt"

// ErrCampaignNotFound is a sentinel error
type ErrCampaignNotFound struct {
    CampaignID int
}

func (e *ErrCampaignNotFound) Error() string {
    return fmt.Sprintf("campaign with ID %d not found", e.CampaignID)
}

// Helper constructor
func NewCampaignNotFound(id int) error {
    return &ErrCampaignNotFound{CampaignID: id}
}

type ErrPostNotFound struct {
    PostID int
}

func (e *ErrPostNotFound) Error() string {
    return fmt.Sprintf("post with ID %d not found", e.PostID)
}

func NewPostNotFound(id int) error {
    return &ErrPostNotFound{PostID: id}
}

type ErrDeliveryNotFound struct {
    DeliveryID int
}

func (e *ErrDeliveryNotFound) Error() string {
    return fmt.Sprintf("delivery with ID %d not found", e.DeliveryID)
}

func NewDeliveryNotFound(id int) error {
    return &ErrDeliveryNotFound{DeliveryID: id}
}
