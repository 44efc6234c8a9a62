package service

import (
	"log"

	"github.com/unclebandit/socialflow-backend/internal/model"
)

// RetryRepository defines the methods the retry worker needs
type RetryRepository interface {
	GetByID(id int) (*model.Delivery, error)
	ResetToPending(id int) (bool, error)
}

// RetryWorker consumes delivery retry jobs and resets failed deliveries back
// to pending so the next publishing pass picks them up. The reset is the only
// path back from a terminal state; the engine never regresses one itself.
type RetryWorker struct {
	DeliveryRepo RetryRepository
	JobChan      <-chan int
}

// Constructor
func NewRetryWorker(repo RetryRepository, jobChan <-chan int) *RetryWorker {
	return &RetryWorker{
		DeliveryRepo: repo,
		JobChan:      jobChan,
	}
}

// Start begins processing jobs
func (w *RetryWorker) Start() {
	for jobID := range w.JobChan {
		d, err := w.DeliveryRepo.GetByID(jobID)
		if err != nil {
			log.Println("Failed to get delivery:", err)
			continue
		}
		if d == nil {
			log.Println("Delivery not found for retry:", jobID)
			continue
		}
		if d.Status != model.StatusFailed {
			log.Println("Delivery", jobID, "is", d.Status, ", only failed deliveries can be retried")
			continue
		}

		reset, err := w.DeliveryRepo.ResetToPending(jobID)
		if err != nil {
			log.Println("Failed to reset delivery:", err)
			continue
		}
		if reset {
			log.Println("✅ Delivery", jobID, "reset to pending")
		}
	}
}
