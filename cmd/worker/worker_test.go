package main

import (
	"sync"
	"testing"

	"github.com/unclebandit/socialflow-backend/internal/model"
	"github.com/unclebandit/socialflow-backend/internal/service"
)

// MockRetryRepo stores deliveries in memory
type MockRetryRepo struct {
	deliveries map[int]*model.Delivery
	mu         sync.Mutex
}

func (m *MockRetryRepo) GetByID(id int) (*model.Delivery, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.deliveries[id], nil
}

func (m *MockRetryRepo) ResetToPending(id int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.deliveries[id]
	if !ok || d.Status != model.StatusFailed {
		return false, nil
	}
	d.Status = model.StatusPending
	d.LastError = ""
	return true, nil
}

func TestRetryWorkerResetsFailedDelivery(t *testing.T) {
	repo := &MockRetryRepo{
		deliveries: map[int]*model.Delivery{
			1: {ID: 1, PostID: 100, Status: model.StatusFailed, LastError: "rate limited"},
		},
	}

	jobChan := make(chan int, 1)
	jobChan <- 1
	close(jobChan)

	worker := service.NewRetryWorker(repo, jobChan)
	worker.Start() // returns once the channel is drained

	d, _ := repo.GetByID(1)
	if d.Status != model.StatusPending {
		t.Fatalf("expected pending after retry reset, got %s", d.Status)
	}
	if d.LastError != "" {
		t.Errorf("expected error cleared, got %q", d.LastError)
	}
}

func TestRetryWorkerSkipsNonFailedDeliveries(t *testing.T) {
	repo := &MockRetryRepo{
		deliveries: map[int]*model.Delivery{
			1: {ID: 1, PostID: 100, Status: model.StatusPublished, ExternalID: "ext-1"},
		},
	}

	jobChan := make(chan int, 1)
	jobChan <- 1
	close(jobChan)

	worker := service.NewRetryWorker(repo, jobChan)
	worker.Start()

	d, _ := repo.GetByID(1)
	if d.Status != model.StatusPublished {
		t.Fatalf("published delivery must never regress, got %s", d.Status)
	}
}
