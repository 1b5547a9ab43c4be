package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/Chifaaan/kdmpxkfa/internal/model"
	"github.com/Chifaaan/kdmpxkfa/internal/repository"
)

// ExpiryScheduler expires orders still awaiting gateway confirmation after a
// fixed window. The fired timer re-checks the order's current status through
// a compare-and-set update, so an order that got paid, cancelled or settled
// in the meantime is left untouched.
type ExpiryScheduler struct {
	orders repository.OrderRepository
	window time.Duration

	mu     sync.Mutex
	timers map[uint]*time.Timer
}

func NewExpiryScheduler(orders repository.OrderRepository, window time.Duration) *ExpiryScheduler {
	return &ExpiryScheduler{
		orders: orders,
		window: window,
		timers: make(map[uint]*time.Timer),
	}
}

// Arm schedules the expiry check for an order that just entered pending.
// Re-arming resets the running timer.
func (s *ExpiryScheduler) Arm(orderID uint) {
	s.armAfter(orderID, s.window)
}

// ArmRemaining schedules against the time the order entered pending, so a
// restart does not grant still-pending orders a fresh window. A deadline
// already in the past runs the check right away.
func (s *ExpiryScheduler) ArmRemaining(orderID uint, pendingSince time.Time) {
	remaining := s.window - time.Since(pendingSince)
	if remaining < 0 {
		remaining = 0
	}
	s.armAfter(orderID, remaining)
}

func (s *ExpiryScheduler) armAfter(orderID uint, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.timers[orderID]; ok {
		t.Stop()
	}
	s.timers[orderID] = time.AfterFunc(d, func() {
		s.expire(orderID)
	})
}

// Cancel drops a pending timer. Optional: an uncancelled timer is harmless
// because expire re-checks the status before writing.
func (s *ExpiryScheduler) Cancel(orderID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.timers[orderID]; ok {
		t.Stop()
		delete(s.timers, orderID)
	}
}

// Stop halts all timers, for shutdown.
func (s *ExpiryScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
}

func (s *ExpiryScheduler) expire(orderID uint) {
	s.mu.Lock()
	delete(s.timers, orderID)
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// only a still-pending order expires; the WHERE clause is the fresh
	// re-read, a snapshot taken at scheduling time is never trusted
	moved, err := s.orders.UpdateStatus(ctx, orderID, []model.OrderStatus{model.StatusPending}, model.StatusExpired)
	if err != nil {
		log.Printf("[expiry] order %d: expiry check failed: %v", orderID, err)
		return
	}
	if moved {
		log.Printf("[expiry] order %d marked as expired", orderID)
	} else {
		log.Printf("[expiry] order %d no longer pending, expiry skipped", orderID)
	}
}
