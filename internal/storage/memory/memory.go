package memory

import (
	"context"
	"fmt"
	"sync"

	"clearbid/internal/models/bids"
	"clearbid/internal/models/tender"
	"clearbid/internal/storage"
)

// Storage keeps all records in process memory. Everything is lost on restart,
// so it only serves local runs and tests when no durable backend is configured.
type Storage struct {
	mu      sync.RWMutex
	tenders map[string]tender.Tender
	bids    map[string]bids.Bid
}

func New() *Storage {
	return &Storage{
		tenders: make(map[string]tender.Tender),
		bids:    make(map[string]bids.Bid),
	}
}

func (s *Storage) SaveTender(_ context.Context, ten tender.Tender) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tenders[ten.TenderId] = ten
	return nil
}

func (s *Storage) GetTender(_ context.Context, tenderId string) (tender.Tender, error) {
	const op = "storage.memory.GetTender"

	s.mu.RLock()
	defer s.mu.RUnlock()

	ten, ok := s.tenders[tenderId]
	if !ok {
		return tender.Tender{}, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return ten, nil
}

func (s *Storage) ListTenders(_ context.Context) ([]tender.Tender, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]tender.Tender, 0, len(s.tenders))
	for _, ten := range s.tenders {
		result = append(result, ten)
	}

	return result, nil
}

func (s *Storage) UpdateTenderStatus(_ context.Context, tenderId, status string) error {
	const op = "storage.memory.UpdateTenderStatus"

	s.mu.Lock()
	defer s.mu.Unlock()

	ten, ok := s.tenders[tenderId]
	if !ok {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	ten.Status = status
	s.tenders[tenderId] = ten
	return nil
}

func (s *Storage) SaveBid(_ context.Context, bid bids.Bid) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.bids[bid.BidId] = bid
	return nil
}

func (s *Storage) GetBid(_ context.Context, bidId string) (bids.Bid, error) {
	const op = "storage.memory.GetBid"

	s.mu.RLock()
	defer s.mu.RUnlock()

	bid, ok := s.bids[bidId]
	if !ok {
		return bids.Bid{}, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return bid, nil
}

func (s *Storage) BidsByTender(_ context.Context, tenderId string) ([]bids.Bid, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]bids.Bid, 0)
	for _, bid := range s.bids {
		if bid.TenderId == tenderId {
			result = append(result, bid)
		}
	}

	return result, nil
}

func (s *Storage) UpdateBidScore(_ context.Context, bidId string, score float64, reasoning string) error {
	const op = "storage.memory.UpdateBidScore"

	s.mu.Lock()
	defer s.mu.Unlock()

	bid, ok := s.bids[bidId]
	if !ok {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	bid.Score = &score
	bid.Reasoning = &reasoning
	s.bids[bidId] = bid
	return nil
}
