package storage

import (
	"context"
	"errors"

	"clearbid/internal/models/bids"
	"clearbid/internal/models/tender"
)

var ErrNotFound = errors.New("record not found")

// Store is the persistence contract shared by every backend. Which backend
// serves it is decided once at startup; callers never branch on it.
type Store interface {
	SaveTender(ctx context.Context, ten tender.Tender) error
	GetTender(ctx context.Context, tenderId string) (tender.Tender, error)
	ListTenders(ctx context.Context) ([]tender.Tender, error)
	UpdateTenderStatus(ctx context.Context, tenderId, status string) error

	SaveBid(ctx context.Context, bid bids.Bid) error
	GetBid(ctx context.Context, bidId string) (bids.Bid, error)
	BidsByTender(ctx context.Context, tenderId string) ([]bids.Bid, error)
	UpdateBidScore(ctx context.Context, bidId string, score float64, reasoning string) error
}
