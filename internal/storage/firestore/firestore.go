package firestore

import (
	"context"
	"fmt"

	fs "cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"clearbid/internal/models/bids"
	"clearbid/internal/models/tender"
	"clearbid/internal/storage"
)

const (
	tendersCollection = "tenders"
	bidsCollection    = "bids"
)

type Storage struct {
	client *fs.Client
}

// New builds the durable backend from a service-account credentials blob.
// The project id is taken from the credentials themselves.
func New(ctx context.Context, credentialsJSON []byte) (*Storage, error) {
	const op = "storage.firestore.New"

	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsJSON(credentialsJSON))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{client: client}, nil
}

func (s *Storage) Close() error {
	return s.client.Close()
}

func (s *Storage) SaveTender(ctx context.Context, ten tender.Tender) error {
	const op = "storage.firestore.SaveTender"

	_, err := s.client.Collection(tendersCollection).Doc(ten.TenderId).Set(ctx, ten)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) GetTender(ctx context.Context, tenderId string) (tender.Tender, error) {
	const op = "storage.firestore.GetTender"

	snap, err := s.client.Collection(tendersCollection).Doc(tenderId).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return tender.Tender{}, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	if err != nil {
		return tender.Tender{}, fmt.Errorf("%s: %w", op, err)
	}

	var ten tender.Tender
	if err := snap.DataTo(&ten); err != nil {
		return tender.Tender{}, fmt.Errorf("%s: %w", op, err)
	}

	return ten, nil
}

func (s *Storage) ListTenders(ctx context.Context) ([]tender.Tender, error) {
	const op = "storage.firestore.ListTenders"
	result := make([]tender.Tender, 0)

	docs, err := s.client.Collection(tendersCollection).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for _, snap := range docs {
		var ten tender.Tender
		if err := snap.DataTo(&ten); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		result = append(result, ten)
	}

	return result, nil
}

func (s *Storage) UpdateTenderStatus(ctx context.Context, tenderId, newStatus string) error {
	const op = "storage.firestore.UpdateTenderStatus"

	_, err := s.client.Collection(tendersCollection).Doc(tenderId).Update(ctx, []fs.Update{
		{Path: "status", Value: newStatus},
	})
	if status.Code(err) == codes.NotFound {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) SaveBid(ctx context.Context, bid bids.Bid) error {
	const op = "storage.firestore.SaveBid"

	_, err := s.client.Collection(bidsCollection).Doc(bid.BidId).Set(ctx, bid)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) GetBid(ctx context.Context, bidId string) (bids.Bid, error) {
	const op = "storage.firestore.GetBid"

	snap, err := s.client.Collection(bidsCollection).Doc(bidId).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return bids.Bid{}, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	if err != nil {
		return bids.Bid{}, fmt.Errorf("%s: %w", op, err)
	}

	var bid bids.Bid
	if err := snap.DataTo(&bid); err != nil {
		return bids.Bid{}, fmt.Errorf("%s: %w", op, err)
	}

	return bid, nil
}

func (s *Storage) BidsByTender(ctx context.Context, tenderId string) ([]bids.Bid, error) {
	const op = "storage.firestore.BidsByTender"
	result := make([]bids.Bid, 0)

	docs, err := s.client.Collection(bidsCollection).
		Where("tender_id", "==", tenderId).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for _, snap := range docs {
		var bid bids.Bid
		if err := snap.DataTo(&bid); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		result = append(result, bid)
	}

	return result, nil
}

func (s *Storage) UpdateBidScore(ctx context.Context, bidId string, score float64, reasoning string) error {
	const op = "storage.firestore.UpdateBidScore"

	_, err := s.client.Collection(bidsCollection).Doc(bidId).Update(ctx, []fs.Update{
		{Path: "score", Value: score},
		{Path: "reasoning", Value: reasoning},
	})
	if status.Code(err) == codes.NotFound {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
