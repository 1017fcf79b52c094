package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	serrors "errors"
	"fmt"

	"clearbid/internal/models/bids"
	"clearbid/internal/models/tender"
	"clearbid/internal/storage"

	_ "github.com/lib/pq"
)

type Storage struct {
	db *sql.DB
}

func New(connStr string) (*Storage, error) {
	const op = "storage.postgres.New"

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	stmt, err := db.Prepare(`
	CREATE TABLE IF NOT EXISTS tenders (
		id VARCHAR(16) PRIMARY KEY,
		title VARCHAR(200) NOT NULL,
		description TEXT,
		criteria JSONB NOT NULL,
		deadline VARCHAR(50),
		criteria_hash VARCHAR(64) NOT NULL,
		created_at VARCHAR(50) NOT NULL,
		status VARCHAR(20) NOT NULL
	);
	`)

	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	_, err = stmt.Exec()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	stmt, err = db.Prepare(`
	CREATE TABLE IF NOT EXISTS bids (
		id VARCHAR(16) PRIMARY KEY,
		tender_id VARCHAR(16) NOT NULL,
		vendor_name VARCHAR(200) NOT NULL,
		proposal TEXT,
		price DOUBLE PRECISION NOT NULL,
		bid_hash VARCHAR(64) NOT NULL,
		submitted_at VARCHAR(50) NOT NULL,
		score DOUBLE PRECISION,
		reasoning TEXT
	);
	`)

	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	_, err = stmt.Exec()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{db: db}, nil
}

func (s *Storage) SaveTender(ctx context.Context, ten tender.Tender) error {
	const op = "storage.postgres.SaveTender"

	criteria, err := json.Marshal(ten.Criteria)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	stmt, err := s.db.Prepare(`
	INSERT INTO tenders(id, title, description, criteria, deadline, criteria_hash, created_at, status)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`)

	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	_, err = stmt.ExecContext(ctx,
		ten.TenderId,
		ten.Title,
		ten.Description,
		criteria,
		ten.Deadline,
		ten.CriteriaHash,
		ten.CreatedAt,
		ten.Status,
	)

	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) GetTender(ctx context.Context, tenderId string) (tender.Tender, error) {
	const op = "storage.postgres.GetTender"

	stmt, err := s.db.Prepare(`
	SELECT id, title, description, criteria, deadline, criteria_hash, created_at, status
	FROM tenders
	WHERE id=$1
	`)
	if err != nil {
		return tender.Tender{}, fmt.Errorf("%s: %w", op, err)
	}

	var ten tender.Tender
	var criteria []byte
	err = stmt.QueryRowContext(ctx, tenderId).Scan(
		&ten.TenderId, &ten.Title, &ten.Description, &criteria,
		&ten.Deadline, &ten.CriteriaHash, &ten.CreatedAt, &ten.Status,
	)
	if serrors.Is(err, sql.ErrNoRows) {
		return tender.Tender{}, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	if err != nil {
		return tender.Tender{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := json.Unmarshal(criteria, &ten.Criteria); err != nil {
		return tender.Tender{}, fmt.Errorf("%s: %w", op, err)
	}

	return ten, nil
}

func (s *Storage) ListTenders(ctx context.Context) ([]tender.Tender, error) {
	const op = "storage.postgres.ListTenders"
	result := make([]tender.Tender, 0)

	stmt, err := s.db.Prepare(`
	SELECT id, title, description, criteria, deadline, criteria_hash, created_at, status
	FROM tenders
	`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := stmt.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	for rows.Next() {
		var ten tender.Tender
		var criteria []byte

		err := rows.Scan(
			&ten.TenderId, &ten.Title, &ten.Description, &criteria,
			&ten.Deadline, &ten.CriteriaHash, &ten.CreatedAt, &ten.Status,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		if err := json.Unmarshal(criteria, &ten.Criteria); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		result = append(result, ten)
	}

	return result, nil
}

func (s *Storage) UpdateTenderStatus(ctx context.Context, tenderId, status string) error {
	const op = "storage.postgres.UpdateTenderStatus"

	stmt, err := s.db.Prepare(`
	UPDATE tenders
	SET status = $1
	WHERE id = $2
	`)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	res, err := stmt.ExecContext(ctx, status, tenderId)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

func (s *Storage) SaveBid(ctx context.Context, bid bids.Bid) error {
	const op = "storage.postgres.SaveBid"

	stmt, err := s.db.Prepare(`
	INSERT INTO bids(id, tender_id, vendor_name, proposal, price, bid_hash, submitted_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	`)

	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	_, err = stmt.ExecContext(ctx,
		bid.BidId,
		bid.TenderId,
		bid.VendorName,
		bid.Proposal,
		bid.Price,
		bid.BidHash,
		bid.SubmittedAt,
	)

	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) GetBid(ctx context.Context, bidId string) (bids.Bid, error) {
	const op = "storage.postgres.GetBid"

	stmt, err := s.db.Prepare(`
	SELECT id, tender_id, vendor_name, proposal, price, bid_hash, submitted_at, score, reasoning
	FROM bids
	WHERE id=$1
	`)
	if err != nil {
		return bids.Bid{}, fmt.Errorf("%s: %w", op, err)
	}

	bid, err := scanBid(stmt.QueryRowContext(ctx, bidId))
	if serrors.Is(err, sql.ErrNoRows) {
		return bids.Bid{}, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	if err != nil {
		return bids.Bid{}, fmt.Errorf("%s: %w", op, err)
	}

	return bid, nil
}

func (s *Storage) BidsByTender(ctx context.Context, tenderId string) ([]bids.Bid, error) {
	const op = "storage.postgres.BidsByTender"
	result := make([]bids.Bid, 0)

	stmt, err := s.db.Prepare(`
	SELECT id, tender_id, vendor_name, proposal, price, bid_hash, submitted_at, score, reasoning
	FROM bids
	WHERE tender_id=$1
	`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := stmt.QueryContext(ctx, tenderId)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	for rows.Next() {
		bid, err := scanBid(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		result = append(result, bid)
	}

	return result, nil
}

func (s *Storage) UpdateBidScore(ctx context.Context, bidId string, score float64, reasoning string) error {
	const op = "storage.postgres.UpdateBidScore"

	stmt, err := s.db.Prepare(`
	UPDATE bids
	SET score = $1, reasoning = $2
	WHERE id = $3
	`)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	res, err := stmt.ExecContext(ctx, score, reasoning, bidId)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBid(row rowScanner) (bids.Bid, error) {
	var bid bids.Bid
	var score sql.NullFloat64
	var reasoning sql.NullString

	err := row.Scan(
		&bid.BidId, &bid.TenderId, &bid.VendorName, &bid.Proposal,
		&bid.Price, &bid.BidHash, &bid.SubmittedAt, &score, &reasoning,
	)
	if err != nil {
		return bids.Bid{}, err
	}

	if score.Valid {
		bid.Score = &score.Float64
	}
	if reasoning.Valid {
		bid.Reasoning = &reasoning.String
	}

	return bid, nil
}
