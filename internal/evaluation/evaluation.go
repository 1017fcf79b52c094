package evaluation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"clearbid/internal/ai"
	"clearbid/internal/models/bids"
	"clearbid/internal/models/tender"
	"clearbid/internal/storage"
)

var (
	ErrNoBids        = errors.New("no bids to evaluate")
	ErrNotConfigured = errors.New("evaluation model not configured")
)

// Orchestrator drives model-based bid scoring: fetch tender and bids, build
// the prompt, one model round trip, merge the scores back into the store.
type Orchestrator struct {
	log   *slog.Logger
	store storage.Store
	model ai.Model
}

// New builds an orchestrator. A nil model means evaluation is disabled and
// every Evaluate call fails with ErrNotConfigured.
func New(log *slog.Logger, store storage.Store, model ai.Model) *Orchestrator {
	return &Orchestrator{log: log, store: store, model: model}
}

type scoreEntry struct {
	Vendor    string  `json:"vendor"`
	Score     float64 `json:"score"`
	Reasoning string  `json:"reasoning"`
}

// Evaluate scores every bid of the given tender and returns the parsed model
// reply verbatim, extra fields included. Bids whose vendor name has no
// exact match in the reply are left unscored; the tender is marked EVALUATED
// regardless of how many bids matched.
func (o *Orchestrator) Evaluate(ctx context.Context, tenderId string) (map[string]any, error) {
	const op = "evaluation.Evaluate"

	ten, err := o.store.GetTender(ctx, tenderId)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	bidList, err := o.store.BidsByTender(ctx, tenderId)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(bidList) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrNoBids)
	}

	if o.model == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrNotConfigured)
	}

	prompt, err := BuildPrompt(ten, bidList)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	o.log.Debug("requesting evaluation", slog.String("tender_id", tenderId), slog.Int("bids", len(bidList)))

	reply, err := o.model.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	payload, err := ai.ExtractJSON(reply)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var result map[string]any
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if _, ok := result["scores"]; !ok {
		return nil, fmt.Errorf("%s: model reply has no scores field", op)
	}

	var sheet struct {
		Scores []scoreEntry `json:"scores"`
	}
	if err := json.Unmarshal(payload, &sheet); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for _, bid := range bidList {
		for _, entry := range sheet.Scores {
			if entry.Vendor != bid.VendorName {
				continue
			}

			if err := o.store.UpdateBidScore(ctx, bid.BidId, entry.Score, entry.Reasoning); err != nil {
				return nil, fmt.Errorf("%s: %w", op, err)
			}
			break
		}
	}

	if err := o.store.UpdateTenderStatus(ctx, tenderId, tender.StatusEvaluated); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return result, nil
}

type bidSummary struct {
	Vendor   string  `json:"vendor"`
	Proposal string  `json:"proposal"`
	Price    float64 `json:"price"`
}

// BuildPrompt embeds the tender title, the serialized criteria weights and
// every bid into the scoring instruction sent to the model.
func BuildPrompt(ten tender.Tender, bidList []bids.Bid) (string, error) {
	const op = "evaluation.BuildPrompt"

	criteria, err := json.Marshal(ten.Criteria)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	summaries := make([]bidSummary, 0, len(bidList))
	for _, bid := range bidList {
		summaries = append(summaries, bidSummary{
			Vendor:   bid.VendorName,
			Proposal: bid.Proposal,
			Price:    bid.Price,
		})
	}

	body, err := json.MarshalIndent(summaries, "", "  ")
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	prompt := fmt.Sprintf(`Evaluate these bids for tender: %s
Criteria weights: %s

Bids:
%s

Score each bid 0-100 based on the criteria weights. Return ONLY valid JSON: {"scores": [{"vendor": "name", "score": 85, "reasoning": "..."}]}`,
		ten.Title, criteria, body)

	return prompt, nil
}
