package bids_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	bidsapi "clearbid/internal/http-server/handlers/api/bids"
	"clearbid/internal/lib/hash"
	"clearbid/internal/models/bids"
	"clearbid/internal/storage/memory"
)

type stubNotary struct {
	digests [][]byte
}

func (n *stubNotary) Notarize(_ context.Context, digest []byte) (string, error) {
	n.digests = append(n.digests, digest)
	return "TX456", nil
}

func newRouter(store *memory.Storage, notary *stubNotary) *chi.Mux {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := chi.NewRouter()
	router.Post("/api/bid", bidsapi.NewPostBid(log, store, notary))
	router.Get("/api/results/{tenderId}", bidsapi.NewGetResults(log, store))
	return router
}

func TestPostBid(t *testing.T) {
	store := memory.New()
	notary := &stubNotary{}
	router := newRouter(store, notary)

	body := `{"tender_id":"a1b2c3d4e5f60718","vendor_name":"Acme","proposal":"We fix roads","price":1000}`
	req := httptest.NewRequest(http.MethodPost, "/api/bid", strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp bids.BidResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.BidId, 16)
	require.Len(t, resp.BidHash, 64)
	require.Equal(t, "TX456", resp.TxId)

	wantHash, err := hash.ContentHash(bids.BidContent{Proposal: "We fix roads", Price: 1000})
	require.NoError(t, err)
	require.Equal(t, wantHash, resp.BidHash)

	saved, err := store.GetBid(context.Background(), resp.BidId)
	require.NoError(t, err)
	require.Equal(t, "Acme", saved.VendorName)
	require.Nil(t, saved.Score)
}

// A bid against a tender id that was never created still succeeds: there is
// no referential check on submission.
func TestPostBidForUnknownTenderSucceeds(t *testing.T) {
	router := newRouter(memory.New(), &stubNotary{})

	body := `{"tender_id":"ffffffffffffffff","vendor_name":"Acme","proposal":"x","price":1}`
	req := httptest.NewRequest(http.MethodPost, "/api/bid", strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestPostBidMissingField(t *testing.T) {
	router := newRouter(memory.New(), &stubNotary{})

	body := `{"tender_id":"t1","proposal":"x","price":1}`
	req := httptest.NewRequest(http.MethodPost, "/api/bid", strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetResultsRanksScoredBidsOnly(t *testing.T) {
	store := memory.New()
	router := newRouter(store, &stubNotary{})
	ctx := context.Background()

	score70, score90 := 70.0, 90.0
	reasoning := "r"
	require.NoError(t, store.SaveBid(ctx, bids.Bid{BidId: "b1", TenderId: "t1", VendorName: "Acme", Score: &score70, Reasoning: &reasoning}))
	require.NoError(t, store.SaveBid(ctx, bids.Bid{BidId: "b2", TenderId: "t1", VendorName: "Globex"}))
	require.NoError(t, store.SaveBid(ctx, bids.Bid{BidId: "b3", TenderId: "t1", VendorName: "Initech", Score: &score90, Reasoning: &reasoning}))

	req := httptest.NewRequest(http.MethodGet, "/api/results/t1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp bids.ResultsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "t1", resp.TenderId)
	require.Len(t, resp.RankedBids, 2)
	require.Equal(t, "Initech", resp.RankedBids[0].VendorName)
	require.Equal(t, "Acme", resp.RankedBids[1].VendorName)

	// The unscored bid is excluded from the ranking but still stored.
	saved, err := store.GetBid(ctx, "b2")
	require.NoError(t, err)
	require.Equal(t, "Globex", saved.VendorName)
}

func TestGetResultsEmpty(t *testing.T) {
	router := newRouter(memory.New(), &stubNotary{})

	req := httptest.NewRequest(http.MethodGet, "/api/results/t1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp bids.ResultsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Empty(t, resp.RankedBids)
}
