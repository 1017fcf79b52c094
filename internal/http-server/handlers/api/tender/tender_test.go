package tender_test

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

	tenderapi "clearbid/internal/http-server/handlers/api/tender"
	"clearbid/internal/lib/hash"
	"clearbid/internal/models/tender"
	"clearbid/internal/storage/memory"
)

type stubNotary struct {
	digests [][]byte
}

func (n *stubNotary) Notarize(_ context.Context, digest []byte) (string, error) {
	n.digests = append(n.digests, digest)
	return "TX123", nil
}

func newRouter(store *memory.Storage, notary *stubNotary) *chi.Mux {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := chi.NewRouter()
	router.Post("/api/tender", tenderapi.NewPostTender(log, store, notary))
	router.Get("/api/tender/{tenderId}", tenderapi.NewGetTender(log, store))
	router.Get("/api/tenders", tenderapi.NewGetTenders(log, store))
	return router
}

func TestPostTenderAndFetch(t *testing.T) {
	store := memory.New()
	notary := &stubNotary{}
	router := newRouter(store, notary)

	body := `{"title":"Road Repair","description":"Fix the potholes","criteria":{"price":0.6,"quality":0.4},"deadline":"2025-12-01"}`
	req := httptest.NewRequest(http.MethodPost, "/api/tender", strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp tender.TenderResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.TenderId, 16)
	require.Len(t, resp.CriteriaHash, 64)
	require.Equal(t, "TX123", resp.TxId)

	wantHash, err := hash.ContentHash(map[string]float64{"price": 0.6, "quality": 0.4})
	require.NoError(t, err)
	require.Equal(t, wantHash, resp.CriteriaHash)

	// The anchored digest is the hex hash itself.
	require.Len(t, notary.digests, 1)
	require.Equal(t, []byte(resp.CriteriaHash), notary.digests[0])

	getReq := httptest.NewRequest(http.MethodGet, "/api/tender/"+resp.TenderId, nil)
	getW := httptest.NewRecorder()
	router.ServeHTTP(getW, getReq)
	require.Equal(t, http.StatusOK, getW.Code)

	var got tender.Tender
	require.NoError(t, json.Unmarshal(getW.Body.Bytes(), &got))
	require.Equal(t, "Road Repair", got.Title)
	require.Equal(t, "Fix the potholes", got.Description)
	require.Equal(t, map[string]float64{"price": 0.6, "quality": 0.4}, got.Criteria)
	require.Equal(t, "2025-12-01", got.Deadline)
	require.Equal(t, tender.StatusOpen, got.Status)
}

func TestGetTenderNotFound(t *testing.T) {
	router := newRouter(memory.New(), &stubNotary{})

	req := httptest.NewRequest(http.MethodGet, "/api/tender/ffffffffffffffff", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "Tender not found", body["detail"])
}

func TestPostTenderMissingField(t *testing.T) {
	router := newRouter(memory.New(), &stubNotary{})

	body := `{"title":"Road Repair","criteria":{"price":1.0},"deadline":"2025-12-01"}`
	req := httptest.NewRequest(http.MethodPost, "/api/tender", strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPostTenderUnknownField(t *testing.T) {
	router := newRouter(memory.New(), &stubNotary{})

	body := `{"title":"x","description":"y","criteria":{"price":1.0},"deadline":"z","extra":true}`
	req := httptest.NewRequest(http.MethodPost, "/api/tender", strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetTendersListsAll(t *testing.T) {
	store := memory.New()
	router := newRouter(store, &stubNotary{})

	require.NoError(t, store.SaveTender(context.Background(), tender.Tender{TenderId: "t1", Title: "One", Status: tender.StatusOpen}))
	require.NoError(t, store.SaveTender(context.Background(), tender.Tender{TenderId: "t2", Title: "Two", Status: tender.StatusOpen}))

	req := httptest.NewRequest(http.MethodGet, "/api/tenders", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp tender.TenderListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Tenders, 2)
}
