package bids

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"clearbid/internal/lib/errors"
	"clearbid/internal/lib/hash"
	"clearbid/internal/models/bids"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type BidSaver interface {
	SaveBid(ctx context.Context, bid bids.Bid) error
}

type BidsGetter interface {
	BidsByTender(ctx context.Context, tenderId string) ([]bids.Bid, error)
}

type TxSubmitter interface {
	Notarize(ctx context.Context, digest []byte) (string, error)
}

func NewPostBid(log *slog.Logger, bidSaver BidSaver, notary TxSubmitter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.api.bids.NewPostBid"

		log := log.With(slog.String("op", op))

		var req bids.BidRequest

		decoder := json.NewDecoder(r.Body)
		decoder.DisallowUnknownFields()

		err := decoder.Decode(&req)
		if err != nil {
			log.Error("Failed to decode request body", slog.Attr{Key: "error", Value: slog.StringValue(err.Error())})
			render.Status(r, 400)
			render.JSON(w, r, errors.NewHttpError(err.Error()))
			return
		}

		err = validate.Struct(req)
		if err != nil {
			render.Status(r, 400)
			render.JSON(w, r, errors.NewHttpError("One of the fields is empty"))
			return
		}

		// The referenced tender is not checked for existence here, matching
		// the wire behavior the frontend already relies on.
		bidHash, err := hash.ContentHash(bids.BidContent{Proposal: req.Proposal, Price: req.Price})
		if err != nil {
			log.Error("Failed to hash bid content", slog.Attr{Key: "error", Value: slog.StringValue(err.Error())})
			render.Status(r, 500)
			render.JSON(w, r, errors.NewHttpError(err.Error()))
			return
		}

		bid := bids.Bid{
			BidId:       hash.ShortID(req.TenderId, req.VendorName),
			TenderId:    req.TenderId,
			VendorName:  req.VendorName,
			Proposal:    req.Proposal,
			Price:       req.Price,
			BidHash:     bidHash,
			SubmittedAt: time.Now().Format(time.RFC3339),
		}

		err = bidSaver.SaveBid(r.Context(), bid)
		if err != nil {
			log.Error("Failed to save bid", slog.Attr{Key: "error", Value: slog.StringValue(err.Error())})
			render.Status(r, 500)
			render.JSON(w, r, errors.NewHttpError(err.Error()))
			return
		}

		txId, err := notary.Notarize(r.Context(), []byte(bidHash))
		if err != nil {
			log.Error("Failed to anchor bid hash", slog.Attr{Key: "error", Value: slog.StringValue(err.Error())})
			render.Status(r, 500)
			render.JSON(w, r, errors.NewHttpError(err.Error()))
			return
		}

		render.JSON(w, r, bids.BidResponse{
			BidId:   bid.BidId,
			TxId:    txId,
			BidHash: bidHash,
		})
	}
}

func NewGetResults(log *slog.Logger, bidsGetter BidsGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.api.bids.NewGetResults"

		log := log.With(slog.String("op", op))

		tenderId := chi.URLParam(r, "tenderId")
		if tenderId == "" {
			render.Status(r, 400)
			render.JSON(w, r, errors.NewHttpError("The tender id is invalid"))
			return
		}

		bidList, err := bidsGetter.BidsByTender(r.Context(), tenderId)
		if err != nil {
			log.Error("Failed to read bids", slog.Attr{Key: "error", Value: slog.StringValue(err.Error())})
			render.Status(r, 500)
			render.JSON(w, r, errors.NewHttpError(err.Error()))
			return
		}

		ranked := make([]bids.Bid, 0, len(bidList))
		for _, bid := range bidList {
			if bid.Score != nil {
				ranked = append(ranked, bid)
			}
		}
		sort.SliceStable(ranked, func(i, j int) bool {
			return *ranked[i].Score > *ranked[j].Score
		})

		render.JSON(w, r, bids.ResultsResponse{TenderId: tenderId, RankedBids: ranked})
	}
}
