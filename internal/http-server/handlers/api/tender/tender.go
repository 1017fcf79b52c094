package tender

import (
	"context"
	"encoding/json"
	serrors "errors"
	"log/slog"
	"net/http"
	"time"

	"clearbid/internal/lib/errors"
	"clearbid/internal/lib/hash"
	"clearbid/internal/models/tender"
	"clearbid/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type TenderSaver interface {
	SaveTender(ctx context.Context, ten tender.Tender) error
}

type TenderGetter interface {
	GetTender(ctx context.Context, tenderId string) (tender.Tender, error)
}

type TenderLister interface {
	ListTenders(ctx context.Context) ([]tender.Tender, error)
}

type TxSubmitter interface {
	Notarize(ctx context.Context, digest []byte) (string, error)
}

func NewPostTender(log *slog.Logger, tenderSaver TenderSaver, notary TxSubmitter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.api.tender.NewPostTender"

		log := log.With(slog.String("op", op))

		var req tender.TenderRequest

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

		criteriaHash, err := hash.ContentHash(req.Criteria)
		if err != nil {
			log.Error("Failed to hash criteria", slog.Attr{Key: "error", Value: slog.StringValue(err.Error())})
			render.Status(r, 500)
			render.JSON(w, r, errors.NewHttpError(err.Error()))
			return
		}

		ten := tender.Tender{
			TenderId:     hash.ShortID(req.Title),
			Title:        req.Title,
			Description:  req.Description,
			Criteria:     req.Criteria,
			Deadline:     req.Deadline,
			CriteriaHash: criteriaHash,
			CreatedAt:    time.Now().Format(time.RFC3339),
			Status:       tender.StatusOpen,
		}

		err = tenderSaver.SaveTender(r.Context(), ten)
		if err != nil {
			log.Error("Failed to save tender", slog.Attr{Key: "error", Value: slog.StringValue(err.Error())})
			render.Status(r, 500)
			render.JSON(w, r, errors.NewHttpError(err.Error()))
			return
		}

		txId, err := notary.Notarize(r.Context(), []byte(criteriaHash))
		if err != nil {
			log.Error("Failed to anchor criteria hash", slog.Attr{Key: "error", Value: slog.StringValue(err.Error())})
			render.Status(r, 500)
			render.JSON(w, r, errors.NewHttpError(err.Error()))
			return
		}

		render.JSON(w, r, tender.TenderResponse{
			TenderId:     ten.TenderId,
			TxId:         txId,
			CriteriaHash: criteriaHash,
		})
	}
}

func NewGetTender(log *slog.Logger, tenderGetter TenderGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.api.tender.NewGetTender"

		log := log.With(slog.String("op", op))

		tenderId := chi.URLParam(r, "tenderId")
		if tenderId == "" {
			render.Status(r, 400)
			render.JSON(w, r, errors.NewHttpError("The tender id is invalid"))
			return
		}

		ten, err := tenderGetter.GetTender(r.Context(), tenderId)
		if err != nil {
			switch {
			case serrors.Is(err, storage.ErrNotFound):
				render.Status(r, 404)
				render.JSON(w, r, errors.NewHttpError("Tender not found"))
			default:
				log.Error("Failed to read tender", slog.Attr{Key: "error", Value: slog.StringValue(err.Error())})
				render.Status(r, 500)
				render.JSON(w, r, errors.NewHttpError(err.Error()))
			}
			return
		}

		render.JSON(w, r, ten)
	}
}

func NewGetTenders(log *slog.Logger, tenderLister TenderLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.api.tender.NewGetTenders"

		log := log.With(slog.String("op", op))

		tenders, err := tenderLister.ListTenders(r.Context())
		if err != nil {
			log.Error("Failed to read tenders", slog.Attr{Key: "error", Value: slog.StringValue(err.Error())})
			render.Status(r, 500)
			render.JSON(w, r, errors.NewHttpError(err.Error()))
			return
		}

		render.JSON(w, r, tender.TenderListResponse{Tenders: tenders})
	}
}
