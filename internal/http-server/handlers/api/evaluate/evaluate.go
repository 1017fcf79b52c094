package evaluate

import (
	"context"
	serrors "errors"
	"log/slog"
	"net/http"

	"clearbid/internal/evaluation"
	"clearbid/internal/lib/errors"
	"clearbid/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type Evaluator interface {
	Evaluate(ctx context.Context, tenderId string) (map[string]any, error)
}

type Response struct {
	Message string         `json:"message"`
	Results map[string]any `json:"results"`
}

func NewPostEvaluate(log *slog.Logger, evaluator Evaluator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.api.evaluate.NewPostEvaluate"

		log := log.With(slog.String("op", op))

		tenderId := chi.URLParam(r, "tenderId")
		if tenderId == "" {
			render.Status(r, 400)
			render.JSON(w, r, errors.NewHttpError("The tender id is invalid"))
			return
		}

		results, err := evaluator.Evaluate(r.Context(), tenderId)
		if err != nil {
			switch {
			case serrors.Is(err, storage.ErrNotFound):
				render.Status(r, 404)
				render.JSON(w, r, errors.NewHttpError("Tender not found"))
			case serrors.Is(err, evaluation.ErrNoBids):
				render.Status(r, 400)
				render.JSON(w, r, errors.NewHttpError("No bids to evaluate"))
			case serrors.Is(err, evaluation.ErrNotConfigured):
				render.Status(r, 503)
				render.JSON(w, r, errors.NewHttpError("Evaluation model not configured"))
			default:
				log.Error("Evaluation failed", slog.Attr{Key: "error", Value: slog.StringValue(err.Error())})
				render.Status(r, 500)
				render.JSON(w, r, errors.NewHttpError(err.Error()))
			}
			return
		}

		render.JSON(w, r, Response{Message: "Evaluation complete", Results: results})
	}
}
