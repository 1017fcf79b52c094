package root

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
)

type Response struct {
	Message string `json:"message"`
	AppId   uint64 `json:"app_id"`
}

func New(log *slog.Logger, appId uint64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.api.root.New"

		log := log.With(slog.String("op", op))
		log.Info("root request")

		render.JSON(w, r, Response{Message: "ClearBid API", AppId: appId})
	}
}
