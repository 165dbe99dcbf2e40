package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/water-subscription/internal/http/middlewarectx"
	"github.com/magabrotheeeer/water-subscription/internal/http/response"
	"github.com/magabrotheeeer/water-subscription/internal/lib/sl"
	"github.com/magabrotheeeer/water-subscription/internal/models"
)

const defaultAmount = 10

type Handler struct {
	log     *slog.Logger
	service Service
}

type Service interface {
	List(ctx context.Context, userID string, page models.CardPage) (*models.CardList, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.card.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := middlewarectx.UserUIDFromContext(r.Context())
	if !ok {
		log.Error("user_uid not found in context")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	page, err := queryInt(r, "page", 0)
	if err != nil || page < 0 {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid page"))
		return
	}
	amount, err := queryInt(r, "amount", defaultAmount)
	if err != nil || amount <= 0 {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid amount"))
		return
	}

	res, err := h.service.List(r.Context(), userUID, models.CardPage{Page: page, Amount: amount})
	if err != nil {
		log.Error("failed to list cards", sl.Err(err), sl.Code(err))
		status, resp := response.FromError(err)
		render.Status(r, status)
		render.JSON(w, r, resp)
		return
	}

	render.JSON(w, r, response.StatusOKWithData(res))
}

func queryInt(r *http.Request, key string, def int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
