// Package expiring реализует HTTP-обработчик отчёта о договорах аренды,
// истекающих в ближайшие 30 дней.
package expiring

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/rental-manager/internal/http/middlewarectx"
	"github.com/magabrotheeeer/rental-manager/internal/http/response"
	"github.com/magabrotheeeer/rental-manager/internal/lib/sl"
	"github.com/magabrotheeeer/rental-manager/internal/models"
)

// Handler обрабатывает запросы отчёта об истекающих договорах.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики поиска истекающих договоров.
type Service interface {
	ExpiringSoon(ctx context.Context, username string) ([]*models.Lease, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Истекающие договоры аренды
// @Description Возвращает активные договоры текущего владельца с датой окончания в ближайшие 30 дней.
// @Tags Leases
// @Produce  json
// @Success 200 {object} map[string]any "Список истекающих договоров"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при поиске договоров"
// @Router /leases/expiring_soon [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.lease.expiring"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	username, ok := r.Context().Value(middlewarectx.User).(string)
	if !ok || username == "" {
		log.Error("username not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	res, err := h.service.ExpiringSoon(r.Context(), username)
	if err != nil {
		log.Error("failed to find expiring leases", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not find expiring leases"))
		return
	}

	log.Info("found expiring leases", "count", len(res))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"list_count": len(res),
		"leases":     res,
	}))
}
