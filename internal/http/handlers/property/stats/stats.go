// Package stats реализует HTTP-обработчик отчёта о занятости объектов
// недвижимости текущего владельца.
package stats

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

// Handler обрабатывает запросы отчёта о занятости объектов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики расчёта статистики занятости.
type Service interface {
	Stats(ctx context.Context, username string) (*models.PropertyStats, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Статистика занятости объектов
// @Description Возвращает количество объектов владельца всего, занятых, свободных и долю занятости в процентах.
// @Tags Properties
// @Produce  json
// @Success 200 {object} map[string]any "Статистика занятости"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при расчёте статистики"
// @Router /properties/stats [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.property.stats"

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

	res, err := h.service.Stats(r.Context(), username)
	if err != nil {
		log.Error("failed to count property stats", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not count property stats"))
		return
	}

	log.Info("success to count property stats", slog.Int("total", res.Total))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"stats": res,
	}))
}
