// Package monthlyincome реализует HTTP-обработчик отчёта о помесячном
// доходе владельца за текущий год.
package monthlyincome

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

// Handler обрабатывает запросы отчёта о помесячном доходе.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики расчёта помесячного дохода.
type Service interface {
	MonthlyIncome(ctx context.Context, username string) ([]models.MonthlyIncome, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Помесячный доход за текущий год
// @Description Возвращает суммы проведённых платежей по месяцам текущего года: всегда 12 записей, месяцы без платежей — с нулевой суммой.
// @Tags Payments
// @Produce  json
// @Success 200 {object} map[string]any "Помесячный доход"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при расчёте дохода"
// @Router /payments/monthly_income [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.monthlyincome"

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

	res, err := h.service.MonthlyIncome(r.Context(), username)
	if err != nil {
		log.Error("failed to count monthly income", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not count monthly income"))
		return
	}

	log.Info("success to count monthly income", "months", len(res))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"monthly_income": res,
	}))
}
