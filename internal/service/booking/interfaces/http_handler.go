// internal/service/booking/interfaces/http_handler.go
package interfaces

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"

	"staybook/internal/pkg/logger"
	"staybook/internal/service/booking/application"
	"staybook/internal/service/booking/domain"
)

const serviceName = "booking-service"

var (
	bookingsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "booking_created_total",
		Help: "Total number of bookings successfully created.",
	})
	bookingsFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "booking_failed_total",
		Help: "Total number of booking requests rejected, by reason.",
	}, []string{"reason"})
)

// BookingHandler 封装了 booking 服务的 HTTP 处理器
type BookingHandler struct {
	service *application.BookingApplicationService
}

// NewBookingHandler 创建一个新的 HTTP 处理器实例
func NewBookingHandler(service *application.BookingApplicationService) *BookingHandler {
	return &BookingHandler{service: service}
}

// RegisterRoutes 在 ServeMux 上注册所有路由
func (h *BookingHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("POST /bookings", h.createBookingHandler)
	mux.HandleFunc("GET /bookings/{id}", h.getBookingHandler)
	mux.HandleFunc("DELETE /bookings/{id}", h.cancelBookingHandler)
	mux.HandleFunc("GET /my/bookings", h.listMyBookingsHandler)
}

// createBookingRequest 是创建预订的请求体。
// 身份来自 X-User-ID 请求头，不在请求体里。
type createBookingRequest struct {
	RoomIDs      []int64 `json:"roomIds"`
	CheckInDate  string  `json:"checkInDate"`  // 2006-01-02
	CheckOutDate string  `json:"checkOutDate"` // 2006-01-02
	Remarks      string  `json:"remarks"`
	PaymentType  string  `json:"paymentType"`
}

func (h *BookingHandler) createBookingHandler(w http.ResponseWriter, r *http.Request) {
	propagator := otel.GetTextMapPropagator()
	ctx := propagator.Extract(r.Context(), propagation.HeaderCarrier(r.Header))

	tracer := otel.Tracer(serviceName)
	ctx, span := tracer.Start(ctx, "api.CreateBooking")
	defer span.End()

	userID, err := identityFromHeader(r)
	if err != nil {
		bookingsFailedTotal.WithLabelValues("unauthenticated").Inc()
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	span.SetAttributes(attribute.Int64("booking.user_id", userID))

	var body createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		bookingsFailedTotal.WithLabelValues("validation").Inc()
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	checkIn, err := time.Parse("2006-01-02", body.CheckInDate)
	if err != nil {
		bookingsFailedTotal.WithLabelValues("validation").Inc()
		writeError(w, http.StatusBadRequest, "checkInDate must be in YYYY-MM-DD format")
		return
	}
	checkOut, err := time.Parse("2006-01-02", body.CheckOutDate)
	if err != nil {
		bookingsFailedTotal.WithLabelValues("validation").Inc()
		writeError(w, http.StatusBadRequest, "checkOutDate must be in YYYY-MM-DD format")
		return
	}

	resp, err := h.service.CreateBooking(ctx, &application.CreateBookingRequest{
		UserID:      userID,
		RoomIDs:     body.RoomIDs,
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		Remarks:     body.Remarks,
		PaymentType: body.PaymentType,
	})
	if err != nil {
		bookingsFailedTotal.WithLabelValues(reasonLabel(err)).Inc()
		writeDomainError(ctx, w, err)
		return
	}

	bookingsCreatedTotal.Inc()
	writeJSON(w, http.StatusCreated, resp)
}

func (h *BookingHandler) getBookingHandler(w http.ResponseWriter, r *http.Request) {
	ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
	ctx, span := otel.Tracer(serviceName).Start(ctx, "api.GetBooking")
	defer span.End()

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "booking id must be an integer")
		return
	}

	resp, err := h.service.GetBooking(ctx, id)
	if err != nil {
		writeDomainError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *BookingHandler) cancelBookingHandler(w http.ResponseWriter, r *http.Request) {
	ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
	ctx, span := otel.Tracer(serviceName).Start(ctx, "api.CancelBooking")
	defer span.End()

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "booking id must be an integer")
		return
	}

	if err := h.service.CancelBooking(ctx, id); err != nil {
		writeDomainError(ctx, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *BookingHandler) listMyBookingsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
	ctx, span := otel.Tracer(serviceName).Start(ctx, "api.ListMyBookings")
	defer span.End()

	userID, err := identityFromHeader(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	resp, err := h.service.ListUserBookings(ctx, userID)
	if err != nil {
		writeDomainError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// identityFromHeader 从网关注入的 X-User-ID 头解析调用方身份。
func identityFromHeader(r *http.Request) (int64, error) {
	raw := r.Header.Get("X-User-ID")
	if raw == "" {
		return 0, errors.New("missing X-User-ID header")
	}
	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || userID <= 0 {
		return 0, errors.New("X-User-ID header must be a positive integer")
	}
	return userID, nil
}

// writeDomainError 把领域错误分类映射为 HTTP 状态码。
// Internal 错误只返回笼统信息，细节进日志。
func writeDomainError(ctx context.Context, w http.ResponseWriter, err error) {
	switch domain.KindOf(err) {
	case domain.KindNotFound:
		writeError(w, http.StatusNotFound, err.Error())
	case domain.KindValidation:
		writeError(w, http.StatusBadRequest, err.Error())
	case domain.KindConflict:
		writeError(w, http.StatusConflict, err.Error())
	default:
		logger.Ctx(ctx).Error().Err(err).Msg("internal error handling booking request")
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func reasonLabel(err error) string {
	switch domain.KindOf(err) {
	case domain.KindNotFound:
		return "not_found"
	case domain.KindValidation:
		return "validation"
	case domain.KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
