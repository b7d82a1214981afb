package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/qamar62/st-booking/internal/application/service"
	"github.com/qamar62/st-booking/internal/domain/models"
	"go.uber.org/zap"
)

type BookingHandler struct {
	log                *zap.Logger
	svc                *service.BookingService
	bookingHorizonDays int
}

func NewBookingHandler(log *zap.Logger, svc *service.BookingService, bookingHorizonDays int) *BookingHandler {
	if log == nil {
		log = zap.NewNop()
	}
	if bookingHorizonDays <= 0 {
		bookingHorizonDays = 365
	}

	return &BookingHandler{
		log:                log,
		svc:                svc,
		bookingHorizonDays: bookingHorizonDays,
	}
}

// ListTours populates the tour selector. An upstream failure has already
// degraded to an empty list, which renders as an empty selector.
func (h *BookingHandler) ListTours(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	tours := h.svc.ListTours(r.Context())

	summaries := make([]tourSummary, 0, len(tours))
	for _, tour := range tours {
		summaries = append(summaries, toTourSummary(tour))
	}

	writeJSON(w, http.StatusOK, summaries)
}

func (h *BookingHandler) GetTour(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, ok := parseTourID(ps.ByName("id"))
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid tour id")
		return
	}

	tour, err := h.svc.GetTour(r.Context(), id)
	if err != nil {
		writeError(w, mapStatus(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, toTourSummary(tour))
}

// Quote exposes the availability and pricing resolver directly:
// GET /v1/tours/:id/quote?date=YYYY-MM-DD&service_type=Private|Sharing.
func (h *BookingHandler) Quote(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, ok := parseTourID(ps.ByName("id"))
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid tour id")
		return
	}

	date, err := time.Parse("2006-01-02", r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	serviceType, ok := models.ParseServiceType(r.URL.Query().Get("service_type"))
	if !ok {
		writeError(w, http.StatusBadRequest, "service_type must be Private or Sharing")
		return
	}

	tier, err := h.svc.CheckAvailability(r.Context(), id, date, serviceType)
	if err != nil {
		writeError(w, mapStatus(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, toTierResponse(tier))
}

func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var payload bookingPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req, err := payload.validate(h.bookingHorizonDays)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	confirmation, err := h.svc.BookTour(r.Context(), req)
	if err != nil {
		writeError(w, mapStatus(err), err.Error())
		return
	}

	h.log.Info("booking confirmed",
		zap.String("reference", confirmation.Reference),
		zap.String("tour", confirmation.TourName),
	)
	writeJSON(w, http.StatusCreated, toConfirmationResponse(confirmation))
}

func parseTourID(value string) (models.TourID, bool) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return models.TourID(id), true
}
