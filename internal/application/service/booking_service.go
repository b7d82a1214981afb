package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	derr "github.com/qamar62/st-booking/internal/domain/errors"
	"github.com/qamar62/st-booking/internal/domain/models"
	"github.com/qamar62/st-booking/internal/domain/ports"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// BookingService resolves availability and pricing for tours. Every public
// method performs exactly one upstream fetch and reuses that snapshot for all
// lookups within the call; there is deliberately no cache across calls.
type BookingService struct {
	log   *zap.Logger
	tours ports.TourSource
}

func NewBookingService(log *zap.Logger, tours ports.TourSource) *BookingService {
	if log == nil {
		log = zap.NewNop()
	}

	return &BookingService{
		log:   log,
		tours: tours,
	}
}

// ListTours returns the current tour list for selector population. Upstream
// failures are reported at their origin and surface here as an empty list.
func (s *BookingService) ListTours(ctx context.Context) []models.Tour {
	const op = "service.ListTours"
	tracer := otel.Tracer("booking-api/service")
	ctx, span := tracer.Start(ctx, op)
	defer span.End()

	tours := s.tours.ListTours(ctx)
	span.SetAttributes(attribute.Int("booking.tours_count", len(tours)))
	s.log.Info("tour list fetched", zap.String("op", op), zap.Int("tours_count", len(tours)))
	return tours
}

// GetTour re-fetches the list and returns the first tour with a matching id.
func (s *BookingService) GetTour(ctx context.Context, id models.TourID) (models.Tour, error) {
	const op = "service.GetTour"
	tracer := otel.Tracer("booking-api/service")
	ctx, span := tracer.Start(ctx, op)
	defer span.End()
	span.SetAttributes(attribute.Int64("booking.tour_id", int64(id)))

	tour, ok := findTour(s.tours.ListTours(ctx), id)
	if !ok {
		s.log.Warn("tour not found", zap.String("op", op), zap.Int64("tour_id", int64(id)))
		span.SetStatus(otelcodes.Error, "tour not found")
		return models.Tour{}, derr.ErrTourNotFound
	}

	span.SetStatus(otelcodes.Ok, "ok")
	return tour, nil
}

// CheckAvailability reports whether the tour can be booked on the requested
// date and returns the discount-adjusted price tier for the service type.
func (s *BookingService) CheckAvailability(ctx context.Context, id models.TourID, date time.Time, serviceType models.ServiceType) (models.PriceTier, error) {
	const op = "service.CheckAvailability"
	tracer := otel.Tracer("booking-api/service")
	ctx, span := tracer.Start(ctx, op)
	defer span.End()
	span.SetAttributes(
		attribute.Int64("booking.tour_id", int64(id)),
		attribute.String("booking.date", models.CalendarDay(date).Format("2006-01-02")),
		attribute.String("booking.service_type", string(serviceType)),
	)

	logger := s.log.With(
		zap.String("op", op),
		zap.Int64("tour_id", int64(id)),
		zap.String("service_type", string(serviceType)),
	)

	tour, ok := findTour(s.tours.ListTours(ctx), id)
	if !ok {
		logger.Warn("tour not found")
		span.SetStatus(otelcodes.Error, "tour not found")
		return models.PriceTier{}, derr.ErrTourNotFound
	}

	tier, err := resolveTier(tour, date, serviceType)
	if err != nil {
		logger.Info("tour not resolvable", zap.Error(err))
		span.SetStatus(otelcodes.Error, err.Error())
		return models.PriceTier{}, err
	}

	span.SetStatus(otelcodes.Ok, "ok")
	return tier, nil
}

// BookTour validates nothing itself (the transport short-circuits invalid
// input), resolves the tier from a single snapshot and computes the total.
// The discount is applied exactly once, inside the tier; the total is derived
// from the already-adjusted unit prices.
func (s *BookingService) BookTour(ctx context.Context, req models.BookingRequest) (models.Confirmation, error) {
	const op = "service.BookTour"
	tracer := otel.Tracer("booking-api/service")
	ctx, span := tracer.Start(ctx, op)
	defer span.End()
	span.SetAttributes(
		attribute.Int64("booking.tour_id", int64(req.TourID)),
		attribute.String("booking.date", models.CalendarDay(req.Date).Format("2006-01-02")),
		attribute.String("booking.service_type", string(req.ServiceType)),
		attribute.Int("booking.party_size", req.PartySize()),
	)

	logger := s.log.With(
		zap.String("op", op),
		zap.Int64("tour_id", int64(req.TourID)),
		zap.String("service_type", string(req.ServiceType)),
	)

	tour, ok := findTour(s.tours.ListTours(ctx), req.TourID)
	if !ok {
		logger.Warn("tour not found")
		span.SetStatus(otelcodes.Error, "tour not found")
		return models.Confirmation{}, derr.ErrTourNotFound
	}

	tier, err := resolveTier(tour, req.Date, req.ServiceType)
	if err != nil {
		logger.Info("booking rejected", zap.Error(err))
		span.AddEvent(
			"booking.rejected",
			trace.WithAttributes(attribute.String("booking.reason", err.Error())),
		)
		span.SetStatus(otelcodes.Error, err.Error())
		return models.Confirmation{}, err
	}

	confirmation := models.Confirmation{
		Reference:      uuid.NewString(),
		TourName:       tour.Name,
		Date:           models.CalendarDay(req.Date),
		ServiceType:    req.ServiceType,
		Tier:           tier,
		Total:          totalPrice(tier, req),
		FullName:       req.FullName,
		PickupLocation: req.PickupLocation,
		Email:          req.Email,
	}

	span.SetStatus(otelcodes.Ok, "ok")
	logger.Info("tour booked",
		zap.String("reference", confirmation.Reference),
		zap.Float64("total", confirmation.Total),
	)
	return confirmation, nil
}

func findTour(tours []models.Tour, id models.TourID) (models.Tour, bool) {
	for _, tour := range tours {
		if tour.ID == id {
			return tour, true
		}
	}
	return models.Tour{}, false
}

// resolveTier applies the availability and pricing rules:
// the date excluded by any window makes the tour unavailable (union
// semantics), the first tier matching the service type wins, and an inclusive
// discount window scales the per-person prices. BasePrice is never scaled.
// The returned tier is a fresh snapshot; the source tour is not mutated.
func resolveTier(tour models.Tour, date time.Time, serviceType models.ServiceType) (models.PriceTier, error) {
	day := models.CalendarDay(date)

	for _, window := range tour.Availability {
		for _, excluded := range window.ExcludeDates {
			if models.SameCalendarDay(excluded, day) {
				return models.PriceTier{}, derr.ErrDateUnavailable
			}
		}
	}

	for _, tier := range tour.Prices {
		if tier.ServiceType != serviceType {
			continue
		}
		// Date parsing problems degrade to unavailable; a tier whose
		// discount dates failed to parse cannot be priced.
		if tier.DiscountWindowMalformed {
			return models.PriceTier{}, derr.ErrDateUnavailable
		}
		if tier.DiscountWindowContains(day) && tier.DiscountPercent > 0 {
			multiplier := 1 - tier.DiscountPercent/100
			tier.AdultPrice *= multiplier
			tier.ChildPrice *= multiplier
			tier.InfantPrice *= multiplier
		}
		return tier, nil
	}

	return models.PriceTier{}, derr.ErrPriceNotFound
}

// totalPrice aggregates the already discount-adjusted tier. Private prices
// per person; Sharing charges the raw base price per adult and child, with
// infants free.
func totalPrice(tier models.PriceTier, req models.BookingRequest) float64 {
	if req.ServiceType == models.ServiceSharing {
		return tier.BasePrice * float64(req.Adults+req.Children)
	}
	return tier.AdultPrice*float64(req.Adults) +
		tier.ChildPrice*float64(req.Children) +
		tier.InfantPrice*float64(req.Infants)
}
