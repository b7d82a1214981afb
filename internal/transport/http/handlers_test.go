package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/qamar62/st-booking/internal/application/service"
	"github.com/qamar62/st-booking/internal/domain/models"
	"go.uber.org/zap"
)

type fakeTourSource struct {
	tours []models.Tour
}

func (f *fakeTourSource) ListTours(ctx context.Context) []models.Tour {
	return f.tours
}

// testTour anchors its dates around today so horizon validation passes:
// the discount window covers [today, today+30] and today+5 is excluded.
func testTour() models.Tour {
	today := models.CalendarDay(time.Now())
	return models.Tour{
		ID:        42,
		Name:      "Desert Safari",
		Thumbnail: "https://cdn.example.com/safari.jpg",
		Availability: []models.AvailabilityWindow{
			{ExcludeDates: []time.Time{today.AddDate(0, 0, 5)}},
		},
		Prices: []models.PriceTier{{
			ServiceType:     models.ServicePrivate,
			AdultPrice:      100,
			ChildPrice:      50,
			InfantPrice:     0,
			BasePrice:       70,
			DiscountStart:   today,
			DiscountEnd:     today.AddDate(0, 0, 30),
			DiscountPercent: 20,
		}},
	}
}

func newTestRouter(t *testing.T, tours ...models.Tour) http.Handler {
	t.Helper()
	svc := service.NewBookingService(zap.NewNop(), &fakeTourSource{tours: tours})
	handler := NewBookingHandler(zap.NewNop(), svc, 365)
	limiter := NewRateLimiter(1000, 1000)
	t.Cleanup(limiter.Close)
	return newRouter(handler, limiter)
}

func bookingBody(overrides map[string]interface{}) string {
	payload := map[string]interface{}{
		"tour_id":         42,
		"date":            models.CalendarDay(time.Now()).AddDate(0, 0, 10).Format("2006-01-02"),
		"service_type":    "Private",
		"full_name":       "Amira Khan",
		"pickup_location": "Marina Mall",
		"email":           "amira@example.com",
		"phone":           "+971501234567",
		"num_adults":      2,
		"num_children":    1,
		"num_infants":     1,
	}
	for k, v := range overrides {
		payload[k] = v
	}
	data, _ := json.Marshal(payload)
	return string(data)
}

func doRequest(t *testing.T, router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestListTours(t *testing.T) {
	router := newTestRouter(t, testTour())

	rec := doRequest(t, router, http.MethodGet, "/v1/tours", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}

	var tours []tourSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &tours); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(tours) != 1 || tours[0].Name != "Desert Safari" {
		t.Fatalf("unexpected tours: %+v", tours)
	}
}

func TestListTours_EmptyUpstreamRendersEmptyList(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/v1/tours", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Fatalf("expected empty array, got %q", body)
	}
}

func TestGetTour_NotFound(t *testing.T) {
	router := newTestRouter(t, testTour())

	rec := doRequest(t, router, http.MethodGet, "/v1/tours/7", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
}

func TestQuote_StatusMapping(t *testing.T) {
	router := newTestRouter(t, testTour())
	today := models.CalendarDay(time.Now())

	cases := []struct {
		name   string
		target string
		status int
	}{
		{
			name:   "excluded date",
			target: "/v1/tours/42/quote?date=" + today.AddDate(0, 0, 5).Format("2006-01-02") + "&service_type=Private",
			status: http.StatusConflict,
		},
		{
			name:   "missing tier",
			target: "/v1/tours/42/quote?date=" + today.AddDate(0, 0, 10).Format("2006-01-02") + "&service_type=Sharing",
			status: http.StatusUnprocessableEntity,
		},
		{
			name:   "unknown tour",
			target: "/v1/tours/7/quote?date=" + today.AddDate(0, 0, 10).Format("2006-01-02") + "&service_type=Private",
			status: http.StatusNotFound,
		},
		{
			name:   "bad service type",
			target: "/v1/tours/42/quote?date=" + today.AddDate(0, 0, 10).Format("2006-01-02") + "&service_type=Luxury",
			status: http.StatusBadRequest,
		},
		{
			name:   "bad date",
			target: "/v1/tours/42/quote?date=someday&service_type=Private",
			status: http.StatusBadRequest,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(t, router, http.MethodGet, tc.target, "")
			if rec.Code != tc.status {
				t.Fatalf("expected %d, got %d (%s)", tc.status, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestQuote_DiscountedTier(t *testing.T) {
	router := newTestRouter(t, testTour())
	today := models.CalendarDay(time.Now())

	rec := doRequest(t, router, http.MethodGet,
		"/v1/tours/42/quote?date="+today.AddDate(0, 0, 10).Format("2006-01-02")+"&service_type=Private", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d (%s)", rec.Code, rec.Body.String())
	}

	var tier tierResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &tier); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if tier.AdultPrice != 80 || tier.ChildPrice != 40 {
		t.Fatalf("unexpected tier: %+v", tier)
	}
	if tier.BasePrice != 70 {
		t.Fatalf("base price must stay undiscounted: %+v", tier)
	}
}

func TestCreateBooking_Success(t *testing.T) {
	router := newTestRouter(t, testTour())

	rec := doRequest(t, router, http.MethodPost, "/v1/bookings", bookingBody(nil))
	if rec.Code != http.StatusCreated {
		t.Fatalf("unexpected status: %d (%s)", rec.Code, rec.Body.String())
	}

	var confirmation confirmationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &confirmation); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if confirmation.Reference == "" {
		t.Fatal("expected a booking reference")
	}
	if confirmation.TotalPrice != 200 {
		t.Fatalf("unexpected total: %v", confirmation.TotalPrice)
	}
	if confirmation.Email != "amira@example.com" {
		t.Fatalf("unexpected email echo: %q", confirmation.Email)
	}
}

func TestCreateBooking_ValidationShortCircuits(t *testing.T) {
	today := models.CalendarDay(time.Now())

	cases := []struct {
		name      string
		overrides map[string]interface{}
		contains  string
	}{
		{
			name:      "missing fields",
			overrides: map[string]interface{}{"full_name": "", "email": ""},
			contains:  "please fill all the fields",
		},
		{
			name:      "invalid phone",
			overrides: map[string]interface{}{"phone": "12345"},
			contains:  "phone",
		},
		{
			name:      "invalid email",
			overrides: map[string]interface{}{"email": "not-an-email"},
			contains:  "email",
		},
		{
			name:      "date beyond horizon",
			overrides: map[string]interface{}{"date": today.AddDate(0, 0, 400).Format("2006-01-02")},
			contains:  "days",
		},
		{
			name:      "date in the past",
			overrides: map[string]interface{}{"date": today.AddDate(0, 0, -1).Format("2006-01-02")},
			contains:  "days",
		},
		{
			name:      "negative party size",
			overrides: map[string]interface{}{"num_adults": -1},
			contains:  "negative",
		},
		{
			name:      "empty party",
			overrides: map[string]interface{}{"num_adults": 0, "num_children": 0, "num_infants": 0},
			contains:  "traveler",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(t, newTestRouter(t, testTour()), http.MethodPost, "/v1/bookings", bookingBody(tc.overrides))
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d (%s)", rec.Code, rec.Body.String())
			}
			if !strings.Contains(rec.Body.String(), tc.contains) {
				t.Fatalf("expected message containing %q, got %s", tc.contains, rec.Body.String())
			}
		})
	}
}

func TestCreateBooking_UnavailableDate(t *testing.T) {
	today := models.CalendarDay(time.Now())

	rec := doRequest(t, newTestRouter(t, testTour()), http.MethodPost, "/v1/bookings", bookingBody(map[string]interface{}{
		"date": today.AddDate(0, 0, 5).Format("2006-01-02"),
	}))
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d (%s)", rec.Code, rec.Body.String())
	}
}

func TestRateLimiter_RejectsBurst(t *testing.T) {
	svc := service.NewBookingService(zap.NewNop(), &fakeTourSource{})
	handler := NewBookingHandler(zap.NewNop(), svc, 365)
	limiter := NewRateLimiter(1, 1)
	t.Cleanup(limiter.Close)
	limited := newRouter(handler, limiter)

	first := doRequest(t, limited, http.MethodGet, "/v1/tours", "")
	if first.Code != http.StatusOK {
		t.Fatalf("first request must pass, got %d", first.Code)
	}

	second := doRequest(t, limited, http.MethodGet, "/v1/tours", "")
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", second.Code)
	}
}

func TestRateLimiter_CloseStopsJanitor(t *testing.T) {
	limiter := NewRateLimiter(1, 1)

	before := runtime.NumGoroutine()
	limiter.Close()
	limiter.Close()

	deadline := time.Now().Add(time.Second)
	for runtime.NumGoroutine() >= before && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if got := runtime.NumGoroutine(); got >= before {
		t.Fatalf("janitor still running after Close: %d goroutines, had %d", got, before)
	}

	if !limiter.getLimiter("203.0.113.9").Allow() {
		t.Fatal("limiter must stay usable after Close")
	}
}
