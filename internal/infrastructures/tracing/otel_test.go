package tracing

import (
	"testing"

	"github.com/qamar62/st-booking/internal/config"
)

func TestCollectorEndpoint(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", "http://localhost:14268/api/traces"},
		{"jaeger:14268", "http://jaeger:14268/api/traces"},
		{"http://jaeger:14268", "http://jaeger:14268/api/traces"},
		{"http://jaeger:14268/", "http://jaeger:14268/api/traces"},
		{"https://collector.example.com/api/traces", "https://collector.example.com/api/traces"},
		{"  jaeger:14268  ", "http://jaeger:14268/api/traces"},
	}

	for _, tc := range cases {
		if got := collectorEndpoint(tc.in); got != tc.want {
			t.Fatalf("collectorEndpoint(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestInit_Disabled(t *testing.T) {
	tp, err := Init(config.TracingConfig{Enabled: false})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tp == nil {
		t.Fatal("expected a tracer provider even with tracing disabled")
	}
}
