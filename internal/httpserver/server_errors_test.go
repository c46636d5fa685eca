package httpserver

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/claimworks/reserving/pkg/reserving"
)

func TestRespondErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := &httpHandler{logger: zap.NewNop()}

	cases := []struct {
		name     string
		err      error
		expected int
	}{
		{"validation", reserving.ErrValidation, http.StatusBadRequest},
		{"amount", reserving.ErrInvalidAmount, http.StatusBadRequest},
		{"bad reserve id", reserving.ErrInvalidReserveID, http.StatusBadRequest},
		{"unknown reserve", reserving.ErrUnknownReserve, http.StatusNotFound},
		{"unknown hod code", reserving.ErrUnknownHODCode, http.StatusNotFound},
		{"lifecycle conflict", reserving.ErrInvalidStateTransition, http.StatusConflict},
		{"wrapped store failure", reserving.WrapError("store", "reserve", "insert", errors.New("connection reset")), http.StatusBadGateway},
	}

	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			ctx, _ := gin.CreateTestContext(recorder)
			ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			handler.respondError(ctx, testCase.err)
			if recorder.Code != testCase.expected {
				t.Fatalf("expected %d, got %d", testCase.expected, recorder.Code)
			}
		})
	}
}

func TestRespondErrorWrappedSentinel(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := &httpHandler{logger: zap.NewNop()}

	recorder := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(recorder)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	handler.respondError(ctx, reserving.WrapError("store", "reserve", "get", reserving.ErrUnknownReserve))
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for wrapped unknown reserve, got %d", recorder.Code)
	}
}

func TestConfigValidateAppliesDefaults(t *testing.T) {
	cfg := Config{SessionSigningKey: "k"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if cfg.ListenAddr != defaultListenAddr {
		t.Fatalf("unexpected listen addr %q", cfg.ListenAddr)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != defaultAllowedOrigin {
		t.Fatalf("unexpected origins %#v", cfg.AllowedOrigins)
	}
	if cfg.SessionIssuer != defaultSessionIssuer {
		t.Fatalf("unexpected issuer %q", cfg.SessionIssuer)
	}
	if cfg.ShutdownTimeout != defaultShutdownTimeout {
		t.Fatalf("unexpected shutdown timeout %v", cfg.ShutdownTimeout)
	}
}

func TestConfigValidateMissingSigningKey(t *testing.T) {
	cfg := Config{}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestParseAllowedOrigins(t *testing.T) {
	origins := ParseAllowedOrigins(" http://a.com , http://b.com ,")
	if len(origins) != 2 || origins[0] != "http://a.com" || origins[1] != "http://b.com" {
		t.Fatalf("unexpected origins: %#v", origins)
	}
	if len(ParseAllowedOrigins("  ")) != 0 {
		t.Fatalf("expected no origins for blank input")
	}
}
