package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/Dosada05/tournament-platform/middleware"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// StorePinger is satisfied by every registration.Store.
type StorePinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db    Pinger
	store StorePinger
}

func NewHealthHandler(db Pinger, store StorePinger) *HealthHandler {
	return &HealthHandler{db: db, store: store}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	logger := middleware.LoggerFromContext(r.Context())
	status := jsonResponse{"ok": true, "database": "up", "registration_store": "up"}
	code := http.StatusOK

	if err := h.db.PingContext(ctx); err != nil {
		logger.Warn("database ping failed", slog.Any("error", err))
		status["database"] = "down"
		status["ok"] = false
		code = http.StatusServiceUnavailable
	}
	if err := h.store.Ping(ctx); err != nil {
		logger.Warn("registration store ping failed", slog.Any("error", err))
		status["registration_store"] = "down"
		status["ok"] = false
		code = http.StatusServiceUnavailable
	}

	if err := writeJSON(w, code, status, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
