package api

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/remind-api/internal/api/shared"
	"github.com/phrazzld/remind-api/internal/domain"
	"github.com/phrazzld/remind-api/internal/notify"
)

// SweepRequest defines the optional payload for the operator sweep
// endpoint. An absent or empty date means "today".
type SweepRequest struct {
	Date string `json:"date,omitempty"`
}

// ReminderHandler exposes the operator trigger for the due-task
// reminder sweep.
type ReminderHandler struct {
	dispatcher *notify.Dispatcher
	timeFunc   func() time.Time
	logger     *slog.Logger
}

// NewReminderHandler creates a new ReminderHandler with the given
// dependencies.
func NewReminderHandler(dispatcher *notify.Dispatcher, logger *slog.Logger) (*ReminderHandler, error) {
	if dispatcher == nil {
		return nil, fmt.Errorf("dispatcher cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ReminderHandler{
		dispatcher: dispatcher,
		timeFunc:   time.Now,
		logger:     logger.With("component", "reminder_handler"),
	}, nil
}

// Sweep handles POST /api/reminders/sweep. It runs the reminder sweep
// for the requested date (defaulting to today) and returns the sweep
// summary. Delivery failures are reflected in the summary, not the
// status code.
func (h *ReminderHandler) Sweep(w http.ResponseWriter, r *http.Request) {
	var req SweepRequest
	if err := shared.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	date := req.Date
	if date == "" {
		date = h.timeFunc().UTC().Format(domain.DueDateLayout)
	} else if _, err := domain.ParseDueDate(date); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
		return
	}

	report, err := h.dispatcher.DispatchDueReminders(r.Context(), date)
	if err != nil {
		h.logger.Error("reminder sweep failed", "error", err, "due_date", date)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Reminder sweep failed")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, report)
}
