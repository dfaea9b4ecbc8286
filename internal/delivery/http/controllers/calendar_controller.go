package controllers

import (
	"log/slog"
	"net/http"

	h "boothly/internal/delivery/http/helpers"
	"boothly/internal/domain"
)

type CalendarController struct {
	Logger  *slog.Logger
	Service domain.CalendarService
	Encoder domain.CalendarEncoder
}

func NewCalendarController(logger *slog.Logger, svc domain.CalendarService, encoder domain.CalendarEncoder) *CalendarController {
	return &CalendarController{
		Logger:  logger,
		Service: svc,
		Encoder: encoder,
	}
}

// Calendar godoc
// @Summary 90-day event calendar
// @Description One bucket per day for the 90 days starting today, each holding the events dated that day. Suggestions are the distinct matching event names in order.
// @Tags calendar
// @Produce json
// @Param q query string false "Name keyword"
// @Success 200 {object} helpers.APIResponse{data=domain.Calendar}
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /calendar [get]
func (c *CalendarController) Calendar(w http.ResponseWriter, r *http.Request) {
	cal, err := c.Service.Calendar(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, cal)
}

// Export godoc
// @Summary 90-day calendar as iCalendar
// @Tags calendar
// @Produce plain
// @Param q query string false "Name keyword"
// @Success 200 {file} binary "text/calendar feed"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /calendar.ics [get]
func (c *CalendarController) Export(w http.ResponseWriter, r *http.Request) {
	cal, err := c.Service.Calendar(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	body, err := c.Encoder.Encode(cal)
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	w.Header().Set("Content-Type", c.Encoder.ContentType())
	w.Header().Set("Content-Disposition", `attachment; filename="boothly.ics"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
