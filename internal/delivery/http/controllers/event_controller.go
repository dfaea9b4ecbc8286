package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	h "boothly/internal/delivery/http/helpers"
	"boothly/internal/delivery/http/middleware"
	"boothly/internal/domain"
)

// CreateEventRequest is the JSON body for POST /events. Multipart submissions
// use the same field names plus an optional "flyer" file.
type CreateEventRequest struct {
	Name            string `json:"name"`
	Date            string `json:"date" example:"2026-05-20"`
	Address         string `json:"address,omitempty"`
	Phone           string `json:"phone,omitempty"`
	Email           string `json:"email,omitempty"`
	Cost            string `json:"cost,omitempty"`
	FlyerURL        string `json:"flyer_url,omitempty"`
	ApplicationLink string `json:"application_link,omitempty"`
}

// Validate implements Validator.
func (c CreateEventRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, "name is required")
	}
	if strings.TrimSpace(c.Date) == "" {
		errs = append(errs, "date is required")
	} else if _, err := domain.ParseDate(strings.TrimSpace(c.Date)); err != nil {
		errs = append(errs, err.Error())
	}
	return errs
}

func (c CreateEventRequest) input() domain.CreateEventInput {
	date, _ := domain.ParseDate(strings.TrimSpace(c.Date))
	return domain.CreateEventInput{
		Name:            strings.TrimSpace(c.Name),
		Date:            date,
		Address:         strings.TrimSpace(c.Address),
		Phone:           strings.TrimSpace(c.Phone),
		Email:           strings.TrimSpace(c.Email),
		Cost:            strings.TrimSpace(c.Cost),
		FlyerURL:        strings.TrimSpace(c.FlyerURL),
		ApplicationLink: strings.TrimSpace(c.ApplicationLink),
	}
}

// SearchEventsResponse is the data returned by GET /events.
type SearchEventsResponse struct {
	Events      []*domain.Event `json:"events"`
	Suggestions []string        `json:"suggestions"`
}

type EventController struct {
	Logger         *slog.Logger
	Service        domain.EventService
	QR             domain.LinkEncoder
	MaxUploadBytes int64
}

func NewEventController(logger *slog.Logger, svc domain.EventService, qr domain.LinkEncoder, maxUploadBytes int64) *EventController {
	return &EventController{
		Logger:         logger,
		Service:        svc,
		QR:             qr,
		MaxUploadBytes: maxUploadBytes,
	}
}

// Create godoc
// @Summary Create an event
// @Description Organizers only. Send JSON, or multipart/form-data with the same fields and an optional "flyer" file. The flyer is uploaded first; if that fails no event is created.
// @Tags events
// @Accept json,mpfd
// @Produce json
// @Security BearerAuth
// @Param event body CreateEventRequest true "Event data"
// @Success 201 {object} helpers.APIResponse{data=domain.Event} "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, domain.ErrUnauthenticated.Error())
		return
	}

	var req CreateEventRequest
	var flyer *domain.Upload
	if h.IsMultipart(r) {
		if err := h.ParseMultipart(w, r, c.MaxUploadBytes); err != nil {
			h.WriteServiceError(w, r, c.Logger, err)
			return
		}
		req = CreateEventRequest{
			Name:            h.FormValue(r, "name"),
			Date:            h.FormValue(r, "date"),
			Address:         h.FormValue(r, "address"),
			Phone:           h.FormValue(r, "phone"),
			Email:           h.FormValue(r, "email"),
			Cost:            h.FormValue(r, "cost"),
			FlyerURL:        h.FormValue(r, "flyer_url"),
			ApplicationLink: h.FormValue(r, "application_link"),
		}
		if !h.Validate(w, req) {
			return
		}
		upload, closeFile, err := h.FormUpload(r, "flyer")
		if err != nil {
			h.WriteServiceError(w, r, c.Logger, err)
			return
		}
		defer closeFile()
		flyer = upload
	} else if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	in := req.input()
	in.Flyer = flyer
	event, err := c.Service.CreateEvent(r.Context(), claims, in)
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, event)
}

// UploadFlyer godoc
// @Summary Upload an event flyer
// @Description Organizers only. Stores the file at flyers/<unix-ms>_<filename> in the flyers bucket.
// @Tags events
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param flyer formData file true "Flyer image"
// @Success 201 {object} helpers.APIResponse{data=domain.StoredObject}
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /events/flyers [post]
func (c *EventController) UploadFlyer(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, domain.ErrUnauthenticated.Error())
		return
	}
	if err := h.ParseMultipart(w, r, c.MaxUploadBytes); err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	upload, closeFile, err := h.FormUpload(r, "flyer")
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	defer closeFile()
	if upload == nil {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "flyer is required")
		return
	}

	obj, err := c.Service.UploadFlyer(r.Context(), claims, upload)
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, obj)
}

// Get godoc
// @Summary Get an event
// @Tags events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} helpers.APIResponse{data=domain.Event}
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{id} [get]
func (c *EventController) Get(w http.ResponseWriter, r *http.Request) {
	event, err := c.Service.GetEvent(r.Context(), r.PathValue("id"))
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, event)
}

// Search godoc
// @Summary Search events
// @Description Events dated within [start, end] whose name contains q, ignoring case. start defaults to today, end to start + 90 days.
// @Tags events
// @Produce json
// @Param q query string false "Name keyword"
// @Param start query string false "First date (YYYY-MM-DD)"
// @Param end query string false "Last date (YYYY-MM-DD)"
// @Success 200 {object} helpers.APIResponse{data=SearchEventsResponse}
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	q := domain.EventQuery{Keyword: query.Get("q")}
	var problems []string
	for _, p := range []struct {
		name string
		dest *domain.Date
	}{{"start", &q.Start}, {"end", &q.End}} {
		raw := strings.TrimSpace(query.Get(p.name))
		if raw == "" {
			continue
		}
		d, err := domain.ParseDate(raw)
		if err != nil {
			problems = append(problems, p.name+": "+err.Error())
			continue
		}
		*p.dest = d
	}
	if len(problems) > 0 {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, strings.Join(problems, "; "))
		return
	}

	events, err := c.Service.SearchEvents(r.Context(), q)
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, SearchEventsResponse{
		Events:      events,
		Suggestions: domain.SuggestNames(events),
	})
}

// QRCode godoc
// @Summary Application link QR code
// @Description PNG QR code for the event's application link. 404 when the event has no http link.
// @Tags events
// @Produce png
// @Param id path string true "Event ID"
// @Success 200 {file} binary
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{id}/qr.png [get]
func (c *EventController) QRCode(w http.ResponseWriter, r *http.Request) {
	event, err := c.Service.GetEvent(r.Context(), r.PathValue("id"))
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	if !event.HasApplicationLink() {
		h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "event has no application link")
		return
	}
	png, err := c.QR.Encode(event.ApplicationLink)
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	w.Header().Set("Content-Type", c.QR.ContentType())
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
