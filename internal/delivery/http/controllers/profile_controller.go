package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	h "boothly/internal/delivery/http/helpers"
	"boothly/internal/delivery/http/middleware"
	"boothly/internal/domain"
)

// SaveProfileRequest is the request body for PUT /profiles/me. Portfolio
// length is not limited.
type SaveProfileRequest struct {
	Bio           string   `json:"bio"`
	ProfileURL    string   `json:"profile_url"`
	LogoURL       string   `json:"logo_url"`
	PortfolioURLs []string `json:"portfolio_urls"`
}

// Validate implements Validator.
func (p SaveProfileRequest) Validate() []string {
	for _, u := range p.PortfolioURLs {
		if strings.TrimSpace(u) == "" {
			return []string{"portfolio_urls must not contain empty entries"}
		}
	}
	return nil
}

type ProfileController struct {
	Logger         *slog.Logger
	Service        domain.ProfileService
	MaxUploadBytes int64
}

func NewProfileController(logger *slog.Logger, svc domain.ProfileService, maxUploadBytes int64) *ProfileController {
	return &ProfileController{
		Logger:         logger,
		Service:        svc,
		MaxUploadBytes: maxUploadBytes,
	}
}

// GetMine godoc
// @Summary Get my profile
// @Tags profiles
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse{data=domain.Profile}
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /profiles/me [get]
func (c *ProfileController) GetMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, domain.ErrUnauthenticated.Error())
		return
	}
	c.writeProfile(w, r, userID)
}

// GetByUser godoc
// @Summary Get a user's profile
// @Tags profiles
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {object} helpers.APIResponse{data=domain.Profile}
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /profiles/{userID} [get]
func (c *ProfileController) GetByUser(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")
	if userID == "" {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "user id is required")
		return
	}
	c.writeProfile(w, r, userID)
}

func (c *ProfileController) writeProfile(w http.ResponseWriter, r *http.Request, userID string) {
	profile, err := c.Service.GetProfile(r.Context(), userID)
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, profile)
}

// Save godoc
// @Summary Save my profile
// @Description Insert or replace the signed-in user's profile. The last write wins.
// @Tags profiles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SaveProfileRequest true "Profile"
// @Success 200 {object} helpers.APIResponse{data=domain.Profile}
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /profiles/me [put]
func (c *ProfileController) Save(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, domain.ErrUnauthenticated.Error())
		return
	}
	var req SaveProfileRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	profile, err := c.Service.SaveProfile(r.Context(), claims, &domain.Profile{
		Bio:           req.Bio,
		ProfileURL:    strings.TrimSpace(req.ProfileURL),
		LogoURL:       strings.TrimSpace(req.LogoURL),
		PortfolioURLs: req.PortfolioURLs,
	})
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}

	h.WriteJSONSuccess(w, http.StatusOK, profile)
}

// Upload godoc
// @Summary Upload a profile image
// @Description Store an image at <user-id>/<type>/<filename>, replacing any previous file at that path. The profile itself is not changed.
// @Tags profiles
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param type path string true "Image slot" Enums(profile, logo, portfolio)
// @Param file formData file true "Image"
// @Success 201 {object} helpers.APIResponse{data=domain.StoredObject}
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /profiles/me/uploads/{type} [post]
func (c *ProfileController) Upload(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, domain.ErrUnauthenticated.Error())
		return
	}
	kind, ok := domain.ParseUploadKind(r.PathValue("type"))
	if !ok {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "upload type must be one of profile, logo, portfolio")
		return
	}
	if err := h.ParseMultipart(w, r, c.MaxUploadBytes); err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	upload, closeFile, err := h.FormUpload(r, "file")
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	defer closeFile()
	if upload == nil {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "file is required")
		return
	}

	obj, err := c.Service.UploadImage(r.Context(), claims, kind, upload)
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, obj)
}
