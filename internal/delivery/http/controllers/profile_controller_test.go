package controllers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"boothly/internal/delivery/http/helpers"
	"boothly/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileController_Get(t *testing.T) {
	svc := &fakeProfileService{profiles: map[string]*domain.Profile{
		"maker-1": {UserID: "maker-1", Role: domain.RoleMaker, Bio: "Hand-thrown pots", PortfolioURLs: []string{}},
	}}
	c := NewProfileController(testLogger, svc, 1<<20)

	t.Run("mine", func(t *testing.T) {
		rr := httptest.NewRecorder()
		c.GetMine(rr, withClaims(httptest.NewRequest(http.MethodGet, "/profiles/me", nil), makerClaims))
		require.Equal(t, http.StatusOK, rr.Code)
		var p domain.Profile
		require.Nil(t, decodeEnvelope(t, rr, &p))
		assert.Equal(t, "Hand-thrown pots", p.Bio)
	})

	t.Run("mine never saved", func(t *testing.T) {
		rr := httptest.NewRecorder()
		c.GetMine(rr, withClaims(httptest.NewRequest(http.MethodGet, "/profiles/me", nil), organizerClaims))
		require.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("mine unauthenticated", func(t *testing.T) {
		rr := httptest.NewRecorder()
		c.GetMine(rr, httptest.NewRequest(http.MethodGet, "/profiles/me", nil))
		require.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("public by user id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/profiles/maker-1", nil)
		req.SetPathValue("userID", "maker-1")
		rr := httptest.NewRecorder()
		c.GetByUser(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)
	})
}

func TestProfileController_Save(t *testing.T) {
	eleven := make([]string, 11)
	for i := range eleven {
		eleven[i] = fmt.Sprintf("https://cdn.example.com/%d.png", i)
	}

	tests := []struct {
		name       string
		claims     *domain.TokenClaims
		body       any
		svcErr     error
		wantStatus int
		wantCode   string
	}{
		{name: "saved", claims: makerClaims, body: SaveProfileRequest{Bio: "pots", LogoURL: " https://l "}, wantStatus: http.StatusOK},
		{name: "eleven portfolio images accepted", claims: makerClaims, body: SaveProfileRequest{PortfolioURLs: eleven}, wantStatus: http.StatusOK},
		{name: "empty portfolio entry", claims: makerClaims, body: SaveProfileRequest{PortfolioURLs: []string{"https://a", " "}}, wantStatus: http.StatusBadRequest, wantCode: helpers.ErrCodeBadRequest},
		{name: "unauthenticated", body: SaveProfileRequest{}, wantStatus: http.StatusUnauthorized, wantCode: helpers.ErrCodeUnauthorized},
		{name: "store failure", claims: makerClaims, body: SaveProfileRequest{}, svcErr: errBoom, wantStatus: http.StatusInternalServerError, wantCode: helpers.ErrCodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeProfileService{saveErr: tt.svcErr}
			rr := httptest.NewRecorder()
			req := withClaims(jsonRequest(t, http.MethodPut, "/profiles/me", tt.body), tt.claims)

			NewProfileController(testLogger, svc, 1<<20).Save(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			var p domain.Profile
			apiErr := decodeEnvelope(t, rr, &p)
			if tt.wantCode != "" {
				require.NotNil(t, apiErr)
				assert.Equal(t, tt.wantCode, apiErr.Code)
				return
			}
			assert.Equal(t, "maker-1", p.UserID)
			assert.Equal(t, domain.RoleMaker, p.Role)
			req2 := tt.body.(SaveProfileRequest)
			assert.Len(t, svc.lastSaved.PortfolioURLs, len(req2.PortfolioURLs))
		})
	}
}

func TestProfileController_SaveTrimsURLs(t *testing.T) {
	svc := &fakeProfileService{}
	rr := httptest.NewRecorder()
	req := withClaims(jsonRequest(t, http.MethodPut, "/profiles/me", SaveProfileRequest{LogoURL: " https://l ", ProfileURL: "https://p "}), makerClaims)
	NewProfileController(testLogger, svc, 1<<20).Save(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "https://l", svc.lastSaved.LogoURL)
	assert.Equal(t, "https://p", svc.lastSaved.ProfileURL)
}

func TestProfileController_Upload(t *testing.T) {
	tests := []struct {
		name       string
		kind       string
		claims     *domain.TokenClaims
		fileField  string
		svcErr     error
		wantStatus int
		wantPath   string
	}{
		{name: "logo", kind: "logo", claims: makerClaims, fileField: "file", wantStatus: http.StatusCreated, wantPath: "maker-1/logo/logo.png"},
		{name: "portfolio", kind: "portfolio", claims: makerClaims, fileField: "file", wantStatus: http.StatusCreated, wantPath: "maker-1/portfolio/logo.png"},
		{name: "unknown type", kind: "banner", claims: makerClaims, fileField: "file", wantStatus: http.StatusBadRequest},
		{name: "missing file", kind: "logo", claims: makerClaims, wantStatus: http.StatusBadRequest},
		{name: "unauthenticated", kind: "logo", fileField: "file", wantStatus: http.StatusUnauthorized},
		{name: "storage failure", kind: "logo", claims: makerClaims, fileField: "file", svcErr: errBoom, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeProfileService{uploadErr: tt.svcErr}
			req := multipartRequest(t, "/profiles/me/uploads/"+tt.kind, nil, tt.fileField, "logo.png", "png-bytes")
			req.SetPathValue("type", tt.kind)
			req = withClaims(req, tt.claims)
			rr := httptest.NewRecorder()

			NewProfileController(testLogger, svc, 1<<20).Upload(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantPath == "" {
				return
			}
			var obj domain.StoredObject
			require.Nil(t, decodeEnvelope(t, rr, &obj))
			assert.Equal(t, tt.wantPath, obj.Path)
			assert.Equal(t, "png-bytes", string(svc.lastUpload))
			assert.Equal(t, domain.UploadKind(tt.kind), svc.lastKind)
		})
	}
}

func TestProfileController_UploadTooLarge(t *testing.T) {
	req := multipartRequest(t, "/profiles/me/uploads/logo", nil, "file", "big.png", string(make([]byte, 4096)))
	req.SetPathValue("type", "logo")
	req = withClaims(req, makerClaims)
	rr := httptest.NewRecorder()

	NewProfileController(testLogger, &fakeProfileService{}, 512).Upload(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
}
