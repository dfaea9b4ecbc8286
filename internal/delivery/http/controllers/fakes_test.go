package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"boothly/internal/delivery/http/helpers"
	"boothly/internal/delivery/http/middleware"
	"boothly/internal/domain"

	"github.com/stretchr/testify/require"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

var errBoom = errors.New("boom")

var (
	organizerClaims = &domain.TokenClaims{UserID: "org-1", Email: "org@example.com", Role: domain.RoleOrganizer, TokenID: "jti-org"}
	makerClaims     = &domain.TokenClaims{UserID: "maker-1", Email: "maker@example.com", Role: domain.RoleMaker, TokenID: "jti-maker"}
)

func withClaims(req *http.Request, claims *domain.TokenClaims) *http.Request {
	if claims == nil {
		return req
	}
	return req.WithContext(middleware.SetClaims(req.Context(), claims))
}

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if s, ok := body.(string); ok {
		buf.WriteString(s)
	} else if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func multipartRequest(t *testing.T, target string, fields map[string]string, fileField, filename, content string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if fileField != "" {
		fw, err := mw.CreateFormFile(fileField, filename)
		require.NoError(t, err)
		_, err = io.WriteString(fw, content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

// decodeEnvelope decodes the response envelope, unmarshalling data into dest when non-nil.
func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder, dest any) *helpers.APIError {
	t.Helper()
	var env struct {
		Data  json.RawMessage   `json:"data"`
		Error *helpers.APIError `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&env))
	if dest != nil && env.Error == nil {
		require.NoError(t, json.Unmarshal(env.Data, dest))
	}
	return env.Error
}

// fakeAuthService implements domain.AuthService for handler tests.
type fakeAuthService struct {
	signUpErr     error
	signInErr     error
	sessionErr    error
	signOutErr    error
	lastEmail     string
	lastPassword  string
	lastRole      domain.Role
	lastClaims    *domain.TokenClaims
	signedOutJTIs []string
}

func (f *fakeAuthService) SignUp(_ context.Context, email, password string, role domain.Role) (*domain.User, error) {
	f.lastEmail, f.lastPassword, f.lastRole = email, password, role
	if f.signUpErr != nil {
		return nil, f.signUpErr
	}
	if role == "" {
		role = domain.DefaultRole
	}
	return &domain.User{ID: "user-1", Email: email, Role: role, PasswordHash: "secret-hash", Salt: "secret-salt"}, nil
}

func (f *fakeAuthService) SignIn(_ context.Context, email, password string) (*domain.Session, error) {
	f.lastEmail, f.lastPassword = email, password
	if f.signInErr != nil {
		return nil, f.signInErr
	}
	return &domain.Session{Token: "jwt-token", TokenType: "Bearer", User: &domain.User{ID: "user-1", Email: email, Role: domain.RoleMaker}}, nil
}

func (f *fakeAuthService) GetSession(_ context.Context, claims *domain.TokenClaims) (*domain.Session, error) {
	f.lastClaims = claims
	if f.sessionErr != nil {
		return nil, f.sessionErr
	}
	return &domain.Session{ExpiresAt: claims.ExpiresAt, User: &domain.User{ID: claims.UserID, Email: claims.Email, Role: claims.Role}}, nil
}

func (f *fakeAuthService) SignOut(_ context.Context, claims *domain.TokenClaims) error {
	if f.signOutErr != nil {
		return f.signOutErr
	}
	f.signedOutJTIs = append(f.signedOutJTIs, claims.TokenID)
	return nil
}

// fakeProfileService implements domain.ProfileService for handler tests.
type fakeProfileService struct {
	profiles    map[string]*domain.Profile
	saveErr     error
	uploadErr   error
	lastSaved   *domain.Profile
	lastKind    domain.UploadKind
	lastUpload  []byte
	lastName    string
	lastOwnerID string
}

func (f *fakeProfileService) GetProfile(_ context.Context, userID string) (*domain.Profile, error) {
	if p, ok := f.profiles[userID]; ok {
		return p, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeProfileService) SaveProfile(_ context.Context, owner *domain.TokenClaims, p *domain.Profile) (*domain.Profile, error) {
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	saved := *p
	saved.UserID = owner.UserID
	saved.Role = owner.Role
	f.lastSaved = &saved
	return &saved, nil
}

func (f *fakeProfileService) UploadImage(_ context.Context, owner *domain.TokenClaims, kind domain.UploadKind, img *domain.Upload) (*domain.StoredObject, error) {
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	body, err := io.ReadAll(img.Body)
	if err != nil {
		return nil, err
	}
	f.lastKind, f.lastUpload, f.lastName, f.lastOwnerID = kind, body, img.Filename, owner.UserID
	path := owner.UserID + "/" + string(kind) + "/" + img.Filename
	return &domain.StoredObject{Bucket: "user-uploads", Path: path, URL: "https://files.example.com/user-uploads/" + path}, nil
}

// fakeEventService implements domain.EventService for handler tests.
type fakeEventService struct {
	events      map[string]*domain.Event
	searchRes   []*domain.Event
	createErr   error
	searchErr   error
	uploadErr   error
	lastInput   domain.CreateEventInput
	lastFlyer   []byte
	lastQuery   domain.EventQuery
	lastCreator *domain.TokenClaims
}

func (f *fakeEventService) CreateEvent(_ context.Context, organizer *domain.TokenClaims, in domain.CreateEventInput) (*domain.Event, error) {
	f.lastInput, f.lastCreator = in, organizer
	if organizer.Role != domain.RoleOrganizer {
		return nil, domain.ErrForbidden
	}
	if f.createErr != nil {
		return nil, f.createErr
	}
	e := domain.NewEvent(in.Name, in.Date, organizer.UserID, in.Date.Time())
	e.ID = "ev-1"
	e.ApplicationLink = in.ApplicationLink
	if in.Flyer != nil {
		b, err := io.ReadAll(in.Flyer.Body)
		if err != nil {
			return nil, err
		}
		f.lastFlyer = b
		e.FlyerURL = "https://files.example.com/event-flyers/flyers/1_" + in.Flyer.Filename
	}
	return e, nil
}

func (f *fakeEventService) UploadFlyer(_ context.Context, organizer *domain.TokenClaims, flyer *domain.Upload) (*domain.StoredObject, error) {
	if organizer.Role != domain.RoleOrganizer {
		return nil, domain.ErrForbidden
	}
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	path := "flyers/1_" + flyer.Filename
	return &domain.StoredObject{Bucket: "event-flyers", Path: path, URL: "https://files.example.com/event-flyers/" + path}, nil
}

func (f *fakeEventService) GetEvent(_ context.Context, id string) (*domain.Event, error) {
	if e, ok := f.events[id]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventService) SearchEvents(_ context.Context, q domain.EventQuery) ([]*domain.Event, error) {
	f.lastQuery = q
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	if !q.Start.IsZero() && !q.End.IsZero() && q.Start.After(q.End) {
		return nil, domain.NewValidationError("start date must not be after end date")
	}
	return f.searchRes, nil
}
