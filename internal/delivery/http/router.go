package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"boothly/internal/delivery/http/controllers"
)

// Routes holds everything NewRouter mounts.
type Routes struct {
	Auth     *controllers.AuthController
	Profile  *controllers.ProfileController
	Event    *controllers.EventController
	Calendar *controllers.CalendarController
	Health   *controllers.HealthController

	// RequireAuth wraps handlers that need a signed-in user.
	RequireAuth func(http.HandlerFunc) http.HandlerFunc

	// Files serves stored objects when the object store is local. Optional.
	Files http.Handler
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(rt Routes) *http.ServeMux {
	mux := http.NewServeMux()
	auth := rt.RequireAuth

	mux.HandleFunc("GET /health", rt.Health.Health)

	// Auth
	mux.HandleFunc("POST /auth/signup", rt.Auth.SignUp)
	mux.HandleFunc("POST /auth/login", rt.Auth.Login)
	mux.HandleFunc("GET /auth/session", auth(rt.Auth.Session))
	mux.HandleFunc("POST /auth/logout", auth(rt.Auth.Logout))

	// Profiles
	mux.HandleFunc("GET /profiles/me", auth(rt.Profile.GetMine))
	mux.HandleFunc("PUT /profiles/me", auth(rt.Profile.Save))
	mux.HandleFunc("POST /profiles/me/uploads/{type}", auth(rt.Profile.Upload))
	mux.HandleFunc("GET /profiles/{userID}", rt.Profile.GetByUser)

	// Events
	mux.HandleFunc("GET /events", rt.Event.Search)
	mux.HandleFunc("POST /events", auth(rt.Event.Create))
	mux.HandleFunc("POST /events/flyers", auth(rt.Event.UploadFlyer))
	mux.HandleFunc("GET /events/{id}", rt.Event.Get)
	mux.HandleFunc("GET /events/{id}/qr.png", rt.Event.QRCode)

	// Calendar
	mux.HandleFunc("GET /calendar", rt.Calendar.Calendar)
	mux.HandleFunc("GET /calendar.ics", rt.Calendar.Export)

	if rt.Files != nil {
		mux.Handle("GET /files/{key...}", rt.Files)
	}

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
