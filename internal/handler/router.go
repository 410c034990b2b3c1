package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/seva/internal/middleware"
)

// Handlers groups everything NewRouter mounts.
type Handlers struct {
	Auth        *AuthHandler
	Booking     *BookingHandler
	Content     *ContentHandler
	Alankara    *AlankaraHandler
	User        *UserHandler
	Opportunity *OpportunityHandler
	Push        *PushHandler
	File        *FileHandler
	Live        *LiveHandler
	Config      *ConfigHandler
}

// NewRouter wires the public, authenticated and admin route groups.
func NewRouter(h Handlers, tokens middleware.TokenVerifier, corsOrigins string) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(middleware.RecoverJSON)
	// Compression hides http.Hijacker, so websocket upgrades bypass it.
	r.Use(func(next http.Handler) http.Handler {
		compressed := chimw.Compress(5)(next)
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if strings.EqualFold(req.Header.Get("Upgrade"), "websocket") {
				next.ServeHTTP(w, req)
				return
			}
			compressed.ServeHTTP(w, req)
		})
	})
	r.Use(middleware.RequestLog)
	r.Use(middleware.SecureHeaders)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   splitOrigins(corsOrigins),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/ws/live", h.Live.ServeWS)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimitAPI)
		r.Get("/api/config", h.Config.Get)
		r.With(middleware.RateLimitOTP).Post("/api/auth/send-otp", h.Auth.SendOTP)
		r.Post("/api/auth/verify-otp", h.Auth.VerifyOTP)

		r.Get("/api/bookings/sevas", h.Booking.ListSevas)
		r.Get("/api/events", h.Content.Events)
		r.Get("/api/branches", h.Content.Branches)
		r.Get("/api/search", h.Content.Search)
		r.Get("/api/alankara/latest", h.Alankara.Latest)
		r.Get("/api/push/vapid-public", h.Push.VAPIDPublic)
		r.Get("/api/files/{key}", h.File.Serve)
		r.Get("/api/volunteer-opportunities", h.Opportunity.Open)

		r.Route("/api/content", func(r chi.Router) {
			r.Get("/events", h.Content.Events)
			r.Get("/guru", h.Content.Gurus)
			r.Get("/flash", h.Content.FlashUpdates)
			r.Get("/timings", h.Content.Timings)
			r.Get("/gallery/albums", h.Content.Albums)
			r.Get("/gallery/albums/{id}/media", h.Content.AlbumMedia)
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(tokens))
		r.Use(middleware.RateLimitAPI)

		r.Post("/api/auth/register", h.Auth.Register)
		r.Get("/api/auth/me", h.Auth.Me)

		r.Post("/api/bookings", h.Booking.BookRoom)
		r.Post("/api/bookings/room", h.Booking.BookRoom)
		r.Get("/api/bookings/history", h.Booking.History)
		r.Get("/api/bookings/seva/user/{userId}", h.Booking.SevaHistoryForUser)
		r.Get("/api/bookings/room/user/{userId}", h.Booking.RoomHistoryForUser)
		r.Post("/api/bookings/seva/initiate", h.Booking.InitiateSeva)
		r.Post("/api/bookings/seva/complete", h.Booking.CompleteSeva)

		r.Post("/api/volunteers", h.User.RegisterVolunteer)
		r.Post("/api/volunteers/register", h.User.RegisterVolunteer)
		r.Get("/api/volunteers/me", h.User.MyVolunteer)
		r.Get("/api/volunteers/user/{userId}", h.User.VolunteerForUser)

		r.Get("/api/volunteer-opportunities/my-applications", h.Opportunity.MyApplications)
		r.Post("/api/volunteer-opportunities/{id}/apply", h.Opportunity.Apply)

		r.Post("/api/push/subscribe", h.Push.Subscribe)
		r.Delete("/api/push/subscribe", h.Push.Unsubscribe)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)

			r.Get("/api/bookings/all", h.Booking.ListRoomBookings)
			r.Put("/api/bookings/{id}/approve", h.Booking.ApproveRoom)
			r.Put("/api/bookings/{id}/reject", h.Booking.RejectRoom)
			r.Get("/api/bookings/seva/all", h.Booking.ListSevaBookings)
			r.Post("/api/upload", h.File.Upload)

			r.Get("/api/volunteer-opportunities/all", h.Opportunity.All)
			r.Post("/api/volunteer-opportunities", h.Opportunity.Create)
			r.Put("/api/volunteer-opportunities/{id}", h.Opportunity.Update)
			r.Delete("/api/volunteer-opportunities/{id}", h.Opportunity.Delete)
			r.Get("/api/volunteer-opportunities/{id}/applications", h.Opportunity.Applications)
			r.Put("/api/volunteer-opportunities/applications/{applicationId}/status", h.Opportunity.SetApplicationStatus)

			r.Route("/api/admin", func(r chi.Router) {
				r.Post("/sevas", h.Booking.CreateSeva)
				r.Delete("/sevas/{id}", h.Booking.DeleteSeva)

				r.Post("/alankara", h.Alankara.Publish)
				r.Get("/alankara/status", h.Alankara.Status)
				r.Post("/daily-alankara", h.Alankara.Publish)
				r.Get("/daily-alankara/latest", h.Alankara.Latest)

				r.Get("/events", h.Content.Events)
				r.Post("/events", h.Content.CreateEvent)
				r.Put("/events/{id}", h.Content.UpdateEvent)
				r.Delete("/events/{id}", h.Content.DeleteEvent)
				r.Post("/gurus", h.Content.CreateGuru)
				r.Put("/gurus/{id}", h.Content.UpdateGuru)
				r.Delete("/gurus/{id}", h.Content.DeleteGuru)
				r.Post("/branches", h.Content.CreateBranch)
				r.Put("/branches/{id}", h.Content.UpdateBranch)
				r.Delete("/branches/{id}", h.Content.DeleteBranch)
				r.Post("/flash-updates", h.Content.CreateFlash)
				r.Put("/flash-updates/{id}", h.Content.UpdateFlash)
				r.Delete("/flash-updates/{id}", h.Content.DeleteFlash)
				r.Get("/timings", h.Content.AllTimings)
				r.Post("/timings", h.Content.CreateTiming)
				r.Put("/timings/{id}", h.Content.UpdateTiming)
				r.Post("/gallery/albums", h.Content.CreateAlbum)
				r.Put("/gallery/albums/{id}", h.Content.UpdateAlbum)
				r.Delete("/gallery/albums/{id}", h.Content.DeleteAlbum)
				r.Get("/gallery/albums/{id}/media", h.Content.AlbumMedia)
				r.Post("/gallery/albums/{id}/media", h.Content.AddMedia)
				r.Delete("/gallery/media/{id}", h.Content.DeleteMedia)

				r.Get("/users", h.User.ListUsers)
				r.Get("/users/export", h.User.ExportUsers)
				r.Put("/users/{id}/volunteer", h.User.SetVolunteer)
			})
		})
	})
	return r
}

func splitOrigins(s string) []string {
	var out []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
