// Package httpx exposes the application over HTTP: route wiring,
// session-loading middleware, the authorization gate and the form
// handlers.
package httpx

import (
	"context"
	"io"
	"net/http"

	"blog/internal/app"
	"blog/internal/models"
	"blog/internal/store"
)

// SessionService is what the handlers need from the session manager.
// Implemented by *auth.Service.
type SessionService interface {
	Login(ctx context.Context, email, password string, remember bool) (string, *models.Session, error)
	Logout(ctx context.Context, token string) error
	UserFromToken(ctx context.Context, token string) (*models.User, error)
}

// PictureSaver persists an uploaded profile picture and returns the
// stored filename. Implemented by *picture.Store.
type PictureSaver interface {
	Save(r io.Reader, originalName string) (string, error)
}

type Server struct {
	Users    store.UserStore
	Posts    store.PostStore
	Sessions SessionService
	Pictures PictureSaver
	Cfg      app.Config
	Mux      *http.ServeMux
}

func NewServer(users store.UserStore, posts store.PostStore, sessions SessionService, pictures PictureSaver, cfg app.Config) *Server {
	s := &Server{
		Users:    users,
		Posts:    posts,
		Sessions: sessions,
		Pictures: pictures,
		Cfg:      cfg,
		Mux:      http.NewServeMux(),
	}

	s.Mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir("web/static"))))
	s.Mux.Handle("/profile_pics/", http.StripPrefix("/profile_pics/", http.FileServer(http.Dir(cfg.PictureDir))))

	s.Mux.Handle("/{$}", s.withSession(http.HandlerFunc(s.handleHome)))
	s.Mux.Handle("/home", s.withSession(http.HandlerFunc(s.handleHome)))
	s.Mux.Handle("/about", s.withSession(http.HandlerFunc(s.handleAbout)))
	s.Mux.Handle("/register", s.withSession(http.HandlerFunc(s.handleRegister)))
	s.Mux.Handle("/login", s.withSession(http.HandlerFunc(s.handleLogin)))
	s.Mux.Handle("/logout", s.withSession(http.HandlerFunc(s.handleLogout)))

	s.Mux.Handle("/account", s.withSession(s.requireAuth(http.HandlerFunc(s.handleAccount))))
	s.Mux.Handle("/post/new", s.withSession(s.requireAuth(http.HandlerFunc(s.handlePostNew))))

	// GET is public; the POST branch checks identity and ownership itself.
	s.Mux.Handle("/post/{id}", s.withSession(http.HandlerFunc(s.handlePost)))

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.Mux.ServeHTTP(w, r) }
