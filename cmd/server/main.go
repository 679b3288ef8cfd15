package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"

	"blog/internal/app"
	"blog/internal/auth"
	"blog/internal/db"
	httpx "blog/internal/http"
	"blog/internal/picture"
	"blog/internal/store"
)

func main() {
	_ = godotenv.Load()
	cfg := app.LoadConfig()

	d, err := db.Open(cfg.DatabaseURL)
	app.Must(err)
	defer d.Close()
	app.Must(db.Migrate(d))

	users := store.NewPostgresUserStore(d)
	posts := store.NewPostgresPostStore(d)
	sessions := store.NewPostgresSessionStore(d)

	authSvc := auth.NewService(users, sessions, cfg.SessionLifetime, cfg.RememberLifetime)

	pics, err := picture.NewStore(cfg.PictureDir)
	app.Must(err)

	// Sweep expired sessions at startup and then hourly.
	sweep := func() {
		if n, err := sessions.DeleteExpired(context.Background()); err != nil {
			log.Printf("sweep expired sessions: %v", err)
		} else if n > 0 {
			log.Printf("swept %d expired sessions", n)
		}
	}
	sweep()
	go func() {
		for range time.Tick(time.Hour) {
			sweep()
		}
	}()

	srv := httpx.NewServer(users, posts, authSvc, pics, cfg)
	log.Printf("listening on %s", cfg.Addr)
	app.Must(http.ListenAndServe(cfg.Addr, httpx.WithAccessLog(srv)))
}
