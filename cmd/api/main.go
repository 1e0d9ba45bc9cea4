package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"blogcore/internal/config"
	"blogcore/internal/content"
	"blogcore/internal/db"
	"blogcore/internal/db/postgres"
	"blogcore/internal/events"
	"blogcore/internal/handlers"
	"blogcore/internal/middleware"
	"blogcore/internal/utils"
	"blogcore/internal/ws"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	dbConn, err := db.Connect(cfg.DatabaseURL, cfg.DBMaxOpen, cfg.DBMaxIdle, cfg.DBMaxLifetime)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer dbConn.Close()

	if err := db.Migrate(dbConn); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	var bus events.Bus
	if cfg.RedisAddr != "" {
		redisBus, err := events.NewRedisBus(cfg.RedisAddr, logger)
		if err != nil {
			log.Fatalf("redis connect: %v", err)
		}
		defer redisBus.Close()
		bus = redisBus
		log.Printf("comment events via redis at %s", cfg.RedisAddr)
	} else {
		bus = events.NewMemoryBus()
		log.Println("comment events via in-process bus")
	}

	repo := postgres.NewContentRepository(dbConn)
	verifier := utils.JWTVerifier{Secret: cfg.AccessSecret}
	svc := content.NewService(repo, verifier, bus, cfg.AllowedImageHosts, logger)
	hub := ws.NewHub(bus, logger)

	h := handlers.NewHandler(dbConn, svc, hub, cfg)

	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.Metrics)

	// Auth
	r.Post("/signup", h.Auth.SignUp)
	r.Post("/login", h.Auth.Login)
	r.Post("/refresh", h.Auth.Refresh)

	// Session routes need a verified access token in the context.
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(cfg.AccessSecret))

		r.Get("/me", h.Auth.Me)
		r.Post("/logout", h.Auth.Logout)
	})

	// Content. Reads are public; the post write carries its bearer
	// token explicitly into the service.
	r.Get("/posts", h.Posts.GetPosts)
	r.Get("/posts/featured", h.Posts.GetFeatured)
	r.Get("/posts/{id}", h.Posts.GetPostByID)
	r.Post("/posts", h.Posts.CreatePost)
	r.Get("/posts/{id}/comments", h.Comments.ListComments)
	r.Post("/posts/{id}/comments", h.Comments.CreateComment)
	r.Get("/posts/{id}/comments/live", h.Comments.Live)

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Printf("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	log.Println("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}
