package main

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"readit/cmd/app"
	"readit/internal/config"
	handlers "readit/internal/handler"
	"readit/internal/logger"
	"readit/internal/middleware"
)

func main() {
	cfg := config.LoadConfig()

	if cfg.AI.APIKey == "" {
		logger.Warn.Println("AI_API_KEY is not set; moderation and personalization will fail open")
	}

	db, repo, services, store := app.App(cfg)
	defer db.CloseDB()

	handler := handlers.NewHandlers(repo, services, store, cfg)

	router := mux.NewRouter()

	router.HandleFunc("/health", handlers.HealthHandler)

	router.HandleFunc("/api/trending", handler.Trending)
	router.HandleFunc("/api/recommendations", handler.Recommendations)
	router.HandleFunc("/api/moderate", handler.Moderate)

	router.HandleFunc("/api/posts", handler.GetPosts).Methods(http.MethodGet)
	router.HandleFunc("/api/posts", handler.CreatePost).Methods(http.MethodPost)
	router.HandleFunc("/api/posts/{id}", handler.GetPost).Methods(http.MethodGet)
	router.HandleFunc("/api/posts/{id}/vote", handler.VotePost)
	router.HandleFunc("/api/posts/{id}/save", handler.SavePost)
	router.HandleFunc("/api/communities/{id}/join", handler.JoinCommunity)
	router.HandleFunc("/api/users/{id}/follow", handler.FollowUser)

	router.HandleFunc("/api/media", handler.UploadMedia)
	router.HandleFunc("/api/media/{object:.+}", handler.DeleteMedia).Methods(http.MethodDelete)

	handlerChain := middleware.Chain(
		router,
		middleware.AuthMiddleware(cfg),
		middleware.CORSMiddleware,
		middleware.LoggingMiddleware,
		middleware.RecoveryMiddleware,
	)

	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	logger.Info.Printf("Server listening on %s", addr)

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		logger.Error.Fatalf("server failed: %v", err)
	}
}
