package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"readit/internal/ai"
	"readit/internal/config"
	"readit/internal/repository"
	"readit/internal/service"
	"readit/internal/storage"
)

type Handlers struct {
	TrendingService       service.TrendingService
	RecommendationService service.RecommendationService
	PostService           service.PostService
	ModerationGate        ai.ModerationGate
	PostRepo              repository.PostRepository
	EngagementRepo        repository.EngagementRepository
	Storage               storage.Storage
	Cfg                   *config.Config
	Validate              *validator.Validate
}

func NewHandlers(repo *repository.Repository, services *service.Service, store storage.Storage, cfg *config.Config) *Handlers {
	return &Handlers{
		TrendingService:       services.Trending,
		RecommendationService: services.Recommendation,
		PostService:           services.Post,
		ModerationGate:        services.Moderation,
		PostRepo:              repo.Post,
		EngagementRepo:        repo.Engagement,
		Storage:               store,
		Cfg:                   cfg,
		Validate:              validator.New(),
	}
}

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, map[string]string{"status": "ok"}, http.StatusOK)
}

// userID returns the identity the auth middleware put in the context, empty
// for anonymous requests.
func userID(r *http.Request) string {
	id, _ := r.Context().Value("userID").(string)
	return id
}
