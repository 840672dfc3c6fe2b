package content

import (
	"context"

	contentRepo "folio/database/repository/content"
	"folio/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// PortfolioData is the aggregate payload the landing page renders.
type PortfolioData struct {
	Profile          *models.Profile      `json:"profile"`
	Projects         []models.Project     `json:"projects"`
	FeaturedProjects []models.Project     `json:"featuredProjects"`
	Experience       []models.Experience  `json:"experience"`
	Testimonials     []models.Testimonial `json:"testimonials"`
}

// ContentService serves the read-only portfolio content. The scheduling core
// only consumes its Ready signal; everything else feeds the page directly.
type ContentService interface {
	GetPortfolio(ctx context.Context) (*PortfolioData, error)
	GetProfile(ctx context.Context) (*models.Profile, error)
	GetProjects(ctx context.Context, featuredOnly bool) ([]models.Project, error)
	GetExperience(ctx context.Context) ([]models.Experience, error)
	GetTestimonials(ctx context.Context) ([]models.Testimonial, error)
	Ready(ctx context.Context) bool
}

// DefaultContentService implements ContentService with a short-lived Redis
// cache in front of the Mongo repository.
type DefaultContentService struct {
	Repo   contentRepo.ContentRepository
	Cache  *redis.Client
	Logger *zap.Logger
}
