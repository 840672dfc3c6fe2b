package content

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"folio/models"

	"go.uber.org/zap"
)

const (
	portfolioCacheKey = "content:portfolio"
	portfolioCacheTTL = 5 * time.Minute
)

// GetPortfolio assembles the full page payload, served from cache when warm.
func (s *DefaultContentService) GetPortfolio(ctx context.Context) (*PortfolioData, error) {
	if s.Cache != nil {
		if cached, err := s.Cache.Get(ctx, portfolioCacheKey).Result(); err == nil {
			var data PortfolioData
			if err := json.Unmarshal([]byte(cached), &data); err == nil {
				return &data, nil
			}
			s.Logger.Warn("content: dropping corrupt portfolio cache entry")
		}
	}

	profile, err := s.Repo.GetProfile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	projects, err := s.Repo.GetProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}
	featured, err := s.Repo.GetFeaturedProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load featured projects: %w", err)
	}
	experience, err := s.Repo.GetExperience(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load experience: %w", err)
	}
	testimonials, err := s.Repo.GetTestimonials(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load testimonials: %w", err)
	}

	data := &PortfolioData{
		Profile:          profile,
		Projects:         projects,
		FeaturedProjects: featured,
		Experience:       experience,
		Testimonials:     testimonials,
	}

	if s.Cache != nil {
		if raw, err := json.Marshal(data); err == nil {
			if err := s.Cache.Set(ctx, portfolioCacheKey, raw, portfolioCacheTTL).Err(); err != nil {
				s.Logger.Warn("content: failed to cache portfolio payload", zap.Error(err))
			}
		}
	}
	return data, nil
}

func (s *DefaultContentService) GetProfile(ctx context.Context) (*models.Profile, error) {
	return s.Repo.GetProfile(ctx)
}

func (s *DefaultContentService) GetProjects(ctx context.Context, featuredOnly bool) ([]models.Project, error) {
	if featuredOnly {
		return s.Repo.GetFeaturedProjects(ctx)
	}
	return s.Repo.GetProjects(ctx)
}

func (s *DefaultContentService) GetExperience(ctx context.Context) ([]models.Experience, error) {
	return s.Repo.GetExperience(ctx)
}

func (s *DefaultContentService) GetTestimonials(ctx context.Context) ([]models.Testimonial, error) {
	return s.Repo.GetTestimonials(ctx)
}

// Ready reports whether the content store is reachable and a profile exists.
// The scheduling widget stays hidden until this turns true.
func (s *DefaultContentService) Ready(ctx context.Context) bool {
	profile, err := s.Repo.GetProfile(ctx)
	if err != nil {
		s.Logger.Warn("content: readiness probe failed", zap.Error(err))
		return false
	}
	return profile != nil
}
