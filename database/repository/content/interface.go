// File: database/repository/content/interface.go
package contentRepo

import (
	"context"

	"folio/database"
	"folio/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ContentRepository is the read-only store behind the portfolio page.
type ContentRepository interface {
	GetProfile(ctx context.Context) (*models.Profile, error)
	GetProjects(ctx context.Context) ([]models.Project, error)
	GetFeaturedProjects(ctx context.Context) ([]models.Project, error)
	GetExperience(ctx context.Context) ([]models.Experience, error)
	GetTestimonials(ctx context.Context) ([]models.Testimonial, error)
}

type mongoContentRepo struct {
	profiles     *mongo.Collection
	projects     *mongo.Collection
	experience   *mongo.Collection
	testimonials *mongo.Collection
}

// NewMongoContentRepo constructs a MongoDB ContentRepository.
func NewMongoContentRepo() ContentRepository {
	db := database.MongoClient.Database("folio")
	return &mongoContentRepo{
		profiles:     db.Collection("profile"),
		projects:     db.Collection("projects"),
		experience:   db.Collection("experience"),
		testimonials: db.Collection("testimonials"),
	}
}
