// Command seed loads the lesson taxonomy into MongoDB and optionally creates
// an administrator account. It is safe to run repeatedly.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/learnhub/lesson-api/internal/core/domain"
	"github.com/learnhub/lesson-api/internal/core/ports"
	"github.com/learnhub/lesson-api/internal/core/service"
	"github.com/learnhub/lesson-api/internal/infrastructure/config"
	mongodb "github.com/learnhub/lesson-api/internal/infrastructure/db/mongo"
	"github.com/learnhub/lesson-api/pkg/logger"
)

type seedCategory struct {
	name string
	subs []string
}

var taxonomy = []seedCategory{
	{"Science", []string{"Space", "Biology", "Physics", "Chemistry", "Geology", "Environmental Science"}},
	{"Technology", []string{"Programming", "AI & Machine Learning", "Cybersecurity", "Cloud Computing", "Web Development", "Mobile Development"}},
	{"Arts", []string{"Painting", "Music", "Dance", "Theater", "Sculpture", "Photography"}},
	{"History", []string{"Ancient", "Medieval", "Modern", "World Wars", "American History", "European History"}},
	{"Mathematics", []string{"Algebra", "Calculus", "Geometry", "Statistics", "Discrete Math", "Linear Algebra"}},
	{"Languages", []string{"English", "Spanish", "Chinese", "Arabic", "French", "German", "Hebrew"}},
	{"Sports", []string{"Football", "Basketball", "Tennis", "Swimming", "Athletics", "Gymnastics"}},
	{"Business", []string{"Marketing", "Finance", "Economics", "Management", "Entrepreneurship"}},
	{"Philosophy", []string{"Ethics", "Metaphysics", "Epistemology", "Political Philosophy"}},
	{"Health & Wellness", []string{"Nutrition", "Fitness", "Mental Health", "Yoga"}},
}

func main() {
	adminName := flag.String("admin-name", "", "name of the administrator to create")
	adminPhone := flag.String("admin-phone", "", "phone of the administrator to create (05XXXXXXXX)")
	adminPassword := flag.String("admin-password", "", "password of the administrator to create")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := zerolog.New(os.Stderr)
		boot.Fatal().Err(err).Msg("failed to load config")
	}
	log := logger.New(logger.Options{Level: cfg.LogLevel, Pretty: true})

	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure indexes")
	}

	if err := seedTaxonomy(ctx, mongodb.NewCategoryRepository(db), log); err != nil {
		log.Error().Err(err).Msg("seeding failed")
		os.Exit(1)
	}

	if *adminPhone != "" {
		users := mongodb.NewUserRepository(db)
		hasher := service.NewBcryptHasher(cfg.BcryptCost)
		if err := createAdmin(ctx, users, hasher, *adminName, *adminPhone, *adminPassword, log); err != nil {
			log.Error().Err(err).Msg("admin creation failed")
			os.Exit(1)
		}
	}

	log.Info().Msg("seed complete")
}

// taxonomyStore is satisfied by the Mongo category repository.
type taxonomyStore interface {
	UpsertCategory(ctx context.Context, name string) (*domain.Category, bool, error)
	UpsertSubCategory(ctx context.Context, name string, categoryID int64) (*domain.SubCategory, bool, error)
}

func seedTaxonomy(ctx context.Context, repo taxonomyStore, log zerolog.Logger) error {
	for _, sc := range taxonomy {
		cat, created, err := repo.UpsertCategory(ctx, sc.name)
		if err != nil {
			return err
		}

		added := 0
		for _, name := range sc.subs {
			_, subCreated, err := repo.UpsertSubCategory(ctx, name, cat.ID)
			if err != nil {
				return err
			}
			if subCreated {
				added++
			}
		}

		log.Info().
			Str("category", cat.Name).
			Bool("created", created).
			Int("sub_categories_added", added).
			Msg("category seeded")
	}
	return nil
}

func createAdmin(
	ctx context.Context,
	users ports.UserRepository,
	hasher ports.PasswordHasher,
	name, phone, password string,
	log zerolog.Logger,
) error {
	if name == "" || len(password) < 6 {
		return errors.New("admin needs -admin-name and a -admin-password of at least 6 characters")
	}
	if !domain.ValidPhone(phone) {
		return fmt.Errorf("admin phone %q is not a valid phone number (05XXXXXXXX)", phone)
	}

	existing, err := users.FindByPhone(ctx, phone)
	switch {
	case err == nil:
		log.Warn().Int64("user_id", existing.ID).Str("role", string(existing.Role)).Msg("phone already registered, admin not created")
		return nil
	case !errors.Is(err, domain.ErrUserNotFound):
		return err
	}

	hash, err := hasher.Hash(password)
	if err != nil {
		return err
	}

	admin, err := users.Create(ctx, &domain.User{
		Name:         name,
		Phone:        phone,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	log.Info().Int64("user_id", admin.ID).Str("phone", admin.Phone).Msg("admin created")
	return nil
}
