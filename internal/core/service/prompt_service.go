package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/learnhub/lesson-api/internal/api/metrics"
	"github.com/learnhub/lesson-api/internal/core/domain"
	"github.com/learnhub/lesson-api/internal/core/ports"
)

type promptService struct {
	ref       *Referential
	prompts   ports.PromptRepository
	generator ports.LessonGenerator
	log       zerolog.Logger
}

// NewPromptService returns the PromptService implementation that
// orchestrates lesson generation.
func NewPromptService(
	ref *Referential,
	prompts ports.PromptRepository,
	generator ports.LessonGenerator,
	log zerolog.Logger,
) ports.PromptService {
	return &promptService{ref: ref, prompts: prompts, generator: generator, log: log}
}

// CreatePrompt validates linkage, generates a lesson and stores the pair.
// A prompt is persisted only when generation succeeded; a failed write
// after generation loses the lesson text.
func (s *promptService) CreatePrompt(ctx context.Context, in ports.CreatePromptInput) (*domain.Prompt, error) {
	// 1-3. Referential checks, before anything billable or mutating.
	if _, err := s.ref.UserExists(ctx, in.UserID); err != nil {
		metrics.PromptsTotal.WithLabelValues("rejected").Inc()
		return nil, err
	}
	if err := s.ref.CategoryExists(ctx, in.CategoryID); err != nil {
		metrics.PromptsTotal.WithLabelValues("rejected").Inc()
		return nil, err
	}
	if err := s.ref.SubCategoryBelongsToCategory(ctx, in.SubCategoryID, in.CategoryID); err != nil {
		metrics.PromptsTotal.WithLabelValues("rejected").Inc()
		return nil, err
	}

	// 4. Generation. Dominant latency; no retry.
	start := time.Now()
	lesson, err := s.generator.Generate(ctx, in.PromptText)
	if err == nil && strings.TrimSpace(lesson) == "" {
		err = errors.New("empty completion")
	}
	if err != nil {
		metrics.GenerationDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		metrics.PromptsTotal.WithLabelValues("upstream_error").Inc()
		s.log.Warn().Err(err).Int64("user_id", in.UserID).Msg("lesson generation failed")
		return nil, asUpstream(err)
	}
	metrics.GenerationDuration.WithLabelValues("ok").Observe(time.Since(start).Seconds())

	// 5. Persist.
	created, err := s.prompts.Create(ctx, &domain.Prompt{
		UserID:        in.UserID,
		CategoryID:    in.CategoryID,
		SubCategoryID: in.SubCategoryID,
		PromptText:    in.PromptText,
		ResponseText:  lesson,
		CreatedAt:     time.Now().UTC(),
	})
	if err != nil {
		metrics.PromptsTotal.WithLabelValues("persistence_error").Inc()
		s.log.Error().Err(err).Int64("user_id", in.UserID).Msg("generated lesson could not be stored")
		return nil, asPersistence("store prompt", err)
	}

	metrics.PromptsTotal.WithLabelValues("created").Inc()
	s.log.Info().
		Int64("prompt_id", created.ID).
		Int64("user_id", in.UserID).
		Int64("category_id", in.CategoryID).
		Int64("sub_category_id", in.SubCategoryID).
		Msg("prompt created")

	return created, nil
}

// ListUserPrompts returns a user's history, newest first, with topic names.
func (s *promptService) ListUserPrompts(ctx context.Context, userID int64) ([]*domain.Prompt, error) {
	if _, err := s.ref.UserExists(ctx, userID); err != nil {
		return nil, err
	}
	prompts, err := s.prompts.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.ref.AttachTopics(ctx, prompts); err != nil {
		return nil, err
	}
	return prompts, nil
}

func asUpstream(err error) error {
	var ae *domain.AppError
	if errors.As(err, &ae) && ae.Kind == domain.KindUpstream {
		return err
	}
	return domain.Upstream("lesson generation failed", err)
}

func asPersistence(op string, err error) error {
	var ae *domain.AppError
	if errors.As(err, &ae) {
		return err
	}
	return domain.Persistence(op, err)
}
