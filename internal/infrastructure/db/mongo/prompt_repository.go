package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/learnhub/lesson-api/internal/core/domain"
)

const collectionPrompts = "prompts"

type PromptRepository struct {
	col *mongo.Collection
	ids *counters
}

func NewPromptRepository(db *mongo.Database) *PromptRepository {
	return &PromptRepository{col: db.Collection(collectionPrompts), ids: newCounters(db)}
}

type mongoPrompt struct {
	ID            int64     `bson:"_id"`
	UserID        int64     `bson:"user_id"`
	CategoryID    int64     `bson:"category_id"`
	SubCategoryID int64     `bson:"sub_category_id"`
	PromptText    string    `bson:"prompt_text"`
	ResponseText  string    `bson:"response_text"`
	CreatedAt     time.Time `bson:"created_at"`
}

func (m mongoPrompt) toDomain() *domain.Prompt {
	return &domain.Prompt{
		ID:            m.ID,
		UserID:        m.UserID,
		CategoryID:    m.CategoryID,
		SubCategoryID: m.SubCategoryID,
		PromptText:    m.PromptText,
		ResponseText:  m.ResponseText,
		CreatedAt:     m.CreatedAt.UTC(),
	}
}

func (r *PromptRepository) Create(ctx context.Context, p *domain.Prompt) (*domain.Prompt, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.ids.next(ctx, collectionPrompts)
	if err != nil {
		return nil, err
	}

	doc := mongoPrompt{
		ID:            id,
		UserID:        p.UserID,
		CategoryID:    p.CategoryID,
		SubCategoryID: p.SubCategoryID,
		PromptText:    p.PromptText,
		ResponseText:  p.ResponseText,
		CreatedAt:     p.CreatedAt,
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, persistence("insert prompt", err)
	}
	return doc.toDomain(), nil
}

// ListByUser returns the user's prompts, newest first. Ties on created_at
// fall back to descending id.
func (r *PromptRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Prompt, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{
		{Key: "created_at", Value: -1},
		{Key: "_id", Value: -1},
	})
	cur, err := r.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, persistence("list prompts", err)
	}
	defer cur.Close(ctx)

	var docs []mongoPrompt
	if err := cur.All(ctx, &docs); err != nil {
		return nil, persistence("decode prompts", err)
	}

	out := make([]*domain.Prompt, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *PromptRepository) DeleteByUser(ctx context.Context, userID int64) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, persistence("delete prompts", err)
	}
	return res.DeletedCount, nil
}

// EnsureIndexes creates necessary indexes on the prompts collection.
func (r *PromptRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	if err != nil {
		return persistence("prompt indexes", err)
	}
	return nil
}
