package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/learnhub/lesson-api/internal/core/domain"
)

const (
	collectionCategories    = "categories"
	collectionSubCategories = "sub_categories"
)

type CategoryRepository struct {
	categories *mongo.Collection
	subs       *mongo.Collection
	ids        *counters
}

func NewCategoryRepository(db *mongo.Database) *CategoryRepository {
	return &CategoryRepository{
		categories: db.Collection(collectionCategories),
		subs:       db.Collection(collectionSubCategories),
		ids:        newCounters(db),
	}
}

type mongoCategory struct {
	ID   int64  `bson:"_id"`
	Name string `bson:"name"`
}

type mongoSubCategory struct {
	ID         int64  `bson:"_id"`
	Name       string `bson:"name"`
	CategoryID int64  `bson:"category_id"`
}

func (m mongoCategory) toDomain() *domain.Category {
	return &domain.Category{ID: m.ID, Name: m.Name}
}

func (m mongoSubCategory) toDomain() *domain.SubCategory {
	return &domain.SubCategory{ID: m.ID, Name: m.Name, CategoryID: m.CategoryID}
}

func (r *CategoryRepository) FindByID(ctx context.Context, id int64) (*domain.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mc mongoCategory
	if err := r.categories.FindOne(ctx, bson.M{"_id": id}).Decode(&mc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, persistence("find category", err)
	}
	return mc.toDomain(), nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.categories.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, persistence("list categories", err)
	}
	defer cur.Close(ctx)

	var docs []mongoCategory
	if err := cur.All(ctx, &docs); err != nil {
		return nil, persistence("decode categories", err)
	}

	out := make([]*domain.Category, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

// FindSubCategory matches on both the sub-category id and its parent, so a
// sub-category under another category is reported as not found.
func (r *CategoryRepository) FindSubCategory(ctx context.Context, subCategoryID, categoryID int64) (*domain.SubCategory, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ms mongoSubCategory
	err := r.subs.FindOne(ctx, bson.M{"_id": subCategoryID, "category_id": categoryID}).Decode(&ms)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSubCategoryNotFound
		}
		return nil, persistence("find sub-category", err)
	}
	return ms.toDomain(), nil
}

func (r *CategoryRepository) ListSubCategories(ctx context.Context, categoryID int64) ([]*domain.SubCategory, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.subs.Find(ctx,
		bson.M{"category_id": categoryID},
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}}),
	)
	if err != nil {
		return nil, persistence("list sub-categories", err)
	}
	defer cur.Close(ctx)

	var docs []mongoSubCategory
	if err := cur.All(ctx, &docs); err != nil {
		return nil, persistence("decode sub-categories", err)
	}

	out := make([]*domain.SubCategory, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

// UpsertCategory returns the category named name, creating it first when
// missing. Used by the seed command.
func (r *CategoryRepository) UpsertCategory(ctx context.Context, name string) (*domain.Category, bool, error) {
	var existing mongoCategory
	err := r.categories.FindOne(ctx, bson.M{"name": name}).Decode(&existing)
	if err == nil {
		return existing.toDomain(), false, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, persistence("find category by name", err)
	}

	id, err := r.ids.next(ctx, collectionCategories)
	if err != nil {
		return nil, false, err
	}
	doc := mongoCategory{ID: id, Name: name}
	if _, err := r.categories.InsertOne(ctx, doc); err != nil {
		return nil, false, persistence("insert category", err)
	}
	return doc.toDomain(), true, nil
}

// UpsertSubCategory is UpsertCategory for a sub-category of categoryID.
func (r *CategoryRepository) UpsertSubCategory(ctx context.Context, name string, categoryID int64) (*domain.SubCategory, bool, error) {
	var existing mongoSubCategory
	err := r.subs.FindOne(ctx, bson.M{"name": name, "category_id": categoryID}).Decode(&existing)
	if err == nil {
		return existing.toDomain(), false, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, persistence("find sub-category by name", err)
	}

	id, err := r.ids.next(ctx, collectionSubCategories)
	if err != nil {
		return nil, false, err
	}
	doc := mongoSubCategory{ID: id, Name: name, CategoryID: categoryID}
	if _, err := r.subs.InsertOne(ctx, doc); err != nil {
		return nil, false, persistence("insert sub-category", err)
	}
	return doc.toDomain(), true, nil
}

// EnsureIndexes creates necessary indexes on the taxonomy collections.
func (r *CategoryRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	if _, err := r.categories.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return persistence("category indexes", err)
	}

	if _, err := r.subs.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}, {Key: "category_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "category_id", Value: 1}}},
	}); err != nil {
		return persistence("sub-category indexes", err)
	}
	return nil
}
