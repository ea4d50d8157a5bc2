package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"partscatalog/models"
)

// ProductRepository is the storage contract the product controller
// depends on. The Mongo implementation is the only one in production;
// tests substitute an in-memory fake.
type ProductRepository interface {
	Insert(ctx context.Context, p *models.Product) error
	FindAll(ctx context.Context) ([]models.Product, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	Find(ctx context.Context, filter bson.M) ([]models.Product, error)
	FindLatest(ctx context.Context, limit int64) ([]models.Product, error)
}

type mongoProductRepository struct {
	coll *mongo.Collection
}

func NewProductRepository(coll *mongo.Collection) ProductRepository {
	return &mongoProductRepository{coll: coll}
}

// Insert validates the document and persists it. Schema enforcement
// here is the final authority; the handler-level checks are a fast
// path only.
func (r *mongoProductRepository) Insert(ctx context.Context, p *models.Product) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}

	_, err := r.coll.InsertOne(ctx, p)
	return err
}

func (r *mongoProductRepository) FindAll(ctx context.Context) ([]models.Product, error) {
	return r.Find(ctx, bson.M{})
}

func (r *mongoProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Update merges the supplied fields into the stored document,
// re-validates the merged result, then writes. The validation happens
// before the write so an invalid update never reaches the database.
func (r *mongoProductRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Product, error) {
	existing, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return existing, nil
	}

	merged := *existing
	merged.Apply(fields)
	if err := merged.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Product
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *mongoProductRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoProductRepository) Find(ctx context.Context, filter bson.M) ([]models.Product, error) {
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *mongoProductRepository) FindLatest(ctx context.Context, limit int64) ([]models.Product, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}
