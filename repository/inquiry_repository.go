package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"partscatalog/models"
)

type InquiryRepository interface {
	Insert(ctx context.Context, inq *models.Inquiry) error
	FindAll(ctx context.Context) ([]models.Inquiry, error)
}

type mongoInquiryRepository struct {
	coll *mongo.Collection
}

func NewInquiryRepository(coll *mongo.Collection) InquiryRepository {
	return &mongoInquiryRepository{coll: coll}
}

func (r *mongoInquiryRepository) Insert(ctx context.Context, inq *models.Inquiry) error {
	if err := inq.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if inq.ID.IsZero() {
		inq.ID = primitive.NewObjectID()
	}

	_, err := r.coll.InsertOne(ctx, inq)
	return err
}

func (r *mongoInquiryRepository) FindAll(ctx context.Context) ([]models.Inquiry, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	inquiries := []models.Inquiry{}
	if err := cursor.All(ctx, &inquiries); err != nil {
		return nil, err
	}
	return inquiries, nil
}
