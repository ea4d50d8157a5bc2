package controllers

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"partscatalog/models"
	"partscatalog/repository"
)

// fakeProductRepo is an in-memory stand-in honoring the same contract
// as the Mongo repository, including storage-layer validation.
type fakeProductRepo struct {
	mu       sync.Mutex
	products []models.Product
}

func (f *fakeProductRepo) Insert(_ context.Context, p *models.Product) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("%w: %v", repository.ErrValidation, err)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	f.products = append(f.products, *p)
	return nil
}

func (f *fakeProductRepo) FindAll(ctx context.Context) ([]models.Product, error) {
	return f.Find(ctx, bson.M{})
}

func (f *fakeProductRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.products {
		if p.ID == id {
			found := p
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeProductRepo) Update(_ context.Context, id primitive.ObjectID, fields bson.M) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, p := range f.products {
		if p.ID == id {
			merged := p
			merged.Apply(fields)
			if err := merged.Validate(); err != nil {
				return nil, fmt.Errorf("%w: %v", repository.ErrValidation, err)
			}
			f.products[i] = merged
			result := merged
			return &result, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeProductRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, p := range f.products {
		if p.ID == id {
			f.products = append(f.products[:i], f.products[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeProductRepo) Find(_ context.Context, filter bson.M) ([]models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	matches := []models.Product{}
	for _, p := range f.products {
		if matchesFilter(p, filter) {
			matches = append(matches, p)
		}
	}
	return matches, nil
}

func (f *fakeProductRepo) FindLatest(_ context.Context, limit int64) ([]models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sorted := make([]models.Product, len(f.products))
	copy(sorted, f.products)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	if int64(len(sorted)) > limit {
		sorted = sorted[:limit]
	}
	return sorted, nil
}

func matchesFilter(p models.Product, filter bson.M) bool {
	for key, want := range filter {
		switch key {
		case "category":
			if p.Category != want {
				return false
			}
		case "colorOfPart":
			if p.ColorOfPart != want {
				return false
			}
		case "isFeatured":
			if p.IsFeatured != want {
				return false
			}
		case "isExclusive":
			if p.IsExclusive != want {
				return false
			}
		}
	}
	return true
}

// fakeInquiryRepo mirrors the inquiry storage contract in memory.
type fakeInquiryRepo struct {
	mu        sync.Mutex
	inquiries []models.Inquiry
}

func (f *fakeInquiryRepo) Insert(_ context.Context, inq *models.Inquiry) error {
	if err := inq.Validate(); err != nil {
		return fmt.Errorf("%w: %v", repository.ErrValidation, err)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if inq.ID.IsZero() {
		inq.ID = primitive.NewObjectID()
	}
	f.inquiries = append(f.inquiries, *inq)
	return nil
}

func (f *fakeInquiryRepo) FindAll(_ context.Context) ([]models.Inquiry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Inquiry, len(f.inquiries))
	copy(out, f.inquiries)
	return out, nil
}
