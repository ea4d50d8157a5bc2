package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"partscatalog/middleware"
	"partscatalog/models"
	"partscatalog/repository"
	"partscatalog/storage"
)

const queryTimeout = 5 * time.Second

type ProductController struct {
	repo        repository.ProductRepository
	files       *storage.FileStore
	latestLimit int64
	logger      zerolog.Logger
}

func NewProductController(repo repository.ProductRepository, files *storage.FileStore, latestLimit int64, logger zerolog.Logger) *ProductController {
	return &ProductController{
		repo:        repo,
		files:       files,
		latestLimit: latestLimit,
		logger:      logger,
	}
}

// Create persists a new product from a multipart submission. The
// upload middleware has already saved the files and left their keys on
// the context.
func (pc *ProductController) Create(c *gin.Context) {
	title := c.PostForm("title")
	description := c.PostForm("description")
	detailedDescription := c.PostForm("detailedDescription")
	category := c.PostForm("category")
	colorOfPart := c.PostForm("colorOfPart")

	uploads := middleware.GetUploadedFiles(c)

	if title == "" || description == "" || detailedDescription == "" ||
		category == "" || colorOfPart == "" || !uploads.HasPhoto() || !uploads.HasPhotos() {
		respondError(c, http.StatusBadRequest, "All fields are required")
		return
	}

	if len(uploads.Photos) < 2 {
		respondError(c, http.StatusBadRequest, "At least 2 photos are required")
		return
	}

	product := models.Product{
		Title:               title,
		Description:         description,
		DetailedDescription: detailedDescription,
		Photo:               uploads.Photo,
		Photos:              uploads.Photos,
		Category:            category,
		ColorOfPart:         colorOfPart,
		IsFeatured:          parseBool(c.PostForm("isFeatured")),
		IsExclusive:         parseBool(c.PostForm("isExclusive")),
		CreatedAt:           time.Now(),
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), queryTimeout)
	defer cancel()

	if err := pc.repo.Insert(ctx, &product); err != nil {
		if errors.Is(err, repository.ErrValidation) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		pc.logger.Error().Err(err).Msg("failed to create product")
		respondInternal(c)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Product created successfully",
	})
}

func (pc *ProductController) GetAll(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), queryTimeout)
	defer cancel()

	products, err := pc.repo.FindAll(ctx)
	if err != nil {
		pc.logger.Error().Err(err).Msg("failed to list products")
		respondInternal(c)
		return
	}

	c.JSON(http.StatusOK, pc.resolveAll(products))
}

func (pc *ProductController) GetByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid product id")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), queryTimeout)
	defer cancel()

	product, err := pc.repo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		respondError(c, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		pc.logger.Error().Err(err).Str("id", id.Hex()).Msg("failed to fetch product")
		respondInternal(c)
		return
	}

	c.JSON(http.StatusOK, pc.resolve(*product))
}

// Update replaces only the fields supplied. When new photos arrive the
// previously referenced files are removed from disk best-effort; a
// failed removal never fails the request.
func (pc *ProductController) Update(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid product id")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), queryTimeout)
	defer cancel()

	existing, err := pc.repo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		respondError(c, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		pc.logger.Error().Err(err).Str("id", id.Hex()).Msg("failed to fetch product for update")
		respondInternal(c)
		return
	}

	fields := bson.M{}
	for _, key := range []string{"title", "description", "detailedDescription", "category", "colorOfPart"} {
		if value, ok := c.GetPostForm(key); ok {
			fields[key] = value
		}
	}
	if value, ok := c.GetPostForm("isFeatured"); ok {
		fields["isFeatured"] = parseBool(value)
	}
	if value, ok := c.GetPostForm("isExclusive"); ok {
		fields["isExclusive"] = parseBool(value)
	}

	uploads := middleware.GetUploadedFiles(c)
	if uploads.HasPhoto() {
		pc.files.Remove(existing.Photo)
		fields["photo"] = uploads.Photo
	}
	if uploads.HasPhotos() {
		if len(uploads.Photos) < 2 {
			respondError(c, http.StatusBadRequest, "At least 2 photos are required")
			return
		}
		for _, old := range existing.Photos {
			pc.files.Remove(old)
		}
		fields["photos"] = uploads.Photos
	}

	updated, err := pc.repo.Update(ctx, id, fields)
	if errors.Is(err, repository.ErrNotFound) {
		respondError(c, http.StatusNotFound, "Product not found")
		return
	}
	if errors.Is(err, repository.ErrValidation) {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		pc.logger.Error().Err(err).Str("id", id.Hex()).Msg("failed to update product")
		respondInternal(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Product updated successfully",
		"data":    pc.resolve(*updated),
	})
}

// Delete removes the document only. Associated files are intentionally
// retained.
func (pc *ProductController) Delete(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid product id")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), queryTimeout)
	defer cancel()

	err = pc.repo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		respondError(c, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		pc.logger.Error().Err(err).Str("id", id.Hex()).Msg("failed to delete product")
		respondInternal(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Product deleted successfully",
	})
}

// Filter builds an equality filter from whichever of the category and
// colorOfPart query parameters are present. No parameters means an
// unconstrained listing.
func (pc *ProductController) Filter(c *gin.Context) {
	filter := bson.M{}
	if category := c.Query("category"); category != "" {
		filter["category"] = category
	}
	if color := c.Query("colorOfPart"); color != "" {
		filter["colorOfPart"] = color
	}

	pc.listWith(c, filter, "No products found with the specified criteria")
}

func (pc *ProductController) Featured(c *gin.Context) {
	pc.listWith(c, bson.M{"isFeatured": true}, "No featured products found")
}

func (pc *ProductController) Exclusive(c *gin.Context) {
	pc.listWith(c, bson.M{"isExclusive": true}, "No exclusive products found")
}

func (pc *ProductController) Latest(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), queryTimeout)
	defer cancel()

	products, err := pc.repo.FindLatest(ctx, pc.latestLimit)
	if err != nil {
		pc.logger.Error().Err(err).Msg("failed to list latest products")
		respondInternal(c)
		return
	}
	if len(products) == 0 {
		respondError(c, http.StatusNotFound, "No latest products found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   pc.resolveAll(products),
	})
}

func (pc *ProductController) listWith(c *gin.Context, filter bson.M, emptyMessage string) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), queryTimeout)
	defer cancel()

	products, err := pc.repo.Find(ctx, filter)
	if err != nil {
		pc.logger.Error().Err(err).Msg("failed to query products")
		respondInternal(c)
		return
	}
	if len(products) == 0 {
		respondError(c, http.StatusNotFound, emptyMessage)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   pc.resolveAll(products),
	})
}

// resolve maps stored photo keys to public URLs at the serialization
// boundary; the database never holds URLs.
func (pc *ProductController) resolve(p models.Product) models.Product {
	p.Photo = pc.files.URL(p.Photo)
	photos := make([]string, len(p.Photos))
	for i, key := range p.Photos {
		photos[i] = pc.files.URL(key)
	}
	p.Photos = photos
	return p
}

func (pc *ProductController) resolveAll(products []models.Product) []models.Product {
	resolved := make([]models.Product, len(products))
	for i, p := range products {
		resolved[i] = pc.resolve(p)
	}
	return resolved
}

func parseBool(v string) bool {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false
	}
	return b
}
