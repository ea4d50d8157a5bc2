package middleware

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"partscatalog/storage"
)

// UploadedFilesKey is the gin context key the upload middleware stores
// saved-file descriptors under.
const UploadedFilesKey = "uploadedFiles"

const (
	photoField     = "photo"
	photosField    = "photos"
	maxPhotosFiles = 10
)

var allowedExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".avif": true,
}

// UploadedFiles holds the storage keys of files saved by the upload
// middleware for the downstream handler to consume.
type UploadedFiles struct {
	Photo  string
	Photos []string
}

// HasPhoto reports whether a primary photo was uploaded.
func (u UploadedFiles) HasPhoto() bool { return u.Photo != "" }

// HasPhotos reports whether any secondary photos were uploaded.
func (u UploadedFiles) HasPhotos() bool { return len(u.Photos) > 0 }

// GetUploadedFiles reads the descriptors the upload middleware left on
// the context. The zero value means the request carried no files.
func GetUploadedFiles(c *gin.Context) UploadedFiles {
	if v, ok := c.Get(UploadedFilesKey); ok {
		if files, ok := v.(UploadedFiles); ok {
			return files
		}
	}
	return UploadedFiles{}
}

// PhotoUpload intercepts multipart submissions carrying a "photo"
// field (at most one file) and a "photos" field (at most ten files),
// validates each against the image allow-list and the cumulative size
// cap, saves them under the store's directory, and attaches the saved
// keys to the request context. Requests without a multipart body pass
// through untouched so partial updates keep working.
func PhotoUpload(store *storage.FileStore, maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		contentType := c.ContentType()
		if !strings.HasPrefix(contentType, "multipart/form-data") {
			c.Next()
			return
		}

		form, err := c.MultipartForm()
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "Invalid multipart form",
			})
			return
		}

		photoFiles := form.File[photoField]
		photosFiles := form.File[photosField]

		if len(photoFiles) > 1 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "Only one primary photo is allowed",
			})
			return
		}
		if len(photosFiles) > maxPhotosFiles {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "At most 10 photos are allowed",
			})
			return
		}

		var total int64
		for _, header := range append(photoFiles, photosFiles...) {
			if !isImage(header.Filename, header.Header.Get("Content-Type")) {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
					"status":  "error",
					"message": "Only image files are allowed",
				})
				return
			}
			total += header.Size
		}
		if maxBytes > 0 && total > maxBytes {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "Uploaded files exceed the size limit",
			})
			return
		}

		var files UploadedFiles
		if len(photoFiles) == 1 {
			key, err := store.Save(photoFiles[0])
			if err != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"status":  "error",
					"message": "Could not save uploaded file",
				})
				return
			}
			files.Photo = key
		}
		for _, header := range photosFiles {
			key, err := store.Save(header)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"status":  "error",
					"message": "Could not save uploaded file",
				})
				return
			}
			files.Photos = append(files.Photos, key)
		}

		c.Set(UploadedFilesKey, files)
		c.Next()
	}
}

// isImage accepts a file when its extension is on the allow-list and
// its declared media type, when present, is an image type.
func isImage(filename, contentType string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return false
	}
	if contentType != "" && !strings.HasPrefix(contentType, "image/") {
		return false
	}
	return true
}
