package middleware

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"partscatalog/storage"
)

func newUploadRouter(t *testing.T, maxBytes int64) (*gin.Engine, *storage.FileStore, *UploadedFiles) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := storage.NewFileStore(t.TempDir(), "", zerolog.Nop())
	require.NoError(t, err)

	captured := &UploadedFiles{}
	r := gin.New()
	r.POST("/upload", PhotoUpload(store, maxBytes), func(c *gin.Context) {
		*captured = GetUploadedFiles(c)
		c.Status(http.StatusOK)
	})
	return r, store, captured
}

func addImagePart(t *testing.T, w *multipart.Writer, field, filename string, payload []byte) {
	t.Helper()
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	h.Set("Content-Type", "image/jpeg")
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(payload)
	require.NoError(t, err)
}

func multipartBody(t *testing.T, build func(w *multipart.Writer)) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	build(w)
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func TestPhotoUploadSavesFilesAndSetsContext(t *testing.T) {
	r, store, captured := newUploadRouter(t, 0)

	body, contentType := multipartBody(t, func(w *multipart.Writer) {
		addImagePart(t, w, "photo", "main.jpg", []byte("primary"))
		addImagePart(t, w, "photos", "one.png", []byte("one"))
		addImagePart(t, w, "photos", "two.webp", []byte("two"))
	})

	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, captured.HasPhoto())
	assert.Len(t, captured.Photos, 2)

	saved, err := os.ReadFile(filepath.Join(store.Root(), captured.Photo))
	require.NoError(t, err)
	assert.Equal(t, "primary", string(saved))
}

func TestPhotoUploadRejectsNonImage(t *testing.T) {
	r, _, _ := newUploadRouter(t, 0)

	body, contentType := multipartBody(t, func(w *multipart.Writer) {
		part, err := w.CreateFormFile("photo", "notes.txt")
		require.NoError(t, err)
		part.Write([]byte("not an image"))
	})

	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Only image files are allowed")
}

func TestPhotoUploadRejectsTooManyPhotos(t *testing.T) {
	r, _, _ := newUploadRouter(t, 0)

	body, contentType := multipartBody(t, func(w *multipart.Writer) {
		for i := 0; i < 11; i++ {
			addImagePart(t, w, "photos", "p.jpg", []byte("x"))
		}
	})

	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "At most 10 photos")
}

func TestPhotoUploadRejectsOversizedUpload(t *testing.T) {
	r, _, _ := newUploadRouter(t, 8)

	body, contentType := multipartBody(t, func(w *multipart.Writer) {
		addImagePart(t, w, "photo", "big.jpg", []byte("way more than eight bytes"))
	})

	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "size limit")
}

func TestPhotoUploadPassesThroughNonMultipart(t *testing.T) {
	r, _, captured := newUploadRouter(t, 0)

	req := httptest.NewRequest(http.MethodPost, "/upload", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, captured.HasPhoto())
	assert.False(t, captured.HasPhotos())
}

func TestIsImage(t *testing.T) {
	assert.True(t, isImage("a.jpg", "image/jpeg"))
	assert.True(t, isImage("a.AVIF", ""))
	assert.False(t, isImage("a.txt", "text/plain"))
	assert.False(t, isImage("a.jpg", "application/octet-stream"))
	assert.False(t, isImage("noext", "image/jpeg"))
}
