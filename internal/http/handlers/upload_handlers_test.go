package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/you/schoolauth/domain"
	"github.com/you/schoolauth/internal/mocks"
)

func setupUploadRouter(storage *mocks.MockFileStorage) *gin.Engine {
	gin.SetMode(gin.TestMode)
	var fs domain.FileStorage
	if storage != nil {
		fs = storage
	}
	h := NewUploadHandlers(fs)
	r := gin.New()
	r.POST("/files/photos", h.UploadPhoto)
	return r
}

func multipartPhoto(t *testing.T, fieldFile, filename, contentType string, content []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", `form-data; name="`+fieldFile+`"; filename="`+filename+`"`)
	hdr.Set("Content-Type", contentType)
	part, err := mw.CreatePart(hdr)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return buf, mw.FormDataContentType()
}

func TestUploadHandlers_UploadPhoto(t *testing.T) {
	storage := mocks.NewMockFileStorage()
	r := setupUploadRouter(storage)

	body, contentType := multipartPhoto(t, "photo", "student.jpg", "image/jpeg",
		[]byte("fake-jpeg-bytes"), map[string]string{"prefix": "student_42"})

	req := httptest.NewRequest(http.MethodPost, "/files/photos", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (body %s)", w.Code, w.Body.String())
	}
	if len(storage.UploadedNames) != 1 {
		t.Fatalf("expected one uploaded object, got %d", len(storage.UploadedNames))
	}
	name := storage.UploadedNames[0]
	if !strings.HasPrefix(name, "student_42_") || !strings.HasSuffix(name, ".jpg") {
		t.Errorf("object name %q should be prefix_timestamp.ext", name)
	}
	if !strings.Contains(w.Body.String(), "https://cdn.example.com/photos/") {
		t.Errorf("response should carry the stored URL, got %s", w.Body.String())
	}
}

func TestUploadHandlers_UploadPhoto_DefaultPrefix(t *testing.T) {
	storage := mocks.NewMockFileStorage()
	r := setupUploadRouter(storage)

	body, contentType := multipartPhoto(t, "photo", "pic.png", "image/png", []byte("png"), nil)

	req := httptest.NewRequest(http.MethodPost, "/files/photos", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if len(storage.UploadedNames) != 1 || !strings.HasPrefix(storage.UploadedNames[0], "photo_") {
		t.Errorf("expected default photo_ prefix, got %v", storage.UploadedNames)
	}
}

func TestUploadHandlers_UploadPhoto_Rejections(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		contentType string
		field       string
		status      int
	}{
		{name: "executable extension", filename: "malware.exe", contentType: "image/jpeg", field: "photo", status: http.StatusBadRequest},
		{name: "pdf extension", filename: "report.pdf", contentType: "application/pdf", field: "photo", status: http.StatusBadRequest},
		{name: "image ext but non-image mime", filename: "script.jpg", contentType: "text/html", field: "photo", status: http.StatusBadRequest},
		{name: "wrong form field", filename: "student.jpg", contentType: "image/jpeg", field: "file", status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage := mocks.NewMockFileStorage()
			r := setupUploadRouter(storage)

			body, contentType := multipartPhoto(t, tt.field, tt.filename, tt.contentType, []byte("x"), nil)

			req := httptest.NewRequest(http.MethodPost, "/files/photos", body)
			req.Header.Set("Content-Type", contentType)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.status {
				t.Errorf("expected %d, got %d (body %s)", tt.status, w.Code, w.Body.String())
			}
			if len(storage.UploadedNames) != 0 {
				t.Errorf("nothing should be uploaded, got %v", storage.UploadedNames)
			}
		})
	}
}

func TestUploadHandlers_UploadPhoto_StorageNotConfigured(t *testing.T) {
	r := setupUploadRouter(nil)

	body, contentType := multipartPhoto(t, "photo", "student.jpg", "image/jpeg", []byte("x"), nil)

	req := httptest.NewRequest(http.MethodPost, "/files/photos", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", w.Code)
	}
}
