package handler

import (
	"net/http"

	fileapp "github.com/storefront-api/internal/application/file"
	"github.com/storefront-api/internal/transport/http/middleware"
)

// UploadHandler handles image uploads to object storage.
type UploadHandler struct {
	svc fileapp.Service
}

func NewUploadHandler(svc fileapp.Service) *UploadHandler { return &UploadHandler{svc: svc} }

func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", codeUnauthorized)
		return
	}
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form", codeValidation)
		return
	}
	f, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing image field", codeValidation)
		return
	}
	defer f.Close()

	uploaded, err := h.svc.Upload(r.Context(), fileapp.UploadInput{
		Reader:      f,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		UploaderID:  claims.UserID,
	})
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, uploaded)
}
