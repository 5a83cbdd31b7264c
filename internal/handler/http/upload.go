package http

import (
	"net/http"

	"github.com/MKhiriev/go-user-hub/internal/logger"
	"github.com/MKhiriev/go-user-hub/internal/utils"
	"github.com/MKhiriev/go-user-hub/models"
	"github.com/go-chi/chi/v5"
)

// maxMultipartMemory caps the in-memory portion of multipart parsing;
// larger files spill to temporary storage.
const maxMultipartMemory = 10 << 20

// uploadImage implements POST /api/v1/upload/image. The file travels in
// the "file" multipart form field; validation (name, type, size) happens
// in the upload service.
func (h *Handler) uploadImage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		log.Err(err).Msg("could not parse multipart form")
		utils.WriteError(w, "could not parse multipart form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		log.Err(err).Msg("missing file form field")
		utils.WriteError(w, "missing file form field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")

	artifact, err := h.services.UploadService.UploadImage(ctx, header.Filename, contentType, header.Size, file)
	if err != nil {
		log.Err(err).Str("filename", header.Filename).Msg("image upload failed")
		respondError(w, err)
		return
	}

	utils.WriteJSON(w, models.DataResponse[models.UploadArtifact]{
		Data:    artifact,
		Message: "upload successful",
	}, http.StatusCreated)
}

// presignURL implements GET /api/v1/upload/url/{key...}: it returns a
// fresh presigned URL for an object already in the bucket.
func (h *Handler) presignURL(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	key := chi.URLParam(r, "*")

	artifact, err := h.services.UploadService.PresignURL(ctx, key)
	if err != nil {
		log.Err(err).Str("key", key).Msg("presigning object failed")
		respondError(w, err)
		return
	}

	utils.WriteJSON(w, models.DataResponse[models.UploadArtifact]{Data: artifact}, http.StatusOK)
}
