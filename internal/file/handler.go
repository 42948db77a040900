package file

import (
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/mediastore/service/internal/response"
)

// UploadResponse is the body of a successful upload.
type UploadResponse struct {
	ID int64 `json:"id"`
}

// MetadataResponse is the body of a successful metadata fetch.
type MetadataResponse struct {
	OriginalFileName string `json:"originalFileName"`
}

// Handler holds HTTP handlers for file endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates a new file Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Routes mounts the file endpoints on the given router.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/create", h.Upload)
	r.Get("/get/{id}", h.Download)
	r.Get("/data/get/{id}", h.GetMetadata)
	r.Delete("/delete/{id}", h.Delete)
}

// Upload godoc
//
//	@Summary		Save file and meta information
//	@Description	Stores the uploaded file's metadata and schedules the content write to object storage.
//	@Tags			files
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			file	formData	file	true	"file to upload"
//	@Success		201		{object}	UploadResponse
//	@Failure		415		{object}	response.ErrorBody
//	@Failure		500		{object}	response.ErrorBody
//	@Router			/file/create [post]
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	f, header, err := r.FormFile("file")
	if err != nil {
		log.Error("could not read multipart file field", "error", err)
		response.InternalError(w, ErrContentRead.Error())
		return
	}
	defer f.Close()

	rec, err := h.svc.Upload(r.Context(), f, header.Filename, header.Size)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnsupportedFormat):
			response.UnsupportedMediaType(w, ErrUnsupportedFormat.Error())
		case errors.Is(err, ErrContentRead):
			response.InternalError(w, ErrContentRead.Error())
		default:
			log.Error("upload failed", "error", err)
			response.InternalError(w, "failed to save file")
		}
		return
	}

	response.Created(w, UploadResponse{ID: rec.ID})
}

// Download godoc
//
//	@Summary		Get file by file id
//	@Description	Streams the stored bytes with a Content-Disposition attachment header.
//	@Tags			files
//	@Produce		application/octet-stream
//	@Param			id	path		int	true	"file id"
//	@Success		200	{file}		binary
//	@Failure		404	{object}	response.ErrorBody
//	@Router			/file/get/{id} [get]
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	rec, err := h.svc.FetchMetadata(r.Context(), id)
	if err != nil {
		writeFetchError(w, err)
		return
	}

	content, err := h.svc.FetchContent(r.Context(), id)
	if err != nil {
		writeFetchError(w, err)
		return
	}
	defer content.Close()

	w.Header().Set("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(rec.OriginalName))
	w.Header().Set("Content-Type", "application/octet-stream")
	if _, err := io.Copy(w, content); err != nil {
		log.Error("streaming file content failed", "id", id, "error", err)
	}
}

// GetMetadata godoc
//
//	@Summary		Get file data by file id
//	@Tags			files
//	@Produce		json
//	@Param			id	path		int	true	"file id"
//	@Success		200	{object}	MetadataResponse
//	@Failure		404	{object}	response.ErrorBody
//	@Router			/file/data/get/{id} [get]
func (h *Handler) GetMetadata(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	rec, err := h.svc.FetchMetadata(r.Context(), id)
	if err != nil {
		writeFetchError(w, err)
		return
	}

	response.OK(w, MetadataResponse{OriginalFileName: rec.OriginalName})
}

// Delete godoc
//
//	@Summary		Delete file by file id
//	@Description	Best-effort and idempotent: deleting a missing file still reports success.
//	@Tags			files
//	@Produce		json
//	@Param			id	path	int	true	"file id"
//	@Success		200
//	@Failure		404	{object}	response.ErrorBody
//	@Router			/file/delete/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.svc.DeleteByID(r.Context(), id); err != nil {
		// Only ErrAccessDenied ever reaches here.
		response.NotFound(w, err.Error())
		return
	}

	w.WriteHeader(http.StatusOK)
}

// parseID extracts the numeric path id. A non-numeric id can never name a
// record, so it is reported as not found.
func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.NotFound(w, ErrNotFound.Error())
		return 0, false
	}
	return id, true
}

func writeFetchError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrNotFound) {
		response.NotFound(w, ErrNotFound.Error())
		return
	}
	log.Error("fetch failed", "error", err)
	response.InternalError(w, "failed to fetch file")
}
