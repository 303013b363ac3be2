package image

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/wb-go/wbf/zlog"

	"image-resizer/internal/domain"
	"image-resizer/internal/http-server/handler/image/dto"
	"image-resizer/internal/preset"
	image_uc "image-resizer/internal/usecase/image"
	"image-resizer/internal/usecase/processor"
)

const maxMemory = 32 << 20

type ImageHandler struct {
	uploads   uploadUsecase
	processor batchProcessor
	store     fileStore
	validate  *validator.Validate
	logger    *zlog.Zerolog
}

func NewImageHandler(uploads uploadUsecase, batch batchProcessor, store fileStore, logger *zlog.Zerolog) *ImageHandler {
	return &ImageHandler{
		uploads:   uploads,
		processor: batch,
		store:     store,
		validate:  validator.New(),
		logger:    logger,
	}
}

func (h *ImageHandler) Health(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *ImageHandler) Presets(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, dto.PresetsResponse{
		Success:   true,
		Presets:   preset.All(),
		Platforms: preset.Platforms(),
	})
}

func (h *ImageHandler) APIInfo(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, dto.APIInfoResponse{
		Message: "Image Resizer API",
		Version: "1.0.0",
		Endpoints: map[string]string{
			"upload":  "POST /api/upload",
			"process": "POST /api/process",
			"presets": "GET /api/presets",
			"health":  "GET /api/health",
		},
	})
}

func (h *ImageHandler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, domain.MaxUploadFiles*domain.MaxFileSize+maxMemory)

	if err := r.ParseMultipartForm(maxMemory); err != nil {
		h.logger.Warn().Err(err).Msg("Failed to parse multipart form")
		h.respondError(w, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	var headers []*multipart.FileHeader
	if r.MultipartForm != nil {
		headers = r.MultipartForm.File[domain.UploadFormField]
	}

	if len(headers) == 0 {
		h.respondError(w, http.StatusBadRequest, msgNoFilesUploaded)
		return
	}
	if len(headers) > domain.MaxUploadFiles {
		h.respondError(w, http.StatusBadRequest, msgTooManyFiles)
		return
	}

	// Validate every part before persisting anything: a single disallowed
	// file rejects the whole request.
	for _, header := range headers {
		if header.Size > domain.MaxFileSize {
			h.logger.Warn().Str("filename", header.Filename).Int64("size", header.Size).Msg("File too large")
			h.respondError(w, http.StatusBadRequest, msgFileTooLarge)
			return
		}
		if !domain.AllowedMimeTypes[header.Header.Get("Content-Type")] {
			h.logger.Warn().
				Str("filename", header.Filename).
				Str("mime_type", header.Header.Get("Content-Type")).
				Msg("Disallowed MIME type")
			h.respondError(w, http.StatusBadRequest, msgUnsupportedType)
			return
		}
	}

	parts := make([]image_uc.Part, 0, len(headers))
	var opened []multipart.File
	defer func() {
		for _, f := range opened {
			f.Close()
		}
	}()

	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			h.logger.Error().Err(err).Str("filename", header.Filename).Msg("Failed to open uploaded part")
			h.respondError(w, http.StatusInternalServerError, msgUploadFailed)
			return
		}
		opened = append(opened, f)

		parts = append(parts, image_uc.Part{
			FileName:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        f,
		})
	}

	entries, err := h.uploads.Upload(ctx, parts)
	if err != nil {
		h.handleUploadError(w, err)
		return
	}

	files := make([]dto.UploadedFileInfo, 0, len(entries))
	for _, entry := range entries {
		info := dto.UploadedFileInfo{
			ID:           entry.File.ID,
			OriginalName: entry.File.OriginalName,
		}

		if entry.Info == nil {
			info.Error = "Could not read this image"
			files = append(files, info)
			continue
		}

		info.Path = entry.File.StoredPath
		info.Size = entry.File.Size
		info.MimeType = entry.File.MimeType
		info.Format = entry.Info.Format
		info.Width = entry.Info.Width
		info.Height = entry.Info.Height
		info.Space = entry.Info.Space
		info.Channels = entry.Info.Channels
		info.HasAlpha = entry.Info.HasAlpha
		files = append(files, info)
	}

	h.respondJSON(w, http.StatusOK, dto.UploadResponse{
		Success: true,
		Files:   files,
		Count:   len(files),
	})
}

func (h *ImageHandler) Process(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req dto.ProcessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn().Err(err).Msg("Failed to decode process request")
		h.respondError(w, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		h.handleValidationError(w, err)
		return
	}

	task := buildTask(req)

	artifact, cleanup, err := h.processor.ProcessBatch(ctx, req.Files, task)
	// Every path touched by this request is deleted once the response has
	// been sent, on the error path included.
	defer h.store.RemoveAll(cleanup)

	if err != nil {
		if errors.Is(err, processor.ErrNoFiles) {
			h.respondError(w, http.StatusBadRequest, msgNoFilesSpecified)
			return
		}
		h.logger.Error().Err(err).Int("files", len(req.Files)).Msg("Batch processing failed")
		h.respondError(w, http.StatusInternalServerError, msgProcessingFailed)
		return
	}

	h.serveArtifact(w, artifact)
}

func (h *ImageHandler) serveArtifact(w http.ResponseWriter, artifact *processor.Artifact) {
	f, err := h.store.Open(artifact.Path)
	if err != nil {
		h.logger.Error().Err(err).Str("path", artifact.Path).Msg("Failed to open artifact")
		h.respondError(w, http.StatusInternalServerError, msgProcessingFailed)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", artifact.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+artifact.FileName+`"`)
	if info, err := h.store.Stat(artifact.Path); err == nil {
		w.Header().Set("Content-Length", strconv.FormatInt(info.Size(), 10))
	}

	if _, err := io.Copy(w, f); err != nil {
		// Most likely a client abort; cleanup still runs.
		h.logger.Warn().Err(err).Str("file", artifact.FileName).Msg("Failed to stream artifact")
	}
}

func buildTask(req dto.ProcessRequest) domain.ProcessTask {
	task := domain.ProcessTask{
		PresetKey:  req.Preset,
		Width:      req.Width,
		Height:     req.Height,
		Format:     domain.NormalizeFormat(req.Format),
		Quality:    req.Quality,
		Fit:        domain.FitMode(req.Fit),
		Background: req.Background,
	}

	if task.Quality == 0 {
		task.Quality = domain.DefaultQuality
	}
	if !domain.ValidFit(req.Fit) {
		task.Fit = domain.DefaultFit
	}
	if task.Background == "" {
		task.Background = domain.DefaultBg
	}
	return task
}

func (h *ImageHandler) handleUploadError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, image_uc.ErrNoFilesUploaded):
		h.respondError(w, http.StatusBadRequest, msgNoFilesUploaded)
	case errors.Is(err, image_uc.ErrTooManyFiles):
		h.respondError(w, http.StatusBadRequest, msgTooManyFiles)
	case errors.Is(err, image_uc.ErrFileTooLarge):
		h.respondError(w, http.StatusBadRequest, msgFileTooLarge)
	case errors.Is(err, image_uc.ErrInvalidFileFormat):
		h.respondError(w, http.StatusBadRequest, msgUnsupportedType)
	default:
		h.logger.Error().Err(err).Msg("Upload failed")
		h.respondError(w, http.StatusInternalServerError, msgUploadFailed)
	}
}

func (h *ImageHandler) handleValidationError(w http.ResponseWriter, err error) {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			if fe.Field() == "Files" {
				h.respondError(w, http.StatusBadRequest, msgNoFilesSpecified)
				return
			}
		}
	}
	h.respondError(w, http.StatusBadRequest, msgInvalidOptions)
}

func (h *ImageHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode response")
	}
}

func (h *ImageHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, dto.ErrorResponse{
		Success: false,
		Error:   message,
	})
}
