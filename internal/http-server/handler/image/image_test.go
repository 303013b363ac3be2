package image

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/zlog"

	"image-resizer/internal/http-server/handler/image/dto"
	"image-resizer/internal/repository/file/local"
	image_uc "image-resizer/internal/usecase/image"
	"image-resizer/internal/usecase/processor"
	"image-resizer/internal/usecase/processor/operations"
)

func newTestHandler(t *testing.T) (*ImageHandler, *local.Storage) {
	h, store, _ := newTestHandlerFs(t)
	return h, store
}

func newTestHandlerFs(t *testing.T) (*ImageHandler, *local.Storage, afero.Fs) {
	t.Helper()
	zlog.Init()

	fs := afero.NewMemMapFs()
	store := local.NewStorage(fs, &zlog.Logger)
	require.NoError(t, store.EnsureDir("uploads"))
	require.NoError(t, store.EnsureDir("processed"))

	uploads := image_uc.NewUsecase(store, "uploads", &zlog.Logger)
	batch := processor.NewProcessor(store, "uploads", "processed", &zlog.Logger)

	return NewImageHandler(uploads, batch, store, &zlog.Logger), store, fs
}

func pngBytes(t *testing.T, w, h int, c color.NRGBA) []byte {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func multipartBody(t *testing.T, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()

	body := new(bytes.Buffer)
	mw := multipart.NewWriter(body)
	for name, data := range files {
		header := make(map[string][]string)
		header["Content-Disposition"] = []string{`form-data; name="images"; filename="` + name + `"`}
		header["Content-Type"] = []string{"image/png"}
		part, err := mw.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return body, mw.FormDataContentType()
}

func doUpload(t *testing.T, h *ImageHandler, files map[string][]byte) dto.UploadResponse {
	t.Helper()

	body, contentType := multipartBody(t, files)
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.Upload(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp dto.UploadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestHealth(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.NotEmpty(t, resp.Timestamp)
}

func TestPresets(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.Presets(rec, httptest.NewRequest(http.MethodGet, "/api/presets", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.PresetsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Contains(t, resp.Presets, "instagram_feed_square")
	assert.Contains(t, resp.Platforms, "YouTube")
}

func TestUploadReturnsMetadata(t *testing.T) {
	h, _ := newTestHandler(t)

	resp := doUpload(t, h, map[string][]byte{
		"photo.png": pngBytes(t, 320, 240, color.NRGBA{9, 9, 9, 255}),
	})

	assert.True(t, resp.Success)
	require.Equal(t, 1, resp.Count)

	file := resp.Files[0]
	assert.Equal(t, "photo.png", file.OriginalName)
	assert.Equal(t, "png", file.Format)
	assert.Equal(t, 320, file.Width)
	assert.Equal(t, 240, file.Height)
	assert.Empty(t, file.Error)
}

func TestUploadWithoutFilesIs400(t *testing.T) {
	h, _ := newTestHandler(t)

	body, contentType := multipartBody(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.Upload(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.Error)
}

func TestUploadRejectsDisallowedMimeType(t *testing.T) {
	h, _ := newTestHandler(t)

	body := new(bytes.Buffer)
	mw := multipart.NewWriter(body)
	header := map[string][]string{
		"Content-Disposition": {`form-data; name="images"; filename="doc.pdf"`},
		"Content-Type":        {"application/pdf"},
	}
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()

	h.Upload(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProcessEmptyBodyIs400(t *testing.T) {
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/process", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	h.Process(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Contains(t, strings.ToLower(resp.Error), "files")
}

func TestProcessSingleFileWithPreset(t *testing.T) {
	h, _ := newTestHandler(t)

	upload := doUpload(t, h, map[string][]byte{
		"in.png": pngBytes(t, 1080, 1350, color.NRGBA{120, 30, 30, 255}),
	})
	id := upload.Files[0].ID

	body := `{"files":["` + id + `"],"preset":"instagram_feed_square","format":"jpeg","quality":85,"fit":"cover"}`
	req := httptest.NewRequest(http.MethodPost, "/api/process", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Process(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "image/jpeg", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")

	info, err := operations.Probe(rec.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "jpeg", info.Format)
	assert.Equal(t, 1080, info.Width)
	assert.Equal(t, 1080, info.Height)
}

func TestProcessTwoFilesReturnsZip(t *testing.T) {
	h, _ := newTestHandler(t)

	upload := doUpload(t, h, map[string][]byte{
		"a.png": pngBytes(t, 900, 300, color.NRGBA{1, 1, 1, 255}),
		"b.png": pngBytes(t, 300, 900, color.NRGBA{2, 2, 2, 255}),
	})
	require.Equal(t, 2, upload.Count)

	body := `{"files":["` + upload.Files[0].ID + `","` + upload.Files[1].ID +
		`"],"width":500,"height":500,"fit":"contain","background":"#ffffff"}`
	req := httptest.NewRequest(http.MethodPost, "/api/process", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Process(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/zip", rec.Header().Get("Content-Type"))

	disposition := rec.Header().Get("Content-Disposition")
	assert.True(t, strings.HasSuffix(strings.TrimSuffix(disposition, `"`), ".zip"), disposition)

	data := rec.Body.Bytes()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Len(t, zr.File, 2)

	for _, entry := range zr.File {
		rc, err := entry.Open()
		require.NoError(t, err)
		entryData, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)

		info, err := operations.Probe(entryData)
		require.NoError(t, err)
		assert.Equal(t, 500, info.Width)
		assert.Equal(t, 500, info.Height)
	}
}

func TestProcessCleansUpAllFiles(t *testing.T) {
	h, store, fs := newTestHandlerFs(t)

	upload := doUpload(t, h, map[string][]byte{
		"in.png": pngBytes(t, 200, 200, color.NRGBA{5, 5, 5, 255}),
	})
	id := upload.Files[0].ID

	body := `{"files":["` + id + `"],"width":100,"height":100,"fit":"cover"}`
	req := httptest.NewRequest(http.MethodPost, "/api/process", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Process(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	_, err := store.Stat(filepath.Join("uploads", id))
	assert.Error(t, err, "uploaded file should be deleted after the response")

	processed, err := afero.ReadDir(fs, "processed")
	require.NoError(t, err)
	assert.Empty(t, processed, "processed outputs should be deleted after the response")
}

func TestProcessUnknownFileIs500(t *testing.T) {
	h, _ := newTestHandler(t)

	body := `{"files":["does-not-exist.png"],"width":100,"height":100}`
	req := httptest.NewRequest(http.MethodPost, "/api/process", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Process(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
}

func TestProcessContainFlattensTransparencyForJPEG(t *testing.T) {
	h, _ := newTestHandler(t)

	upload := doUpload(t, h, map[string][]byte{
		"transparent.png": pngBytes(t, 300, 300, color.NRGBA{255, 0, 0, 0}),
	})
	id := upload.Files[0].ID

	body := `{"files":["` + id + `"],"width":100,"height":100,"fit":"contain","format":"jpeg","background":"#ffffff"}`
	req := httptest.NewRequest(http.MethodPost, "/api/process", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Process(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	img, _, err := image.Decode(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)

	bounds := img.Bounds()
	for _, pt := range []image.Point{
		{bounds.Min.X, bounds.Min.Y},
		{bounds.Max.X - 1, bounds.Max.Y - 1},
		{(bounds.Min.X + bounds.Max.X) / 2, (bounds.Min.Y + bounds.Max.Y) / 2},
	} {
		_, _, _, a := img.At(pt.X, pt.Y).RGBA()
		assert.Equal(t, uint32(0xffff), a, "no transparent pixels expected at %v", pt)
	}
}
