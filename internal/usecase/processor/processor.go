package processor

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/zlog"

	"image-resizer/internal/domain"
	"image-resizer/internal/preset"
	"image-resizer/internal/usecase/processor/operations"
)

// Processor turns uploaded files into resized, re-encoded outputs. It is a
// thin adapter over the codec operations; all filesystem access goes
// through the injected store.
type Processor struct {
	store        fileStore
	uploadDir    string
	processedDir string
	logger       *zlog.Zerolog
}

func NewProcessor(store fileStore, uploadDir, processedDir string, logger *zlog.Zerolog) *Processor {
	return &Processor{
		store:        store,
		uploadDir:    uploadDir,
		processedDir: processedDir,
		logger:       logger,
	}
}

// Transform processes a single input file according to the task and writes
// the output into the processed directory under a fresh uuid token. The
// reported dimensions, format and size are re-read from the encoded bytes,
// so fits that do not hit the exact target (inside, outside) report what
// was actually produced. No cleanup is performed here; the caller owns
// every path this returns.
func (p *Processor) Transform(ctx context.Context, inputPath string, task domain.ProcessTask) (*domain.ProcessedResult, error) {
	width, height, presetInfo := p.resolveDimensions(task)

	data, err := p.store.ReadFile(inputPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProcessingFailed, err)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode %s: %v", ErrProcessingFailed, filepath.Base(inputPath), err)
	}

	background := operations.ParseColor(task.Background)
	out := operations.Resize(img, width, height, task.Fit, background)

	var buf bytes.Buffer
	if err := operations.Encode(&buf, out, task.Format, task.Quality); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProcessingFailed, err)
	}

	fileName := uuid.New().String() + "." + task.Format.Extension()
	outputPath := filepath.Join(p.processedDir, fileName)
	if err := p.store.WriteFile(outputPath, buf.Bytes()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProcessingFailed, err)
	}

	info, err := operations.Probe(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("%w: failed to verify output: %v", ErrProcessingFailed, err)
	}

	result := &domain.ProcessedResult{
		Path:     outputPath,
		FileName: fileName,
		Format:   info.Format,
		Width:    info.Width,
		Height:   info.Height,
		Size:     info.Size,
	}
	if presetInfo != nil {
		result.Preset = presetInfo.Name
		result.Platform = presetInfo.Platform
	}

	p.logger.Debug().
		Str("input", filepath.Base(inputPath)).
		Str("output", fileName).
		Int("width", info.Width).
		Int("height", info.Height).
		Str("format", info.Format).
		Msg("Transformed image")

	return result, nil
}

// resolveDimensions applies the preset geometry when the key is known and
// falls back to the custom dimensions otherwise. The caller's fit always
// wins: presets fix geometry, not cropping strategy.
func (p *Processor) resolveDimensions(task domain.ProcessTask) (int, int, *domain.Preset) {
	if task.PresetKey != "" {
		if ps, ok := preset.Lookup(task.PresetKey); ok {
			return ps.Width, ps.Height, &ps
		}
	}
	return task.Width, task.Height, nil
}

// InputPath maps an uploaded file id onto its path in the upload
// directory. The id is reduced to its base name, so ids cannot escape the
// directory.
func (p *Processor) InputPath(id string) string {
	return filepath.Join(p.uploadDir, filepath.Base(id))
}
