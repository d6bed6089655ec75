package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements every hook interface by writing debug-level entries
// to a logger. Failures are logged at warn level.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that log to logger. A nil logger uses the
// charmbracelet/log default logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	if logger == nil {
		logger = log.Default()
	}
	return &LogHooks{logger: logger.WithPrefix("hooks")}
}

// Register installs h for all event categories.
func (h *LogHooks) Register() {
	SetLayoutHooks(h)
	SetRenderHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

func (h *LogHooks) OnMeasureStart(_ context.Context, boxes int, width, height string) {
	h.logger.Debug("measure start", "boxes", boxes, "width", width, "height", height)
}

func (h *LogHooks) OnMeasureComplete(_ context.Context, lines int, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("measure failed", "duration", d, "err", err)
		return
	}
	h.logger.Debug("measure complete", "lines", lines, "duration", d)
}

func (h *LogHooks) OnPositionComplete(_ context.Context, boxes int, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("position failed", "duration", d, "err", err)
		return
	}
	h.logger.Debug("position complete", "boxes", boxes, "duration", d)
}

func (h *LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render start", "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("render failed", "formats", formats, "duration", d, "err", err)
		return
	}
	h.logger.Debug("render complete", "formats", formats, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, path string) {
	h.logger.Debug("request", "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.logger.Debug("response", "method", method, "path", path, "status", status, "duration", d)
}

func (h *LogHooks) OnError(_ context.Context, method, path string, err error) {
	h.logger.Warn("request failed", "method", method, "path", path, "err", err)
}

var (
	_ LayoutHooks = (*LogHooks)(nil)
	_ RenderHooks = (*LogHooks)(nil)
	_ CacheHooks  = (*LogHooks)(nil)
	_ HTTPHooks   = (*LogHooks)(nil)
)
