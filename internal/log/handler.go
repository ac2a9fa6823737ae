package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// pathKeys contains attribute keys whose values are always file paths.
var pathKeys = map[string]bool{
	"path":        true,
	"file":        true,
	"dir":         true,
	"data_dir":    true,
	"output_dir":  true,
	"archive_dir": true,
	"config":      true,
}

// PathHandler wraps an slog.Handler to shorten file path attributes.
// It intercepts log records and rewrites path-valued attributes before
// passing them to the underlying handler.
//
// Design decision: We use a handler wrapper rather than a custom logger
// because:
//  1. It integrates seamlessly with standard slog APIs
//  2. It works with any underlying handler (text, JSON, etc.)
type PathHandler struct {
	// handler is the underlying slog handler that receives rewritten records.
	handler slog.Handler

	// base is the directory paths are made relative to.
	base string

	// home is the user's home directory, or "" when unknown.
	home string
}

// PathHandlerOption configures a PathHandler.
type PathHandlerOption func(*PathHandler)

// WithBaseDir sets the directory paths are made relative to.
// Defaults to the working directory.
func WithBaseDir(dir string) PathHandlerOption {
	return func(h *PathHandler) {
		h.base = filepath.Clean(dir)
	}
}

// WithHomeDir sets the home directory abbreviated as "~".
// Defaults to os.UserHomeDir().
func WithHomeDir(dir string) PathHandlerOption {
	return func(h *PathHandler) {
		h.home = filepath.Clean(dir)
	}
}

// NewPathHandler creates a new PathHandler wrapping the given handler.
// If handler is nil, the returned PathHandler will use slog.Default().Handler().
func NewPathHandler(handler slog.Handler, opts ...PathHandlerOption) *PathHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}

	h := &PathHandler{handler: handler}
	if cwd, err := os.Getwd(); err == nil {
		h.base = cwd
	}
	if home, err := os.UserHomeDir(); err == nil {
		h.home = home
	}

	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Enabled reports whether the handler handles records at the given level.
// It delegates to the underlying handler.
func (h *PathHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle rewrites the record's attributes and passes it to the underlying handler.
func (h *PathHandler) Handle(ctx context.Context, r slog.Record) error {
	rewritten := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)

	r.Attrs(func(a slog.Attr) bool {
		rewritten.AddAttrs(h.rewriteAttr(a))
		return true
	})

	return h.handler.Handle(ctx, rewritten)
}

// WithAttrs returns a new handler with the given attributes added.
// Attributes are rewritten before being added.
func (h *PathHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	rewritten := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		rewritten[i] = h.rewriteAttr(a)
	}
	return &PathHandler{handler: h.handler.WithAttrs(rewritten), base: h.base, home: h.home}
}

// WithGroup returns a new handler with the given group name.
func (h *PathHandler) WithGroup(name string) slog.Handler {
	return &PathHandler{handler: h.handler.WithGroup(name), base: h.base, home: h.home}
}

// rewriteAttr rewrites a single attribute, recursively handling groups.
func (h *PathHandler) rewriteAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		rewritten := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			rewritten[i] = h.rewriteAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(rewritten...)}
	}

	if a.Value.Kind() != slog.KindString || !isPathKey(a.Key) {
		return a
	}
	return slog.String(a.Key, h.Shorten(a.Value.String()))
}

// isPathKey reports whether key names a path-valued attribute.
func isPathKey(key string) bool {
	k := strings.ToLower(key)
	return pathKeys[k] || strings.HasSuffix(k, "_path") || strings.HasSuffix(k, "_file")
}

// Shorten returns p relative to the base directory when p lies under it,
// "~"-prefixed when p lies under the home directory, and p unchanged otherwise.
func (h *PathHandler) Shorten(p string) string {
	if !filepath.IsAbs(p) {
		return p
	}
	clean := filepath.Clean(p)

	if rel, ok := within(h.base, clean); ok {
		return rel
	}
	if rel, ok := within(h.home, clean); ok {
		if rel == "." {
			return "~"
		}
		return "~" + string(filepath.Separator) + rel
	}
	return p
}

// within returns p relative to dir when p is dir or below it.
func within(dir, p string) (string, bool) {
	if dir == "" {
		return "", false
	}
	rel, err := filepath.Rel(dir, p)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return rel, true
}

// NewLogger creates a new slog.Logger writing text records through a
// PathHandler.
//
// Parameters:
//   - w: The io.Writer to write log output to (typically os.Stderr)
//   - verbose: If true, sets log level to Debug; otherwise Warn
func NewLogger(w io.Writer, verbose bool, opts ...PathHandlerOption) *slog.Logger {
	textHandler := slog.NewTextHandler(w, handlerOptions(verbose))
	return slog.New(NewPathHandler(textHandler, opts...))
}

// NewJSONLogger creates a new slog.Logger with path rewriting that
// outputs JSON format. Useful for structured log aggregation.
func NewJSONLogger(w io.Writer, verbose bool, opts ...PathHandlerOption) *slog.Logger {
	jsonHandler := slog.NewJSONHandler(w, handlerOptions(verbose))
	return slog.New(NewPathHandler(jsonHandler, opts...))
}

// handlerOptions returns the level options for verbose or quiet output.
func handlerOptions(verbose bool) *slog.HandlerOptions {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return &slog.HandlerOptions{Level: level}
}
