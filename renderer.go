package vizgen

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

const (
	// DefaultOutputDir is the output directory used when none is given. Relative paths are
	// resolved against the current working directory.
	DefaultOutputDir = "threejs_html"

	DefaultFileMode os.FileMode = 0644
	defaultDirMode  os.FileMode = 0755
)

// Document is a rendered visualization.
type Document struct {
	Concept   string
	ClassName string
	Content   string
}

// FileName returns the name of the file the document is written to.
func (d *Document) FileName() string {
	return d.ClassName + ".html"
}

// Result is returned by Generate.
type Result struct {
	*Document

	// Path is the file the document was written to.
	Path string

	// RenderID identifies a single Generate call in logs.
	RenderID string
}

// Renderer renders concepts into HTML visualizations and writes them to disk. A Renderer
// holds no mutable state and can be shared between goroutines.
type Renderer struct {
	rendererConfig
}

type rendererConfig struct {
	outputDir string
	template  *Template
	fileMode  os.FileMode
	logger    *slog.Logger
}

// Option is the type for the options of Renderer.
type Option func(*rendererConfig)

// WithOutputDir sets the directory used when Generate is called without one.
func WithOutputDir(dir string) Option {
	return func(c *rendererConfig) {
		c.outputDir = dir
	}
}

// WithTemplate replaces the document template. The template must use the concept and
// class_name placeholders only; any other placeholder makes rendering fail.
func WithTemplate(t *Template) Option {
	return func(c *rendererConfig) {
		c.template = t
	}
}

// WithFileMode sets the permission bits of written files.
func WithFileMode(mode os.FileMode) Option {
	return func(c *rendererConfig) {
		c.fileMode = mode
	}
}

// WithLogger sets the logger. Logs are discarded by default.
func WithLogger(logger *slog.Logger) Option {
	return func(c *rendererConfig) {
		c.logger = logger
	}
}

// New creates a Renderer.
func New(options ...Option) *Renderer {
	r := &Renderer{
		rendererConfig: rendererConfig{
			outputDir: DefaultOutputDir,
			template:  defaultTemplate,
			fileMode:  DefaultFileMode,
			logger:    slog.New(slog.DiscardHandler),
		},
	}

	for _, opt := range options {
		opt(&r.rendererConfig)
	}
	if r.template == nil {
		r.template = defaultTemplate
	}

	return r
}

// OutputDir returns the default output directory of the renderer.
func (r *Renderer) OutputDir() string {
	return r.outputDir
}

// Render substitutes concept into the template. It does not touch the filesystem. The
// concept is HTML escaped and line breaks are replaced with spaces, so it stays inside
// the title element and the single-line script comment it is placed in.
func (r *Renderer) Render(concept string) (*Document, error) {
	className, err := deriveClassName(concept)
	if err != nil {
		return nil, goerr.Wrap(err, "cannot derive class name", goerr.V("concept", concept))
	}

	content, err := r.template.Execute(map[string]string{
		ParamConcept:   conceptText(concept),
		ParamClassName: className,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to execute template", goerr.V("concept", concept))
	}

	return &Document{
		Concept:   concept,
		ClassName: className,
		Content:   content,
	}, nil
}

// Write stores doc in outputDir and returns the file path. The directory is created if
// needed. The file is written to a temporary name in the same directory and renamed into
// place, so an existing file is replaced whole or left untouched.
func (r *Renderer) Write(ctx context.Context, doc *Document, outputDir string) (string, error) {
	logger := LoggerFromContext(ctx)

	if doc == nil {
		return "", goerr.Wrap(ErrRender, "nil document")
	}
	if outputDir == "" {
		outputDir = r.outputDir
	}

	if err := os.MkdirAll(outputDir, defaultDirMode); err != nil {
		return "", wrapIO(err, "failed to create output directory", goerr.V("dir", outputDir))
	}

	path := filepath.Join(outputDir, doc.FileName())
	if err := writeFileAtomic(path, []byte(doc.Content), r.fileMode); err != nil {
		return "", goerr.Wrap(err, "failed to write document", goerr.V("path", path))
	}

	logger.Debug("document written", "path", path, "bytes", len(doc.Content))
	return path, nil
}

// Generate renders concept and writes it to outputDir, or to the renderer's default
// directory if outputDir is empty. A panic during generation is returned as ErrRender.
func (r *Renderer) Generate(ctx context.Context, concept, outputDir string) (result *Result, err error) {
	renderID := uuid.New().String()
	logger := r.logger.With("render_id", renderID, "concept", concept)
	ctx = ctxWithLogger(ctx, logger)

	defer func() {
		if rec := recover(); rec != nil {
			result = nil
			err = goerr.Wrap(ErrRender, "generation panicked", goerr.V("panic", fmt.Sprint(rec)))
		}
		if err != nil {
			logger.Error("HTML generation failed", "error", err)
		}
	}()

	doc, err := r.Render(concept)
	if err != nil {
		return nil, err
	}

	path, err := r.Write(ctx, doc, outputDir)
	if err != nil {
		return nil, err
	}

	logger.Info("HTML visualization generated", "path", path, "class_name", doc.ClassName)

	return &Result{
		Document: doc,
		Path:     path,
		RenderID: renderID,
	}, nil
}

// lineBreakReplacer covers the line terminators of both HTML and script source.
var lineBreakReplacer = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ", "\u2028", " ", "\u2029", " ")

func conceptText(concept string) string {
	return lineBreakReplacer.Replace(html.EscapeString(concept))
}

func writeFileAtomic(path string, data []byte, mode os.FileMode) (err error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return wrapIO(err, "failed to create temporary file", goerr.V("dir", dir))
	}
	tmpName := tmp.Name()

	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return wrapIO(err, "failed to write temporary file", goerr.V("file", tmpName))
	}
	if err := tmp.Chmod(mode); err != nil {
		return wrapIO(err, "failed to set file mode", goerr.V("file", tmpName))
	}
	if err := tmp.Sync(); err != nil {
		return wrapIO(err, "failed to sync temporary file", goerr.V("file", tmpName))
	}
	if err := tmp.Close(); err != nil {
		return wrapIO(err, "failed to close temporary file", goerr.V("file", tmpName))
	}
	if err := os.Rename(tmpName, path); err != nil {
		return wrapIO(err, "failed to replace output file", goerr.V("file", path))
	}

	return nil
}

func wrapIO(cause error, msg string, values ...goerr.Option) error {
	return goerr.Wrap(fmt.Errorf("%w: %w", ErrIO, cause), msg, values...)
}
