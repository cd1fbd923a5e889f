package templating

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/CTAG07/glintutil/pkg/blocks"
	"github.com/CTAG07/glintutil/pkg/objutil"
)

const (
	templateSuffix = ".tmpl.html"
	partialSuffix  = ".part.html"
)

// ErrUnknownBlock is returned by Controller when no template exists for a
// block and no default block is configured.
var ErrUnknownBlock = errors.New("no template for block")

// BlockInput is the data a block template is executed with.
type BlockInput struct {
	// ID is the block id.
	ID string
	// Content is the page data stored under the block id.
	Content any
	// Options are the block options, including "id" and "block".
	Options blocks.Options
}

// TemplateManager is the central controller for the templating engine.
// It manages the template set, configuration and function map, and hands
// out block controllers backed by the loaded templates.
// All methods are concurrent-safe.
type TemplateManager struct {
	logger         *slog.Logger
	config         *TemplateConfig
	templates      *template.Template
	cleanTemplates *template.Template
	templateNames  []string
	funcMap        template.FuncMap
	templateDir    string
	mu             sync.RWMutex
}

// NewTemplateManager creates, initializes, and returns a new TemplateManager.
// dataDir must contain a "templates" subdirectory. It performs an initial
// Refresh to load all templates.
func NewTemplateManager(logger *slog.Logger, config *TemplateConfig, dataDir string) (*TemplateManager, error) {
	if config == nil {
		config = DefaultConfig()
	}
	tm := &TemplateManager{
		logger:      logger,
		config:      config,
		templateDir: filepath.Join(dataDir, "templates"),
	}
	tm.funcMap = tm.makeFuncMap()

	if err := tm.Refresh(); err != nil {
		return nil, err
	}

	logger.Info("Template manager initialized", "dir", tm.templateDir)
	return tm, nil
}

// SetConfig applies a new configuration to the TemplateManager.
func (tm *TemplateManager) SetConfig(config *TemplateConfig) {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	tm.config = config
}

// Refresh reloads all block templates and partials from the filesystem.
func (tm *TemplateManager) Refresh() error {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	tm.logger.Debug("Loading template files...")
	parsed, err := parseGlob(template.New("").Funcs(tm.funcMap), filepath.Join(tm.templateDir, "*"+templateSuffix))
	if err != nil {
		tm.logger.Error("failed to parse template files", "error", err)
		return err
	}
	var names []string
	for _, t := range parsed.Templates() {
		// The unnamed root template is never executed directly.
		if strings.HasSuffix(t.Name(), templateSuffix) {
			names = append(names, t.Name())
		}
	}

	tm.logger.Debug("Loading partial files...")
	parsed, err = parseGlob(parsed, filepath.Join(tm.templateDir, "*"+partialSuffix))
	if err != nil {
		tm.logger.Error("failed to parse partial files", "error", err)
		return err
	}

	if len(names) == 0 {
		tm.logger.Warn("No block templates found", "dir", tm.templateDir)
	}

	// Keep an unexecuted clone for string executions.
	clean, err := parsed.Clone()
	if err != nil {
		tm.logger.Error("failed to create a clean clone of templates", "error", err)
		return err
	}

	tm.templates = parsed
	tm.cleanTemplates = clean
	tm.templateNames = names
	tm.logger.Info("Loaded template and partial files", "blocks", len(names))
	return nil
}

// parseGlob is ParseGlob that treats an empty match as success.
func parseGlob(t *template.Template, pattern string) (*template.Template, error) {
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return t, nil
	}
	return t.ParseFiles(files...)
}

// Execute renders a specific template by name, writing the output to w.
func (tm *TemplateManager) Execute(w io.Writer, name string, data any) error {
	if name == "" {
		return nil
	}
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return tm.templates.ExecuteTemplate(w, name, data)
}

// ExecuteTemplateString parses and executes a raw template string using the
// manager's function map and partials. It is meant for previews and tests.
func (tm *TemplateManager) ExecuteTemplateString(w io.Writer, content string, data any) error {
	tm.mu.RLock()
	defer tm.mu.RUnlock()

	tempSet, err := tm.cleanTemplates.Clone()
	if err != nil {
		return fmt.Errorf("failed to clone clean templates for string execution: %w", err)
	}
	t, err := tempSet.Parse(content)
	if err != nil {
		return fmt.Errorf("failed to parse string template: %w", err)
	}
	return t.Execute(w, data)
}

// GetConfig returns a copy of the current configuration.
func (tm *TemplateManager) GetConfig() TemplateConfig {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return *tm.config
}

// GetTemplateNames returns the names of the loaded block templates and
// partials.
func (tm *TemplateManager) GetTemplateNames() []string {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	var names []string
	for _, t := range tm.templates.Templates() {
		if strings.HasSuffix(t.Name(), ".html") {
			names = append(names, t.Name())
		}
	}
	return names
}

// GetTemplateDir returns the template dir that the TemplateManager uses.
func (tm *TemplateManager) GetTemplateDir() string {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return tm.templateDir
}

// HasBlock reports whether a block template named block is loaded.
func (tm *TemplateManager) HasBlock(block string) bool {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return tm.templates.Lookup(block+templateSuffix) != nil
}

// Controller is a blocks.Factory. The template is chosen by the "block"
// option, falling back to the block id and then to the configured default
// block.
func (tm *TemplateManager) Controller(opts blocks.Options) (blocks.Controller, error) {
	name, _ := opts["block"].(string)
	if name == "" {
		name = opts.ID()
	}
	if !tm.HasBlock(name) {
		fallback := tm.GetConfig().DefaultBlock
		if fallback == "" || !tm.HasBlock(fallback) {
			return nil, fmt.Errorf("%w %q", ErrUnknownBlock, name)
		}
		tm.logger.Debug("Using default block template", "block", name, "default", fallback)
		name = fallback
	}
	return &blockController{tm: tm, name: name + templateSuffix, opts: opts}, nil
}

// blockController renders one block with a named template.
type blockController struct {
	tm   *TemplateManager
	name string
	opts blocks.Options
}

func (c *blockController) Render(content any) (string, error) {
	if s, ok := content.(string); ok && c.tm.GetConfig().DecodeContent {
		content = objutil.Decode(s)
	}
	var buf bytes.Buffer
	err := c.tm.Execute(&buf, c.name, BlockInput{ID: c.opts.ID(), Content: content, Options: c.opts})
	if err != nil {
		return "", fmt.Errorf("failed to execute block template %s: %w", c.name, err)
	}
	return buf.String(), nil
}
