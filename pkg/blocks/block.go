package blocks

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/CTAG07/glintutil/pkg/objutil"
)

// Options are the settings a controller is created with. The "id" key is
// always set by the Renderer.
type Options map[string]any

// ID returns the "id" option.
func (o Options) ID() string {
	id, _ := o["id"].(string)
	return id
}

// Controller renders the content of one block.
type Controller interface {
	Render(content any) (string, error)
}

// ControllerFunc adapts a function to the Controller interface.
type ControllerFunc func(content any) (string, error)

// Render calls f(content).
func (f ControllerFunc) Render(content any) (string, error) {
	return f(content)
}

// Factory creates a Controller from its options.
type Factory func(opts Options) (Controller, error)

// Block describes one editable region of a page.
type Block struct {
	// Controller creates the block's controller. Blocks without one are
	// left untouched.
	Controller Factory

	// Selector locates the block's element in the page.
	Selector string

	// Browser marks blocks that are rendered client side.
	Browser bool

	// Options are passed to Controller. "id" defaults to the block key.
	Options Options
}

// Renderer instantiates block controllers and renders page data with them.
type Renderer struct {
	logger *slog.Logger
	blocks map[string]*Block
}

// NewRenderer returns a Renderer for blocks.
func NewRenderer(logger *slog.Logger, blocks map[string]*Block) *Renderer {
	return &Renderer{logger: logger, blocks: blocks}
}

// ProxyData returns a copy of data in which every value that has a server
// side block is replaced by that block's rendered output. If data cannot be
// copied it is returned as is.
func (r *Renderer) ProxyData(data map[string]any) (map[string]any, error) {
	obj, err := clone(data)
	if err != nil {
		r.logger.Debug("could not clone data", "error", err)
		return data, nil
	}

	controllers := make(map[string]Controller)
	values := make(map[string]any)
	for _, key := range objutil.Keys(obj) {
		b := r.blocks[key]
		if b == nil || b.Controller == nil || b.Browser {
			continue
		}
		c, err := b.Controller(r.options(key, b))
		if err != nil {
			return nil, fmt.Errorf("block %s: %w", key, err)
		}
		controllers[key] = c
		values[key] = obj[key]
	}

	rendered, err := Collect(controllers, Controller.Render, values, nil)
	if err != nil {
		return nil, fmt.Errorf("render block %w", err)
	}
	for key, out := range rendered {
		obj[key] = out
	}
	return obj, nil
}

// RenderBlocks renders every block with a controller using the matching
// value of data. Browser blocks render as the empty string. data may be
// nil.
func (r *Renderer) RenderBlocks(data map[string]any) (map[string]any, error) {
	obj := make(map[string]any)
	if data != nil {
		var err error
		if obj, err = clone(data); err != nil {
			r.logger.Debug("could not clone data", "error", err)
			obj = data
		}
	}

	controllers, err := r.instantiate(nil, func(b *Block) bool { return !b.Browser })
	if err != nil {
		return nil, err
	}
	values := make(map[string]any, len(controllers))
	for key := range controllers {
		values[key] = obj[key]
	}
	rendered, err := Collect(controllers, Controller.Render, values, nil)
	if err != nil {
		return nil, fmt.Errorf("render block %w", err)
	}

	for key, b := range r.blocks {
		if b == nil || b.Controller == nil {
			continue
		}
		if b.Browser {
			obj[key] = ""
			continue
		}
		obj[key] = rendered[key]
	}
	return obj, nil
}

// Controllers instantiates the controller of every block. When locate is
// non-nil, the element it returns for the block's selector is passed as the
// "el" option.
func (r *Renderer) Controllers(locate func(selector string) any) (map[string]Controller, error) {
	return r.instantiate(locate, nil)
}

func (r *Renderer) instantiate(locate func(string) any, keep func(*Block) bool) (map[string]Controller, error) {
	controllers := make(map[string]Controller)
	for _, key := range objutil.Keys(r.blocks) {
		b := r.blocks[key]
		if b == nil || b.Controller == nil {
			continue
		}
		if keep != nil && !keep(b) {
			continue
		}
		opts := r.options(key, b)
		if locate != nil {
			opts["el"] = locate(b.Selector)
		}
		c, err := b.Controller(opts)
		if err != nil {
			return nil, fmt.Errorf("block %s: %w", key, err)
		}
		r.logger.Debug("instantiated block controller", "block", key)
		controllers[key] = c
	}
	return controllers, nil
}

// options copies the block options and fills in the id.
func (r *Renderer) options(key string, b *Block) Options {
	opts := make(Options, len(b.Options)+1)
	for k, v := range b.Options {
		opts[k] = v
	}
	if opts.ID() == "" {
		opts["id"] = key
	}
	return opts
}

// clone deep copies data through a JSON round trip.
func clone(data map[string]any) (map[string]any, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	var obj map[string]any
	if err = json.Unmarshal(raw, &obj); err != nil {
		return nil, err
	}
	if obj == nil {
		obj = make(map[string]any)
	}
	return obj, nil
}
