package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/CTAG07/glintutil/pkg/blocks"
	"github.com/CTAG07/glintutil/pkg/dom"
	"github.com/CTAG07/glintutil/pkg/objutil"
	"github.com/CTAG07/glintutil/pkg/templating"
	"github.com/PuerkitoBio/goquery"
	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"
	"golang.org/x/net/html"
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		dataPath     string
		manifestPath string
		outPath      string
		stylesheets  []string
	)
	cmd := &cobra.Command{
		Use:   "render <page.html>",
		Short: "Render the blocks of a page with the block templates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			data, err := loadData(dataPath)
			if err != nil {
				return err
			}
			manifest, err := LoadManifest(manifestPath)
			if err != nil {
				return err
			}
			manifest.Stylesheets = append(manifest.Stylesheets, stylesheets...)

			tm, err := templating.NewTemplateManager(a.logger, a.config.Templates, a.config.DataDir)
			if err != nil {
				return fmt.Errorf("failed to create template manager: %w", err)
			}

			p := &pageRenderer{
				logger:      a.logger,
				factory:     tm.Controller,
				selector:    a.config.BlockSelector,
				stylesheets: append(append([]string{}, a.config.Stylesheets...), manifest.Stylesheets...),
			}
			out, err := p.render(page, data, manifest)
			if err != nil {
				return err
			}

			if outPath == "" {
				_, err = cmd.OutOrStdout().Write(out)
				return err
			}
			if err = atomic.WriteFile(outPath, bytes.NewReader(out)); err != nil {
				return fmt.Errorf("failed to write %s: %w", outPath, err)
			}
			a.logger.Info("Rendered page", "page", args[0], "out", outPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&dataPath, "data", "", "JSON file with the page data, keyed by block id")
	cmd.Flags().StringVar(&manifestPath, "blocks", "", "YAML block manifest")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringSliceVar(&stylesheets, "css", nil, "Stylesheet href to link in the page head (repeatable)")
	return cmd
}

// loadData reads a JSON object from path. An empty path yields nil.
func loadData(path string) (map[string]any, error) {
	if path == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read data: %w", err)
	}
	var data map[string]any
	if err = json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse data %s: %w", path, err)
	}
	return data, nil
}

// pageRenderer replaces the content of every first-level block of a page
// with its rendered output.
type pageRenderer struct {
	logger      *slog.Logger
	factory     blocks.Factory
	selector    string
	stylesheets []string
}

func (p *pageRenderer) render(page []byte, data map[string]any, manifest *Manifest) ([]byte, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	found, err := dom.FirstLevelElements(doc.Selection, p.selector)
	if err != nil {
		return nil, err
	}

	defs := make(map[string]*blocks.Block, found.Length())
	elements := make(map[string]*goquery.Selection, found.Length())
	for i := range found.Nodes {
		el := found.Eq(i)
		attrs, err := dom.Data(el)
		if err != nil {
			return nil, err
		}
		id := attrs["id"]
		if _, dup := defs[id]; dup {
			return nil, fmt.Errorf("duplicate block id %q", id)
		}
		defs[id] = p.block(id, attrs, manifest.Blocks[id])
		elements[id] = el
	}
	for id := range manifest.Blocks {
		if _, ok := defs[id]; !ok {
			p.logger.Warn("Manifest block not found in page", "block", id)
		}
	}

	rendered, err := blocks.NewRenderer(p.logger, defs).RenderBlocks(data)
	if err != nil {
		return nil, err
	}
	for _, id := range objutil.Keys(elements) {
		s, _ := rendered[id].(string)
		elements[id].SetHtml(s)
		p.logger.Debug("Rendered block", "block", id, "browser", defs[id].Browser)
	}

	for _, href := range p.stylesheets {
		if _, err = dom.AppendStylesheetHref(doc.Get(0), href); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err = html.Render(&buf, doc.Get(0)); err != nil {
		return nil, fmt.Errorf("failed to render page: %w", err)
	}
	return buf.Bytes(), nil
}

// block builds the definition of one block. Manifest values win; the
// element's data-* attributes fill in the rest.
func (p *pageRenderer) block(id string, attrs map[string]string, entry ManifestBlock) *blocks.Block {
	opts := objutil.Merge(nil, entry.Options)
	if entry.Block != "" {
		opts["block"] = entry.Block
	}
	parsed := objutil.ParseList(attrs)
	// id and block name controllers and must stay strings.
	parsed["id"] = id
	if name, ok := attrs["block"]; ok {
		parsed["block"] = name
	}
	opts = objutil.Defaults(opts, parsed)

	browser, _ := opts["browser"].(bool)
	return &blocks.Block{
		Controller: p.factory,
		Selector:   fmt.Sprintf("[data-id=%q]", id),
		Browser:    entry.Browser || browser,
		Options:    blocks.Options(opts),
	}
}
