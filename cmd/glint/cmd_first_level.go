package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/CTAG07/glintutil/pkg/dom"
	"github.com/PuerkitoBio/goquery"
	"github.com/spf13/cobra"
	"golang.org/x/net/html"
)

func newFirstLevelCmd(a *app) *cobra.Command {
	var (
		rootSelector string
		wrapped      bool
	)
	cmd := &cobra.Command{
		Use:   "first-level <page.html> <selector>",
		Short: "Print the matches of selector that are not nested in another match",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer func(f *os.File) {
				_ = f.Close()
			}(f)

			var parts []string
			if wrapped {
				parts, err = firstLevelWrapped(f, rootSelector, args[1])
			} else {
				parts, err = firstLevelRaw(f, rootSelector, args[1])
			}
			if err != nil {
				return err
			}
			a.logger.Debug("First-level matches", "selector", args[1], "count", len(parts))
			for _, p := range parts {
				if _, err = fmt.Fprintln(cmd.OutOrStdout(), p); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&rootSelector, "root", "", "Selector of the root element (default: the whole document)")
	cmd.Flags().BoolVar(&wrapped, "wrapped", false, "Filter through goquery selections instead of raw nodes")
	return cmd
}

// firstLevelRaw filters with raw *html.Node values and identity comparison.
func firstLevelRaw(r io.Reader, rootSelector, selector string) ([]string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}
	root := doc
	if rootSelector != "" {
		roots, err := dom.Nodes(doc, rootSelector)
		if err != nil {
			return nil, err
		}
		if len(roots) == 0 {
			return nil, fmt.Errorf("root %q not found", rootSelector)
		}
		root = roots[0]
	}

	nodes, err := dom.FirstLevelNodes(root, selector)
	if err != nil {
		return nil, err
	}
	parts := make([]string, 0, len(nodes))
	for _, n := range nodes {
		var buf bytes.Buffer
		if err = html.Render(&buf, n); err != nil {
			return nil, err
		}
		parts = append(parts, buf.String())
	}
	return parts, nil
}

// firstLevelWrapped filters with goquery selections and structural comparison.
func firstLevelWrapped(r io.Reader, rootSelector, selector string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}
	root := doc.Selection
	if rootSelector != "" {
		root = doc.Find(rootSelector)
		if root.Length() == 0 {
			return nil, fmt.Errorf("root %q not found", rootSelector)
		}
	}

	found, err := dom.FirstLevelElements(root, selector)
	if err != nil {
		return nil, err
	}
	parts := make([]string, 0, found.Length())
	for i := range found.Nodes {
		s, err := goquery.OuterHtml(found.Eq(i))
		if err != nil {
			return nil, err
		}
		parts = append(parts, s)
	}
	return parts, nil
}
