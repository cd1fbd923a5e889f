package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/CTAG07/glintutil/pkg/dom"
	"github.com/spf13/cobra"
	"golang.org/x/net/html"
)

func newOptionsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "options <page.html>",
		Short: "Print the data-* options of every top-level block as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			opts, err := pageOptions(raw, a.config.BlockSelector)
			if err != nil {
				return err
			}
			out, err := json.MarshalIndent(opts, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal options: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}
}

// pageOptions returns the options of every first-level block of page.
func pageOptions(page []byte, selector string) ([]*dom.BlockOptions, error) {
	doc, err := html.Parse(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}
	nodes, err := dom.FirstLevelNodes(doc, selector)
	if err != nil {
		return nil, err
	}
	opts := make([]*dom.BlockOptions, 0, len(nodes))
	for _, n := range nodes {
		o, err := dom.Options(n)
		if err != nil {
			return nil, err
		}
		opts = append(opts, o)
	}
	return opts, nil
}
