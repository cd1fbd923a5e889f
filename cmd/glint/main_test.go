package main

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/CTAG07/glintutil/pkg/blocks"
	"github.com/CTAG07/glintutil/pkg/dom"
	"github.com/google/go-cmp/cmp"
)

const testPage = `<!DOCTYPE html><html><head><title>t</title></head><body>
<div data-id="intro" data-block="text"><span data-id="nested">old</span></div>
<div data-id="menu" data-block="list"></div>
<div data-id="chat" data-browser="true">placeholder</div>
</body></html>`

// writeFile writes content to name under dir and returns the path.
func writeFile(tb testing.TB, dir, name, content string) string {
	tb.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		tb.Fatalf("failed to create dir for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		tb.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

// setupWorkspace creates a config, a data dir with block templates and a
// page. It returns the config path and the workspace dir.
func setupWorkspace(tb testing.TB) (string, string) {
	tb.Helper()
	dir := tb.TempDir()
	dataDir := filepath.Join(dir, "data")
	writeFile(tb, dataDir, "templates/text.tmpl.html", `{{define "text.tmpl.html"}}<p>{{.Content}}</p>{{end}}`)
	writeFile(tb, dataDir, "templates/list.tmpl.html", `{{define "list.tmpl.html"}}<ul title="{{.Options.title}}">{{range .Content}}<li>{{.}}</li>{{end}}</ul>{{end}}`)
	writeFile(tb, dir, "page.html", testPage)
	configPath := writeFile(tb, dir, "glint.json", `{"log_level": "error", "data_dir": "`+filepath.ToSlash(dataDir)+`"}`)
	return configPath, dir
}

func runCommand(tb testing.TB, args ...string) (string, error) {
	tb.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestLoadConfig_WritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glint.json")
	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), config); diff != "" {
		t.Errorf("expected default config (-want +got):\n%s", diff)
	}
	if _, err = os.Stat(path); err != nil {
		t.Fatalf("expected default config file to be written: %v", err)
	}

	again, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig on the written file failed: %v", err)
	}
	if diff := cmp.Diff(config, again); diff != "" {
		t.Errorf("config changed after a round trip (-first +second):\n%s", diff)
	}
}

func TestLoadConfig_Partial(t *testing.T) {
	path := writeFile(t, t.TempDir(), "glint.json", `{"data_dir": "/srv/site", "block_selector": "", "template_config": null}`)
	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if config.DataDir != "/srv/site" || config.BlockSelector != "[data-id]" || config.Templates == nil {
		t.Errorf("unexpected config: %+v", config)
	}

	bad := writeFile(t, t.TempDir(), "glint.json", `{`)
	if _, err = LoadConfig(bad); err == nil {
		t.Error("expected an error for a malformed config")
	}
}

func TestPageOptions(t *testing.T) {
	opts, err := pageOptions([]byte(testPage), "[data-id]")
	if err != nil {
		t.Fatalf("pageOptions failed: %v", err)
	}
	var ids []string
	for _, o := range opts {
		ids = append(ids, o.ID)
	}
	if diff := cmp.Diff([]string{"intro", "menu", "chat"}, ids); diff != "" {
		t.Errorf("block ids mismatch (-want +got):\n%s", diff)
	}
	if opts[2].Attrs["browser"] != "true" {
		t.Errorf("expected data-browser to be read, got %v", opts[2].Attrs)
	}

	_, err = pageOptions([]byte(`<div data-block="text"></div>`), "[data-block]")
	if !errors.Is(err, dom.ErrMissingID) {
		t.Errorf("expected ErrMissingID, got %v", err)
	}
}

func TestFirstLevelCommand(t *testing.T) {
	configPath, dir := setupWorkspace(t)
	page := writeFile(t, dir, "nested.html", `<div id="root"><div class="x" id="outer"><div class="x" id="inner"></div></div><p class="x" id="sibling"></p></div>`)

	raw, err := runCommand(t, "--config", configPath, "first-level", page, ".x")
	if err != nil {
		t.Fatalf("first-level failed: %v", err)
	}
	want := `<div class="x" id="outer"><div class="x" id="inner"></div></div>` + "\n" + `<p class="x" id="sibling"></p>` + "\n"
	if raw != want {
		t.Errorf("first-level output:\n%s\nwant:\n%s", raw, want)
	}

	wrapped, err := runCommand(t, "--config", configPath, "first-level", "--wrapped", "--root", "#root", page, ".x")
	if err != nil {
		t.Fatalf("first-level --wrapped failed: %v", err)
	}
	if wrapped != raw {
		t.Errorf("wrapped output differs:\n%s\nraw:\n%s", wrapped, raw)
	}

	if _, err = runCommand(t, "--config", configPath, "first-level", page, "div[[["); err == nil {
		t.Error("expected an error for an invalid selector")
	}
}

func TestOptionsCommand(t *testing.T) {
	configPath, dir := setupWorkspace(t)
	out, err := runCommand(t, "--config", configPath, "options", filepath.Join(dir, "page.html"))
	if err != nil {
		t.Fatalf("options failed: %v", err)
	}
	for _, s := range []string{`"id": "intro"`, `"block": "list"`, `"browser": "true"`} {
		if !strings.Contains(out, s) {
			t.Errorf("options output missing %s:\n%s", s, out)
		}
	}
	if strings.Contains(out, "nested") {
		t.Errorf("nested block should not be listed:\n%s", out)
	}
}

func TestRenderCommand(t *testing.T) {
	configPath, dir := setupWorkspace(t)
	data := writeFile(t, dir, "data.json", `{"intro": "Hello &amp; welcome", "menu": ["Home", "About"], "chat": "ignored"}`)
	manifest := writeFile(t, dir, "blocks.yaml", `
blocks:
  menu:
    options:
      title: Main
  ghost:
    block: text
stylesheets:
  - /base.css
`)
	outPath := filepath.Join(dir, "out", "page.html")
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		t.Fatalf("failed to create out dir: %v", err)
	}

	_, err := runCommand(t, "--config", configPath, "render", filepath.Join(dir, "page.html"),
		"--data", data, "--blocks", manifest, "--out", outPath, "--css", "/site.css")
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	raw, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	out := string(raw)

	for _, s := range []string{
		`<div data-id="intro" data-block="text"><p>Hello &amp; welcome</p></div>`,
		`<div data-id="menu" data-block="list"><ul title="Main"><li>Home</li><li>About</li></ul></div>`,
		`<div data-id="chat" data-browser="true"></div>`,
		`href="/base.css"`,
		`href="/site.css"`,
		`rel="stylesheet"`,
	} {
		if !strings.Contains(out, s) {
			t.Errorf("rendered page missing %s:\n%s", s, out)
		}
	}
	if strings.Contains(out, "nested") || strings.Contains(out, "placeholder") {
		t.Errorf("block content should have been replaced:\n%s", out)
	}
}

func TestPageRenderer_DuplicateID(t *testing.T) {
	p := &pageRenderer{
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		factory:  func(blocks.Options) (blocks.Controller, error) { return nil, errors.New("unused") },
		selector: "[data-id]",
	}
	page := []byte(`<div data-id="a"></div><div data-id="a"></div>`)
	if _, err := p.render(page, nil, &Manifest{}); err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Errorf("expected a duplicate id error, got %v", err)
	}
}
