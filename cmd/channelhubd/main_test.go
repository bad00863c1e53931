package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"channelhub/internal/config"
	"channelhub/pkg/types"
)

const plotDef = `kind: plot
display_name: Plot
receivers:
  - id: x
    supported_key_kinds: [realization]
    supports_multi_content: true
`

const tableDef = `kind = "table"
[[channels]]
id = "values"
key_kind = "realization"
`

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	l, err := newLogger(&buf, "warn", "json")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	l.Info().Msg("hidden")
	l.Warn().Msg("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), `"message":"shown"`) {
		t.Fatalf("unexpected output: %q", buf.String())
	}
	if l, err := newLogger(&buf, "off", ""); err != nil || l.GetLevel() != zerolog.Disabled {
		t.Fatalf("off: level=%v err=%v", l.GetLevel(), err)
	}
	if _, err := newLogger(&buf, "loud", ""); err == nil {
		t.Fatalf("expected error for unknown level")
	}
	if _, err := newLogger(&buf, "", "xml"); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()
	defs := filepath.Join(dir, "modules")
	if err := os.Mkdir(defs, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeFile(t, defs, "plot.yaml", plotDef)
	writeFile(t, defs, "table.toml", tableDef)
	cfg := writeFile(t, dir, "hub.yaml", "definitions_dir: "+defs+"\ninstances:\n  - id: t1\n    kind: table\n")

	out, err := runCmd(t, "validate", cfg)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !strings.Contains(out, "ok: 2 definitions, 1 startup instances") {
		t.Fatalf("output=%q", out)
	}

	bad := writeFile(t, dir, "bad.yaml", "definitions_dir: "+defs+"\ninstances:\n  - kind: missing\n")
	if _, err := runCmd(t, "validate", bad); err == nil || !strings.Contains(err.Error(), "unknown module kind") {
		t.Fatalf("expected unknown kind error, got %v", err)
	}
}

func TestDefinitionsCommand(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "plot.yaml", plotDef)
	writeFile(t, dir, "table.toml", tableDef)

	out, err := runCmd(t, "definitions", dir)
	if err != nil {
		t.Fatalf("definitions: %v", err)
	}
	if !strings.Contains(out, "KIND") || !strings.Contains(out, "plot") || !strings.Contains(out, "table") {
		t.Fatalf("table output=%q", out)
	}

	out, err = runCmd(t, "definitions", dir, "-o", "json")
	if err != nil {
		t.Fatalf("definitions json: %v", err)
	}
	var defs []types.ModuleDefinition
	if err := json.Unmarshal([]byte(out), &defs); err != nil {
		t.Fatalf("json output: %v (%q)", err, out)
	}
	if len(defs) != 2 || defs[0].Kind != "plot" || defs[1].Channels[0].KeyKind != "realization" {
		t.Fatalf("defs=%+v", defs)
	}

	if _, err := runCmd(t, "definitions", dir, "-o", "xml"); err == nil {
		t.Fatalf("expected error for unsupported output")
	}
}

func TestResolveConfig_FlagsOverrideFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "hub.json", `{"addr":":7000","max_body_bytes":10,"log_level":"error"}`)

	cmd := &cobra.Command{}
	o := &serveOpts{}
	o.bindFlags(cmd.Flags())
	if err := cmd.ParseFlags([]string{"--config", path, "--max-body-bytes", "99", "--cors-origins", "a, b"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	cfg, err := o.resolveConfig(cmd, &globalOpts{logFormat: "json"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.Addr != ":7000" {
		t.Fatalf("addr from file lost: %q", cfg.Addr)
	}
	if cfg.MaxBodyBytes != 99 || len(cfg.CORSOrigins) != 2 {
		t.Fatalf("flags not applied: %+v", cfg)
	}
	if cfg.LogLevel != "error" || cfg.LogFormat != "json" {
		t.Fatalf("log settings: %q %q", cfg.LogLevel, cfg.LogFormat)
	}

	cmd = &cobra.Command{}
	o = &serveOpts{}
	o.bindFlags(cmd.Flags())
	if err := cmd.ParseFlags([]string{"--config", path}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := o.resolveConfig(cmd, &globalOpts{logLevel: "chatty"}); err == nil {
		t.Fatalf("expected validation error for bad log level")
	}
}

func TestBuildServer_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "plot.yaml", plotDef)
	writeFile(t, dir, "table.toml", tableDef)
	cfg := config.Config{
		DefinitionsDir: dir,
		Instances: []config.InstanceConfig{
			{ID: "t1", Kind: "table"},
			{ID: "p1", Kind: "plot"},
		},
	}
	h, mux, err := buildServer(cfg, zerolog.Nop(), prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	defer h.Close()
	if len(h.ListInstances()) != 2 {
		t.Fatalf("startup instances not created")
	}

	do := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		if body != "" {
			req.Header.Set("Content-Type", "application/json")
		}
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)
		return w
	}
	if w := do(http.MethodPut, "/instances/t1/channels/values/contents", `{"contents":[{"id":"A","points":[{"key":[1],"value":5}]}]}`); w.Code != http.StatusNoContent {
		t.Fatalf("replace status=%d body=%s", w.Code, w.Body.String())
	}
	if w := do(http.MethodPost, "/instances/p1/receivers/x/subscription", `{"publisher_id":"t1","channel_id":"values","all":true}`); w.Code != http.StatusNoContent {
		t.Fatalf("subscribe status=%d body=%s", w.Code, w.Body.String())
	}
	w := do(http.MethodGet, "/instances/p1/receivers/x", "")
	var snap types.ReceiverSnapshot
	if err := json.Unmarshal(w.Body.Bytes(), &snap); err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(snap.Contents) != 1 || snap.Contents[0].Points[0].Value != 5 {
		t.Fatalf("snapshot=%+v", snap)
	}
}

func TestBuildServer_UnknownStartupKind(t *testing.T) {
	cfg := config.Config{Instances: []config.InstanceConfig{{Kind: "nope"}}}
	if _, _, err := buildServer(cfg, zerolog.Nop(), prometheus.NewRegistry()); err == nil {
		t.Fatalf("expected error")
	}
}
