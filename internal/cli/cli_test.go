package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/chartlayout/pkg/buildinfo"
	"github.com/matzehuels/chartlayout/pkg/pipeline"
)

const testDoc = `
aspect = "outer:400x200"

[y]
label = "Rain"

[[edge]]
side = "bottom"
component = "ticks"

[[edge]]
side = "left"
component = "ticks"

[data]
x = [0, 1, 2, 3]

[[data.series]]
name = "north"
y = [1, 4, 2, 3]
`

// testEnv writes a document and a settings file pointing the file cache
// into a temporary directory.
func testEnv(t *testing.T) (dir, doc, settings string) {
	t.Helper()
	dir = t.TempDir()
	doc = filepath.Join(dir, "rain.toml")
	if err := os.WriteFile(doc, []byte(testDoc), 0o644); err != nil {
		t.Fatal(err)
	}
	settings = filepath.Join(dir, "config.toml")
	body := "[cache]\nbackend = \"file\"\ndir = \"" + filepath.ToSlash(filepath.Join(dir, "cache")) + "\"\n"
	if err := os.WriteFile(settings, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir, doc, settings
}

func execute(t *testing.T, env map[string]string, args ...string) (string, error) {
	t.Helper()
	c := New(io.Discard, LogInfo)
	c.lookupEnv = func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	want := []string{"layout", "render", "ticks", "watch", "preview", "serve", "cache", "version", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestRenderCommand(t *testing.T) {
	dir, doc, settings := testEnv(t)
	base := filepath.Join(dir, "out", "chart")

	out, err := execute(t, nil, "--config", settings, "render", doc, "-f", "svg,json", "-o", base)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, ext := range []string{".svg", ".json"} {
		data, err := os.ReadFile(base + ext)
		if err != nil {
			t.Fatalf("missing output %s: %v", ext, err)
		}
		if len(data) == 0 {
			t.Errorf("%s is empty", ext)
		}
		if !strings.Contains(out, base+ext) {
			t.Errorf("output does not list %s:\n%s", base+ext, out)
		}
	}
	svg, _ := os.ReadFile(base + ".svg")
	if !bytes.Contains(svg, []byte("<svg")) {
		t.Error("svg output is not an SVG document")
	}
}

func TestRenderCommandInvalidFormat(t *testing.T) {
	_, doc, settings := testEnv(t)
	if _, err := execute(t, nil, "--config", settings, "render", doc, "-f", "gif"); err == nil {
		t.Fatal("expected an error for an unknown format")
	}
}

func TestRenderCommandFormatsFromEnv(t *testing.T) {
	dir, doc, settings := testEnv(t)
	env := map[string]string{"CHARTLAYOUT_FORMATS": "png"}
	if _, err := execute(t, env, "--config", settings, "render", doc, "--scale", "1"); err != nil {
		t.Fatalf("render: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "rain.png"))
	if err != nil {
		t.Fatalf("png not written: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Error("output is not a PNG")
	}
}

func TestLayoutCommandStdout(t *testing.T) {
	_, doc, settings := testEnv(t)
	out, err := execute(t, nil, "--config", settings, "layout", doc, "-o", "-")
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	var res struct {
		Layout struct {
			Outer struct {
				Right  float64 `json:"right"`
				Bottom float64 `json:"bottom"`
			} `json:"outer"`
		} `json:"layout"`
		Series []struct {
			Name string `json:"name"`
		} `json:"series"`
	}
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("layout output is not JSON: %v\n%s", err, out)
	}
	if res.Layout.Outer.Right != 400 || res.Layout.Outer.Bottom != 200 {
		t.Errorf("outer = %+v, want 400x200", res.Layout.Outer)
	}
	if len(res.Series) != 1 || res.Series[0].Name != "north" {
		t.Errorf("series = %+v", res.Series)
	}
}

func TestLayoutCommandMissingDocument(t *testing.T) {
	dir, _, settings := testEnv(t)
	if _, err := execute(t, nil, "--config", settings, "layout", filepath.Join(dir, "nope.toml")); err == nil {
		t.Fatal("expected an error for a missing document")
	}
}

func TestTicksCommand(t *testing.T) {
	out, err := execute(t, nil, "ticks", "--first", "0", "--last", "1", "--length", "400", "--json")
	if err != nil {
		t.Fatalf("ticks: %v", err)
	}
	var res pipeline.TicksResult
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("ticks output is not JSON: %v", err)
	}
	if res.Kind != "floats" || len(res.Labels) == 0 {
		t.Errorf("got %+v", res)
	}

	table, err := execute(t, nil, "ticks", "--first", "0", "--last", "1", "--length", "400")
	if err != nil {
		t.Fatalf("ticks: %v", err)
	}
	if !strings.Contains(table, "LABEL") || !strings.Contains(table, res.Labels[0].Text) {
		t.Errorf("table output missing labels:\n%s", table)
	}

	if _, err := execute(t, nil, "ticks", "--first", "0", "--length", "10"); err == nil {
		t.Error("expected an error without --last")
	}
}

func TestCacheCommands(t *testing.T) {
	dir, doc, settings := testEnv(t)

	out, err := execute(t, nil, "--config", settings, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != filepath.ToSlash(filepath.Join(dir, "cache")) {
		t.Errorf("cache path = %q", out)
	}

	if _, err := execute(t, nil, "--config", settings, "render", doc, "-o", filepath.Join(dir, "x.svg")); err != nil {
		t.Fatal(err)
	}
	out, err = execute(t, nil, "--config", settings, "cache", "clear")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Cleared 2 cached entries") {
		t.Errorf("clear output = %q", out)
	}
	out, _ = execute(t, nil, "--config", settings, "cache", "clear")
	if !strings.Contains(out, "Cache is empty") {
		t.Errorf("second clear output = %q", out)
	}

	env := map[string]string{"CHARTLAYOUT_CACHE": "none"}
	if _, err := execute(t, env, "--config", settings, "cache", "path"); err == nil {
		t.Error("cache path should fail without a file backend")
	}
}

func TestBadSettings(t *testing.T) {
	dir, doc, _ := testEnv(t)
	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(bad, []byte("colour = \"red\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, nil, "--config", bad, "render", doc); err == nil {
		t.Error("unknown settings keys should fail")
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, nil, "version", "--json")
	if err != nil {
		t.Fatal(err)
	}
	var info buildinfo.Info
	if err := json.Unmarshal([]byte(out), &info); err != nil {
		t.Fatalf("version output is not JSON: %v", err)
	}
	if info.GoVersion == "" {
		t.Error("missing go version")
	}
}

func TestCompletionCommand(t *testing.T) {
	out, err := execute(t, nil, "completion", "bash")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "chartlayout") {
		t.Error("bash completion does not mention the command")
	}
	if _, err := execute(t, nil, "completion", "tcsh"); err == nil {
		t.Error("expected an error for an unsupported shell")
	}
}

func TestOutputPaths(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		input   string
		formats []string
		want    []string
	}{
		{"derived from input", "", "charts/rain.toml", []string{"svg"}, []string{"charts/rain.svg"}},
		{"explicit single file", "out.image", "rain.toml", []string{"png"}, []string{"out.image"}},
		{"format extension stripped", "out/chart.svg", "rain.toml", []string{"svg", "png"}, []string{"out/chart.svg", "out/chart.png"}},
		{"base path", "out/chart", "rain.toml", []string{"svg", "json"}, []string{"out/chart.svg", "out/chart.json"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := outputPaths(tt.output, tt.input, tt.formats)
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("outputPaths() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		fallback []string
		want     []string
	}{
		{"empty defaults to svg", "", nil, []string{"svg"}},
		{"empty uses fallback", "", []string{"png"}, []string{"png"}},
		{"multiple formats", "svg, png,json", nil, []string{"svg", "png", "json"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input, tt.fallback)
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
