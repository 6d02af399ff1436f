package bundler

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestESBuildDualFormat(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src")
	if err := os.MkdirAll(src, 0o750); err != nil {
		t.Fatal(err)
	}
	entry := filepath.Join(src, "index.js")
	source := `export const version = "{{version}}";
export function greet(name) { return "hello " + name; }
`
	if err := os.WriteFile(entry, []byte(source), 0o644); err != nil {
		t.Fatal(err)
	}

	opts := Options{
		ProjectRoot:      root,
		EntryPoint:       entry,
		OutDir:           filepath.Join(root, "dist"),
		Formats:          []Format{FormatESM, FormatCJS},
		ExternalPackages: true,
		TreeShaking:      true,
	}

	res, err := NewESBuild().Bundle(context.Background(), opts)
	if err != nil {
		t.Fatalf("Bundle() failed: %v", err)
	}

	for _, format := range opts.Formats {
		data, err := os.ReadFile(res.Artifacts[format])
		if err != nil {
			t.Fatalf("%s artifact unreadable: %v", format, err)
		}
		if !strings.Contains(string(data), "{{version}}") {
			t.Errorf("%s artifact lost the version placeholder", format)
		}
	}

	// CJS output must be consumable via require().
	cjs, _ := os.ReadFile(res.Artifacts[FormatCJS])
	if !strings.Contains(string(cjs), "exports") {
		t.Error("cjs artifact does not export anything")
	}
	if !strings.HasSuffix(res.Primary, "index.cjs") {
		t.Errorf("primary = %q, want the CJS artifact", res.Primary)
	}
}

func TestESBuildReportsErrors(t *testing.T) {
	root := t.TempDir()
	entry := filepath.Join(root, "broken.js")
	if err := os.WriteFile(entry, []byte("const ="), 0o644); err != nil {
		t.Fatal(err)
	}

	opts := Options{
		ProjectRoot: root,
		EntryPoint:  entry,
		OutDir:      filepath.Join(root, "dist"),
		Formats:     []Format{FormatCJS},
	}

	if _, err := NewESBuild().Bundle(context.Background(), opts); err == nil {
		t.Error("expected error for unparseable entry")
	}
}

func TestESBuildCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts := Options{Formats: []Format{FormatCJS}}
	if _, err := NewESBuild().Bundle(ctx, opts); err == nil {
		t.Error("expected context error")
	}
}
