package main

import (
	"context"
	"io"
	"os"
	"strings"
	"testing"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("creating pipe: %v", err)
	}
	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	fn()

	w.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("reading captured stdout: %v", err)
	}
	return string(out)
}

func TestRunEvaluatesExpressionFromFile(t *testing.T) {
	var code int
	out := captureStdout(t, func() {
		code = run(context.Background(), []string{"--no-color", "testdata/example.yaml"})
	})
	if code != 0 {
		t.Fatalf("run() = %d, want 0; output: %s", code, out)
	}
	if !strings.Contains(out, `[A, C]`) {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestRunMissingFileArgument(t *testing.T) {
	code := run(context.Background(), nil)
	if code != 1 {
		t.Errorf("run() with no args = %d, want 1", code)
	}
}

func TestRunVersionFlag(t *testing.T) {
	out := captureStdout(t, func() {
		run(context.Background(), []string{"--version"})
	})
	if !strings.Contains(out, "celeval version") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestRunUnreadableFile(t *testing.T) {
	code := run(context.Background(), []string{"testdata/does-not-exist.yaml"})
	if code != 1 {
		t.Errorf("run() with a missing input file = %d, want 1", code)
	}
}
