package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func writeGraphFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "graph.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write graph file: %v", err)
	}
	return path
}

// TestRealModeTriangleExitsZero checks the CLI boundary end to end: the
// triangle graph under mode "real" with CELF exits 0.
func TestRealModeTriangleExitsZero(t *testing.T) {
	path := writeGraphFile(t, "0 1 1.0\n1 2 1.0\n2 0 1.0\n")
	code := RunCLI([]string{"real", path, "0", "1", "1", "0", "10"})
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
}

func TestRealModeMissingArgsExitsOne(t *testing.T) {
	code := RunCLI([]string{"real"})
	if code != 1 {
		t.Fatalf("expected exit code 1 for missing arguments, got %d", code)
	}
}

func TestUnknownModeExitsOne(t *testing.T) {
	code := RunCLI([]string{"bogus"})
	if code != 1 {
		t.Fatalf("expected exit code 1 for unknown mode, got %d", code)
	}
}

func TestNoArgsExitsOne(t *testing.T) {
	code := RunCLI(nil)
	if code != 1 {
		t.Fatalf("expected exit code 1 for no arguments, got %d", code)
	}
}

func TestRealModeNonexistentGraphFileExitsOne(t *testing.T) {
	code := RunCLI([]string{"real", "/nonexistent/path.txt", "0", "1", "1"})
	if code != 1 {
		t.Fatalf("expected exit code 1 for missing graph file, got %d", code)
	}
}

func TestPriorModeExitsZero(t *testing.T) {
	path := writeGraphFile(t, "0 1 0.5\n1 2 0.5\n2 0 0.5\n")
	code := RunCLI([]string{"prior", path, "1", "1", "0", "2", "1", "1", "20"})
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
}

func TestEGreedyModeRejectsEpsilonOutOfRange(t *testing.T) {
	path := writeGraphFile(t, "0 1 0.5\n")
	code := RunCLI([]string{"egreedy", path, "1", "1", "0", "1", "2", "1", "1.5"})
	if code != 1 {
		t.Fatalf("expected exit code 1 for out-of-range epsilon, got %d", code)
	}
}

func TestBenchmarkModeExitsZero(t *testing.T) {
	path := writeGraphFile(t, "0 1 0.5\n1 2 0.5\n")
	code := RunCLI([]string{"benchmark", path, "1", "1", "1", "5"})
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
}

func TestSpreadModeExitsZero(t *testing.T) {
	path := writeGraphFile(t, "0 1 0.5\n1 2 0.5\n2 3 0.5\n")
	code := RunCLI([]string{"spread", path, "1", "1", "1", "10"})
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
}

// TestRealModePMCExitsZero checks that evaluator index 5 (PMC) is a
// reachable CLI entry point, not just a unit-test-only evaluator.
func TestRealModePMCExitsZero(t *testing.T) {
	path := writeGraphFile(t, "0 1 1.0\n1 2 1.0\n2 0 1.0\n")
	code := RunCLI([]string{"real", path, "5", "1", "1", "0", "10"})
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
}
