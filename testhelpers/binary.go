package testhelpers

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
)

var (
	binaryPath string
	binaryDir  string
	binaryOnce sync.Once
	binaryErr  error
)

// BinaryPath returns the path of a gl binary built from this module,
// building it on first use.
func BinaryPath(t *testing.T) string {
	t.Helper()
	binaryOnce.Do(func() {
		binaryDir, binaryPath, binaryErr = buildBinary()
	})
	if binaryErr != nil {
		t.Fatalf("Failed to build gl binary: %v", binaryErr)
	}
	return binaryPath
}

// TestMain runs the package tests and removes the shared binary afterwards.
func TestMain(m *testing.M) {
	code := m.Run()
	if binaryDir != "" {
		_ = os.RemoveAll(binaryDir)
	}
	os.Exit(code)
}

func buildBinary() (string, string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", "", fmt.Errorf("failed to get working directory: %w", err)
	}
	moduleRoot := findModuleRoot(wd)
	if moduleRoot == "" {
		return "", "", fmt.Errorf("could not find module root (go.mod) starting from %s", wd)
	}

	tmpDir, err := os.MkdirTemp("", "gl-test-binary-*")
	if err != nil {
		return "", "", fmt.Errorf("failed to create temp directory: %w", err)
	}
	path := filepath.Join(tmpDir, "gl")

	cmd := exec.Command("go", "build", "-o", path, "./cmd/gl")
	cmd.Dir = moduleRoot
	if output, err := cmd.CombinedOutput(); err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", fmt.Errorf("failed to build: %s: %w", string(output), err)
	}
	return tmpDir, path, nil
}

// findModuleRoot walks up from startDir to the directory holding go.mod.
func findModuleRoot(startDir string) string {
	dir := startDir
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// RunBinary runs gl in dir and returns its combined output and exit code.
func RunBinary(t *testing.T, dir string, args ...string) (string, int) {
	t.Helper()
	cmd := exec.Command(BinaryPath(t), args...)
	cmd.Dir = dir
	cmd.Env = append(gitEnv(), "NO_COLOR=1")
	out, err := cmd.CombinedOutput()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return string(out), exitErr.ExitCode()
		}
		t.Fatalf("Failed to run gl: %v", err)
	}
	return string(out), 0
}
