package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validLayout = `{
	"name": "Test Layout",
	"description": "Test configuration",
	"pieces": {
		"block": {"row": 0, "col": 0},
		"red_shoe": {"row": 0, "col": 0},
		"blue_shoe": {"row": 1, "col": 1},
		"black_shoe": {"row": 2, "col": 2}
	},
	"messages": {
		"welcome": "Welcome!",
		"solved": "Solved in %d moves!"
	}
}`

func writeLayout(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test_layout.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func contains(lines []string, substr string) bool {
	for _, line := range lines {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}

func TestValidateConfig_ValidConfig(t *testing.T) {
	path := writeLayout(t, validLayout)

	result := validateConfig(context.Background(), path)
	if !result.Valid {
		t.Fatalf("Expected valid config, but got errors: %v", result.Errors)
	}
	if result.File != "test_layout.json" {
		t.Errorf("Expected file name test_layout.json, got %s", result.File)
	}
	if !contains(result.Info, "Solvable in 2 moves") {
		t.Errorf("Expected solvability info, got %v", result.Info)
	}
	if !contains(result.Info, "Legal moves: {RIGHT,DOWN}") {
		t.Errorf("Expected legal moves info, got %v", result.Info)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("Expected no warnings, got %v", result.Warnings)
	}
}

func TestValidateConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "invalid JSON",
			content: `{"name": "test", invalid json}`,
			want:    "Invalid JSON",
		},
		{
			name:    "missing name",
			content: strings.Replace(validLayout, `"name": "Test Layout",`, "", 1),
			want:    "Missing required field: name",
		},
		{
			name:    "missing description",
			content: strings.Replace(validLayout, `"description": "Test configuration",`, "", 1),
			want:    "Missing required field: description",
		},
		{
			name:    "piece off the board",
			content: strings.Replace(validLayout, `"black_shoe": {"row": 2, "col": 2}`, `"black_shoe": {"row": 3, "col": 2}`, 1),
			want:    "black_shoe at (3,2) is off the 3x3 board",
		},
		{
			name:    "blue on black",
			content: strings.Replace(validLayout, `"blue_shoe": {"row": 1, "col": 1}`, `"blue_shoe": {"row": 2, "col": 2}`, 1),
			want:    "Blue and black shoe share cell (2,2)",
		},
		{
			name:    "missing welcome",
			content: strings.Replace(validLayout, `"welcome": "Welcome!",`, "", 1),
			want:    "Missing required message: welcome",
		},
		{
			name:    "bad solved format",
			content: strings.Replace(validLayout, "Solved in %d moves!", "Solved in %s moves!", 1),
			want:    "single %d",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validateConfig(context.Background(), writeLayout(t, tt.content))
			if result.Valid {
				t.Fatal("Expected invalid config")
			}
			if !contains(result.Errors, tt.want) {
				t.Errorf("Expected %q among errors %v", tt.want, result.Errors)
			}
		})
	}
}

func TestValidateConfig_MissingFile(t *testing.T) {
	result := validateConfig(context.Background(), "/non/existent/file.json")
	if result.Valid {
		t.Error("Expected invalid result for missing file")
	}
	if !contains(result.Errors, "Failed to read file") {
		t.Errorf("Expected 'Failed to read file' error, got %v", result.Errors)
	}
}

func TestValidateConfig_Unsolvable(t *testing.T) {
	result := validateConfig(context.Background(), filepath.Join("..", "..", "configs", "dead_end.json"))
	if !result.Valid {
		t.Fatalf("An unsolvable layout is still valid, got errors: %v", result.Errors)
	}
	if !contains(result.Warnings, "Unsolvable") {
		t.Errorf("Expected an unsolvable warning, got %v", result.Warnings)
	}
}

func TestValidateConfig_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := validateConfig(ctx, writeLayout(t, validLayout))
	if result.Valid {
		t.Error("Expected a canceled solvability check to fail validation")
	}
}

func TestValidateDir(t *testing.T) {
	var buf bytes.Buffer
	if !validateDir(context.Background(), &buf, filepath.Join("..", "..", "configs")) {
		t.Fatalf("Expected the shipped layouts to be valid:\n%s", buf.String())
	}

	out := buf.String()
	for _, want := range []string{"classic.json", "✓ Solvable in 24 moves", "⚠️  Unsolvable", "✅ All configurations are valid!"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output:\n%s", want, out)
		}
	}
}

func TestValidateDir_Invalid(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "good.json"), []byte(validLayout), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if validateDir(context.Background(), &buf, dir) {
		t.Error("Expected a directory with a broken file to fail")
	}
	if !strings.Contains(buf.String(), "❌ INVALID") {
		t.Errorf("Expected an INVALID entry:\n%s", buf.String())
	}
}

func TestValidateDir_Empty(t *testing.T) {
	var buf bytes.Buffer
	if validateDir(context.Background(), &buf, t.TempDir()) {
		t.Error("Expected an empty directory to fail")
	}
}
