// Command validate checks puzzle layout JSON files. It checks:
//   - JSON structure and required fields
//   - every piece is on the 3x3 board
//   - the blue and black shoes start on different cells
//   - required messages, and that the solved message has at most one %d
//   - solvability: a solved board is reachable from the start
//
// An unsolvable layout is reported as a warning, not an error, so deliberate
// dead-end layouts still pass.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/wricardo/mcp-training/shoepuzzle/game/engine"
	"github.com/wricardo/mcp-training/shoepuzzle/game/solver"
)

// ValidationResult captures the outcome of validating a single file
type ValidationResult struct {
	File     string
	Valid    bool
	Errors   []string
	Warnings []string
	Info     []string
}

func (r *ValidationResult) fail(format string, args ...interface{}) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// validateConfig loads and validates a single layout file
func validateConfig(ctx context.Context, filePath string) ValidationResult {
	result := ValidationResult{
		File:  filepath.Base(filePath),
		Valid: true,
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.fail("Failed to read file: %v", err)
		return result
	}

	var config engine.PuzzleConfig
	if err := json.Unmarshal(data, &config); err != nil {
		result.fail("Invalid JSON: %v", err)
		return result
	}

	if config.Name == "" {
		result.fail("Missing required field: name")
	}
	if config.Description == "" {
		result.fail("Missing required field: description")
	}

	positions := config.Pieces.Positions()
	for i, p := range positions {
		if !p.OnBoard() {
			result.fail("%s at %s is off the %dx%d board", engine.Piece(i), p, engine.BoardSize, engine.BoardSize)
		}
	}
	if positions[engine.BlueShoe] == positions[engine.BlackShoe] {
		result.fail("Blue and black shoe share cell %s", positions[engine.BlueShoe])
	}

	if config.Messages.Welcome == "" {
		result.fail("Missing required message: welcome")
	}
	if config.Messages.Solved == "" {
		result.fail("Missing required message: solved")
	}
	if !result.Valid {
		return result
	}

	// Anything the checks above missed is caught by the loader's own validation
	if err := engine.ValidatePuzzleConfig(&config); err != nil {
		result.fail("%v", err)
		return result
	}

	start, err := config.InitialState()
	if err != nil {
		result.fail("%v", err)
		return result
	}

	result.Info = append(result.Info, fmt.Sprintf("✓ Name: %s", config.Name))
	result.Info = append(result.Info, fmt.Sprintf("✓ Start: %s", start))
	result.Info = append(result.Info, fmt.Sprintf("✓ Legal moves: %s", start.LegalMoves()))

	res, err := solver.New().Search(ctx, start)
	if err != nil {
		result.fail("Solvability check aborted: %v", err)
		return result
	}
	if goal, ok := res.Node(); ok {
		result.Info = append(result.Info, fmt.Sprintf("✓ Solvable in %d moves", goal.Depth()))
	} else {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Unsolvable: no solved board among %d reachable boards", res.Discovered))
	}

	return result
}

// main validates every *.json file in the given directory (configs by
// default), printing a concise report and exiting with non-zero status if any
// are invalid.
func main() {
	configDir := "configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}

	if !validateDir(context.Background(), os.Stdout, configDir) {
		os.Exit(1)
	}
}

func validateDir(ctx context.Context, w io.Writer, configDir string) bool {
	files, err := filepath.Glob(filepath.Join(configDir, "*.json"))
	if err != nil {
		fmt.Fprintf(w, "Error finding config files: %v\n", err)
		return false
	}
	if len(files) == 0 {
		fmt.Fprintf(w, "No config files found in %s\n", configDir)
		return false
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(ctx, file)
		printResult(w, result)
		if !result.Valid {
			allValid = false
		}
	}

	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Fprintln(w, "✅ All configurations are valid!")
	} else {
		fmt.Fprintln(w, "❌ Some configurations have errors")
	}
	return allValid
}

func printResult(w io.Writer, result ValidationResult) {
	fmt.Fprintf(w, "\n%s %s\n", strings.Repeat("=", 20), result.File)

	if !result.Valid {
		fmt.Fprintln(w, "❌ INVALID")
		for _, err := range result.Errors {
			fmt.Fprintln(w, "  ❌ "+err)
		}
		return
	}

	fmt.Fprintln(w, "✅ VALID")
	for _, info := range result.Info {
		fmt.Fprintln(w, "  "+info)
	}
	for _, warning := range result.Warnings {
		fmt.Fprintln(w, "  ⚠️  "+warning)
	}
}
