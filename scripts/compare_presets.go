// compare_presets.go - Compare output from the built-in cleaner presets
//
// Usage: go run scripts/compare_presets.go [file]
//
// Reads stdin when no file is given.
//
// Example:
//   curl -s https://example.com/products | go run scripts/compare_presets.go

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jmylchreest/textclean/pkg/textclean"
)

func main() {
	var (
		data []byte
		err  error
	)
	if len(os.Args) > 1 {
		data, err = os.ReadFile(os.Args[1])
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		os.Exit(1)
	}

	input := string(data)
	fmt.Printf("Input size: %d bytes\n\n", len(input))

	presets := []struct {
		name string
		cfg  textclean.Config
	}{
		{"default", textclean.DefaultConfig()},
		{"multiline", textclean.PresetMultiline()},
		{"keep-quotes", textclean.PresetKeepQuotes()},
		{"description", textclean.PresetDescription()},
	}

	for _, p := range presets {
		fmt.Println(strings.Repeat("=", 61))
		fmt.Printf("PRESET: %s\n", p.name)
		fmt.Println(strings.Repeat("=", 61))

		c, err := textclean.NewFromConfig(p.cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error building %s cleaner: %v\n", p.name, err)
			os.Exit(1)
		}

		result := c.CleanWithStats(input)
		fmt.Println(result.Stats.String())

		fmt.Println("\n--- Preview (first 500 chars) ---")
		fmt.Println(c.TruncateWithSuffix(result.Content, 500, "\n..."))
		fmt.Println()
	}
}
