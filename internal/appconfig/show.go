package appconfig

import (
	"fmt"
	"io"
)

// ShowConfig prints the current configuration summary.
func ShowConfig(out io.Writer, file string, cfg *Config) {
	if file == "" {
		fmt.Fprintln(out, "No config file loaded (using defaults).")
	} else {
		fmt.Fprintf(out, "Config file: %s\n\n", file)
	}

	if cfg == nil {
		fallback := Defaults()
		cfg = &fallback
	}

	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintf(out, "  Project Root:    %s\n", cfg.ProjectRoot())
	fmt.Fprintf(out, "  Data Dir:        %s\n", cfg.DataDir)
	fmt.Fprintf(out, "  Storage Dir:     %s\n", cfg.StorageDir)
	fmt.Fprintf(out, "  Chunk Size:      %d\n", cfg.ChunkSize)
	fmt.Fprintf(out, "  Chunk Overlap:   %d\n", cfg.ChunkOverlap)
	fmt.Fprintf(out, "  Top K:           %d\n", cfg.TopK)
	fmt.Fprintf(out, "  Extensions:      %v\n", cfg.Extensions)
	fmt.Fprintf(out, "  Exclude Globs:   %v\n", cfg.ExcludeGlobs)
	fmt.Fprintf(out, "  Preview Chars:   %d\n", cfg.PreviewChars)
	fmt.Fprintf(out, "  Log File:        %s\n", cfg.LogFilePath())
	fmt.Fprintf(out, "  Debug:           %v\n", cfg.Debug)
	fmt.Fprintf(out, "  JSON Mode:       %v\n", cfg.JSONMode)
}
