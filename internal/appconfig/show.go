package appconfig

import (
	"fmt"
	"io"
)

// ShowConfig prints the current configuration summary.
func ShowConfig(out io.Writer, file string, cfg Config) {
	if file == "" {
		fmt.Fprintln(out, "No config file loaded (using defaults).")
	} else {
		fmt.Fprintf(out, "Config file: %s\n\n", file)
	}

	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintf(out, "  Host:            %s\n", cfg.Host)
	fmt.Fprintf(out, "  Prompt:          %s\n", cfg.Prompt)
	fmt.Fprintf(out, "  Output Prefix:   %s\n", cfg.Output)
	fmt.Fprintf(out, "  Request Timeout: %s\n", cfg.RequestTimeout())
	fmt.Fprintf(out, "  GPU Timeout:     %s\n", cfg.GPUCheckTimeout())
	fmt.Fprintf(out, "  Chart:           %v\n", !cfg.NoChart)
	fmt.Fprintf(out, "  Open Browser:    %v\n", !cfg.NoBrowser)
	fmt.Fprintf(out, "  TUI:             %v\n", cfg.TUI)
	fmt.Fprintf(out, "  JSON Report:     %v\n", cfg.JSON)
	fmt.Fprintf(out, "  Log File:        %s\n", cfg.LogFilePath())
	fmt.Fprintf(out, "  Debug:           %v\n", cfg.Debug)
}
