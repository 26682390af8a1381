//go:build !desktop

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/chazu/quillcad/pkg/config"
	"github.com/chazu/quillcad/pkg/overlay"
	"github.com/gogpu/gg"
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "quillcad",
	Short: "Sketch on a ground plane and extrude into solids",
	Long: `quillcad replays sketch scripts headlessly: every click, cancel and
extrude runs through the same session the desktop app uses. Build with
-tags desktop for the interactive window.`,
	Version: Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			gg.SetLogger(slog.Default())
		} else {
			log.SetOutput(io.Discard)
		}
	},
}

var (
	pngPath   string
	pngWidth  int
	pngHeight int
	pngScale  float64
	asJSON    bool
)

var runCmd = &cobra.Command{
	Use:   "run <script>",
	Short: "Run a sketch script and report the resulting solids",
	Args:  cobra.ExactArgs(1),
	RunE:  runScript,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("quillcad", Version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "TOML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log session and renderer events")

	runCmd.Flags().StringVar(&pngPath, "png", "", "write the final sketch overlay to this PNG file")
	runCmd.Flags().IntVar(&pngWidth, "width", 800, "PNG width in pixels")
	runCmd.Flags().IntVar(&pngHeight, "height", 800, "PNG height in pixels")
	runCmd.Flags().Float64Var(&pngScale, "scale", 40, "PNG pixels per world unit")
	runCmd.Flags().BoolVar(&asJSON, "json", false, "print the full result as JSON")

	rootCmd.AddCommand(runCmd, versionCmd)
}

func runScript(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	source, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading script: %w", err)
	}

	result := NewApp(cfg).RunScript(string(source))
	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			if e.Line > 0 {
				fmt.Fprintf(os.Stderr, "%s:%d: %s\n", args[0], e.Line, e.Message)
			} else {
				fmt.Fprintf(os.Stderr, "%s: %s\n", args[0], e.Message)
			}
		}
		return fmt.Errorf("%d error(s)", len(result.Errors))
	}

	if pngPath != "" {
		f, err := os.Create(pngPath)
		if err != nil {
			return err
		}
		view := overlay.View{Width: pngWidth, Height: pngHeight, Scale: pngScale}
		if err := overlay.RenderPNG(result.Overlay, view, f); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w.Message)
	}
	for _, m := range result.Meshes {
		fmt.Fprintf(out, "%-20s %6d vertices %6d triangles\n", m.PartName, len(m.Vertices)/3, len(m.Indices)/3)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
