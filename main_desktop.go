//go:build desktop

package main

import (
	"os"

	"github.com/chazu/quillcad/pkg/config"
	"github.com/spf13/cobra"
	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
)

var (
	configPath string
	assetsDir  string
)

var rootCmd = &cobra.Command{
	Use:     "quillcad",
	Short:   "Interactive sketch and extrude modeller",
	Version: Version,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		app := NewApp(cfg)

		return wails.Run(&options.App{
			Title:  "QuillCAD",
			Width:  1280,
			Height: 800,
			AssetServer: &assetserver.Options{
				Assets: os.DirFS(assetsDir),
			},
			OnStartup: app.startup,
			Bind:      []interface{}{app},
		})
	},
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "TOML config file")
	rootCmd.Flags().StringVar(&assetsDir, "assets", "frontend/dist", "frontend build directory")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
