/*
Copyright © 2025 tieubaoca
*/
package cmd

import (
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/tieubaoca/mindmap-be/config"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mindmap-be",
	Short: "Mind-map planning backend with knowledge-grounded node chat",
	Long: `mindmap-be serves projects, nodes and edges of a planning mind map together with
per-project knowledge documents. Every node has an assistant chat that grounds its answers
in the most relevant knowledge and falls back to a local responder when no model is reachable.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config/config.yaml", "config file (empty for defaults and environment only)")
}

func loadConfig() *config.Config {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}
