package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aurelia-dev/aurelia/internal/config"
)

var (
	cfgDir  string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "aurelia",
	Short: "AST-aware RAG engine for intelligent codebase conversations",
	Long: `Aurelia ingests a repository, classifies its files, and decomposes
Python sources into semantically meaningful chunks for retrieval.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgDir, "config", "", "config directory (default is $HOME/.aurelia)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// newLoader resolves the configuration loader, honoring --config.
func newLoader() (config.Loader, error) {
	if cfgDir != "" {
		return config.NewLoaderAt(cfgDir), nil
	}
	return config.NewLoader()
}

// loadConfig loads and validates the active configuration.
func loadConfig() (*config.Config, error) {
	loader, err := newLoader()
	if err != nil {
		return nil, err
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
