// internal/cli/root.go
package ollabench

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/mwiater/ollabench/internal/appconfig"
	"github.com/mwiater/ollabench/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile       string
	currentConfig appconfig.Config
)

var rootCmd = &cobra.Command{
	Use:          "ollabench",
	Short:        "Benchmark every model installed on an Ollama host",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// 1) Load config (file or defaults) and seed viper with it, so flags
		//    only override what the user explicitly set.
		fileConfig, err := appconfig.Load(cfgFile)
		if err != nil {
			return err
		}
		seedDefaults(fileConfig)

		// 2) Materialize the fully merged configuration into currentConfig
		//    (flags > config > defaults).
		var cfg appconfig.Config
		if err := viper.Unmarshal(&cfg); err != nil {
			return fmt.Errorf("unmarshal config: %w", err)
		}
		cfg.ConfigPath = fileConfig.ConfigPath
		currentConfig = cfg

		if err := logging.Init(cfg.LogFilePath()); err != nil {
			return fmt.Errorf("init logging: %w", err)
		}
		logging.SetDebug(cfg.Debug)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return logging.Close()
	},
}

// Execute runs the root command. Ctrl-C cancels the command's context.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", appconfig.DefaultConfigPath, "config file (e.g., config/config.json)")

	// Persistent flags available to all commands
	rootCmd.PersistentFlags().String("host", appconfig.DefaultHost, "Ollama endpoint")
	rootCmd.PersistentFlags().Int("timeout", 60, "per-model request timeout in seconds")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	// Bind flags to Viper keys (flags override config)
	_ = viper.BindPFlag("host", rootCmd.PersistentFlags().Lookup("host"))
	_ = viper.BindPFlag("timeout", rootCmd.PersistentFlags().Lookup("timeout"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
}

// seedDefaults makes the loaded file the lowest-precedence layer in viper.
func seedDefaults(cfg appconfig.Config) {
	viper.SetDefault("host", cfg.Host)
	viper.SetDefault("prompt", cfg.Prompt)
	viper.SetDefault("output", cfg.Output)
	viper.SetDefault("timeout", cfg.TimeoutSeconds)
	viper.SetDefault("gpuTimeout", cfg.GPUTimeoutSeconds)
	viper.SetDefault("noChart", cfg.NoChart)
	viper.SetDefault("noBrowser", cfg.NoBrowser)
	viper.SetDefault("tui", cfg.TUI)
	viper.SetDefault("json", cfg.JSON)
	viper.SetDefault("logFile", cfg.LogFilePath())
	viper.SetDefault("debug", cfg.Debug)
}

// GetConfig returns the merged configuration of the running command.
func GetConfig() appconfig.Config {
	return currentConfig
}
