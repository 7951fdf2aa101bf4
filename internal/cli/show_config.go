// internal/cli/show_config.go
package ollabench

import (
	"github.com/k0kubun/pp"
	"github.com/mwiater/ollabench/internal/appconfig"
	"github.com/spf13/cobra"
)

var showConfigRaw bool

// showConfigCmd implements 'show config', which prints the merged
// configuration after file, flag, and default layers are applied.
var showConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show config settings",
	Long:  `Show config settings ensuring that the JSON configs are loaded properly and overriden by flags accordingly.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := GetConfig()
		if showConfigRaw {
			pp.Fprintln(cmd.OutOrStdout(), cfg)
			return
		}
		appconfig.ShowConfig(cmd.OutOrStdout(), cfg.ConfigPath, cfg)
	},
}

func init() {
	showConfigCmd.Flags().BoolVar(&showConfigRaw, "raw", false, "dump the config struct as-is")
	showCmd.AddCommand(showConfigCmd)
}
