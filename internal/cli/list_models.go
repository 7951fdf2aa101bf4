// internal/cli/list_models.go
package ollabench

import (
	"fmt"

	"github.com/mwiater/ollabench/internal/ollama"
	"github.com/spf13/cobra"
)

// listModelsCmd implements 'list models', which runs model discovery only
// and prints the installed models in the order a run would visit them.
var listModelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the models installed on the Ollama host",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		client := ollama.NewClient(cfg.Host, nil)
		models, err := client.ListModels(cmd.Context())
		if err != nil {
			return fmt.Errorf("list models on %s: %w", client.BaseURL(), err)
		}

		out := cmd.OutOrStdout()
		if len(models) == 0 {
			fmt.Fprintf(out, "No models installed on %s.\n", client.BaseURL())
			return nil
		}
		fmt.Fprintf(out, "Models on %s:\n", client.BaseURL())
		for i, model := range models {
			fmt.Fprintf(out, "  %d. %s\n", i+1, model)
		}
		return nil
	},
}

func init() {
	listCmd.AddCommand(listModelsCmd)
}
