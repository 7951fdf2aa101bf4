package report

import (
	"encoding/json"
	"fmt"

	"github.com/mwiater/ollabench/internal/util"
)

// WriteJSON writes doc as indented JSON to path.
func WriteJSON(path string, doc Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding results: %w", err)
	}
	if err := util.WriteFile(path, append(data, '\n')); err != nil {
		return fmt.Errorf("error writing results to file: %w", err)
	}
	return nil
}
