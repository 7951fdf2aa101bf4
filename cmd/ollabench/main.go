// cmd/ollabench/main.go
package main

import (
	cmd "github.com/mwiater/ollabench/internal/cli"
)

// main starts the ollabench CLI application by delegating to the
// cobra root command defined in the cli package.
func main() {
	cmd.Execute()
}
