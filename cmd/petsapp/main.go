// filepath: cmd/petsapp/main.go
package main

import (
	"petsapp/internal/cli"
)

func main() {
	// Delegate all execution to the CLI package
	cli.Execute()
}
