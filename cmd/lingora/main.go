// Lingora - translation file auditor.
package main

import "github.com/kannan/lingora/internal/cli"

func main() {
	cli.Execute()
}
