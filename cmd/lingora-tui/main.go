// Lingora - interactive translation file auditor.
package main

import "github.com/kannan/lingora/internal/tui"

func main() {
	tui.Execute()
}
