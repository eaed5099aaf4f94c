// cmd/vep-overview/main.go
package main

import (
	"veptab/internal/appshell"
	"veptab/internal/overviewapp"
)

func main() {
	appshell.Main(overviewapp.RunContext)
}
