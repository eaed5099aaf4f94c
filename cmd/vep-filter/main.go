// cmd/vep-filter/main.go
package main

import (
	"veptab/internal/appshell"
	"veptab/internal/filterapp"
)

func main() {
	appshell.Main(filterapp.RunContext)
}
