// cmd/vep-merge/main.go
package main

import (
	"veptab/internal/appshell"
	"veptab/internal/mergeapp"
)

func main() {
	appshell.Main(mergeapp.RunContext)
}
