// cmd/vep-normalise/main.go
package main

import (
	"veptab/internal/appshell"
	"veptab/internal/normaliseapp"
)

func main() {
	appshell.Main(normaliseapp.RunContext)
}
