// cmd/vep-pipeline/main.go
package main

import (
	"veptab/internal/appshell"
	"veptab/internal/pipelineapp"
)

func main() {
	appshell.Main(pipelineapp.RunContext)
}
