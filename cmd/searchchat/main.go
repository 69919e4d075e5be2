package main

import (
	"github.com/habiliai/searchchat/cmd/searchchat/cmd"
)

func main() {
	cmd.Execute()
}
