package main

import (
	"github.com/pyneda/traversalprobe/cmd"
	"github.com/pyneda/traversalprobe/internal/config"
)

func main() {
	config.LoadConfig()
	cmd.Execute()
}
