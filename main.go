package main

import (
	"github.com/gatekv/gatekv/cmd"
)

func main() {
	cmd.Execute()
}
