package main

import (
	"github.com/distkit/distkit/cmd"
)

func main() {
	cmd.Execute()
}
