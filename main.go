package main

import (
	"focusboard/cmd"
)

func main() {
	cmd.Execute()
}
