package main

import "pos-terminal/internal/cmd"

func main() {
	cmd.Execute()
}
