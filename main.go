package main

import "github.com/example/tallum/cmd"

func main() {
	cmd.Execute()
}
