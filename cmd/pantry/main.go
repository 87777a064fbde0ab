package main

import "github.com/dukerupert/pantry/internal/cli"

func main() {
	cli.Execute()
}
