package main

import "github.com/mydehq/shelve/internal/cli"

func main() {
	cli.Execute()
}
