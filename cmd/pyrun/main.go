package main

import "pyrun/internal/cli"

func main() {
	cli.Execute()
}
