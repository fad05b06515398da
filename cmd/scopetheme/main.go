package main

import "scopetheme/internal/cli"

func main() {
	cli.Execute()
}
