package main

import "github.com/aalvaropc/bracefix/internal/cli"

func main() {
	cli.Execute()
}
