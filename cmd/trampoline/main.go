package main

import "github.com/mcoot/trampoline/internal/cli"

func main() {
	cli.Execute()
}
