package main

import "github.com/mcoot/gamehub/internal/cli"

func main() {
	cli.Execute()
}
