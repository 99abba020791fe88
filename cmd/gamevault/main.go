package main

import "github.com/mcoot/gamevault/internal/cli"

func main() {
	cli.Execute()
}
