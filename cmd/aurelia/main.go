package main

import "github.com/aurelia-dev/aurelia/internal/cli"

func main() {
	cli.Execute()
}
