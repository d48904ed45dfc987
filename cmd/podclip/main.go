package main

import "github.com/podclip/podclip/internal/cli"

func main() {
	cli.Main()
}
