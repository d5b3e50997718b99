package main

import "poetry2uv/internal/cli"

func main() {
	cli.Execute()
}
