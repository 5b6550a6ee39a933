package main

import "github.com/devbyte-game/devbyte/internal/cli"

func main() {
	cli.Execute()
}
