package main

import "github.com/Dosada05/tournament-platform/cli"

func main() {
	cli.Execute()
}
