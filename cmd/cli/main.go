package main

import "churchhub/cmd/cli/command"

func main() {
	command.Execute()
}
