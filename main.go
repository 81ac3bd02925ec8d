package main

import "logview/commands"

func main() {
	commands.Execute()
}
