package main

import "github.com/mvela/chatblocks/cmd"

func main() {
	cmd.Execute()
}
