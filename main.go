package main

import "github.com/chriserin/pickle/cmd"

func main() {
	cmd.Execute()
}
