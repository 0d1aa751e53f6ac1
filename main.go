package main

import "github.com/chriserin/ea/cmd"

func main() {
	cmd.Execute()
}
