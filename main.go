package main

import "github.com/takeshy/reshape/cmd"

func main() {
	cmd.Execute()
}
