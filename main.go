package main

import "github.com/litteralabs/littera/cmd"

func main() {
	cmd.Execute()
}
