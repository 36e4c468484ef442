package main

import "github.com/nfrund/tradeskills/cmd/coursectl/cmd"

func main() {
	cmd.Execute()
}
