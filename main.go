package main

import "github.com/itsmostafa/scriptflow/cmd"

func main() {
	cmd.Execute()
}
