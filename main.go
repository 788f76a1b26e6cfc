package main

import "github.com/femtools/weakform/cmd"

func main() {
	cmd.Execute()
}
