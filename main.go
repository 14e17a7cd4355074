package main

import "github.com/alexiusacademia/gopmm/cmd"

func main() {
	cmd.Execute()
}
