package main

import "catalog/cmd"

func main() {
	cmd.Execute()
}
