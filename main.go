package main

import "azcli/cmd"

func main() {
	cmd.Execute()
}
