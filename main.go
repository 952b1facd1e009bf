package main

import "github.com/kfsoftware/hlf-console/cmd"

func main() {
	cmd.Execute()
}
