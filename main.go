package main

import "meeting-manager/cmd"

func main() {
	cmd.Execute()
}
