package main

import "lastmile/internal/cmd"

func main() {
	cmd.Execute()
}
