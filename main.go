package main

import "github.com/they4kman/minesclone/cmd"

func main() {
	cmd.Execute()
}
