package main

import "github.com/ArnaudCalmettes/dotscreen/cmd"

func main() {
	cmd.Execute()
}
