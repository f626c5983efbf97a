package main

import "github.com/Rorical/RoriFunc/cmd"

func main() {
	cmd.Execute()
}
