package main

import "github.com/oshokin/proximity-guard/cmd/proximity-simulator/cmd"

func main() {
	cmd.Execute()
}
