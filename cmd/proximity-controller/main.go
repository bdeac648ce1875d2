package main

import "github.com/oshokin/proximity-guard/cmd/proximity-controller/cmd"

func main() {
	cmd.Execute()
}
