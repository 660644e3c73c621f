package main

import "asset-verifier/cmd"

func main() {
	cmd.Execute()
}
