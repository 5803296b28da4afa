package main

import "github.com/relloyd/hptransform/cmd"

func main() {
	cmd.Execute()
}
