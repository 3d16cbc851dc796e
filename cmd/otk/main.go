package main

import "github.com/osbuild/otk/internal/cmd"

func main() {
	cmd.Execute()
}
