package main

import "github.com/KaramelBytes/bodycomp-cli/cmd"

func main() {
	cmd.Execute()
}
