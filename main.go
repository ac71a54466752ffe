package main

import "github.com/KaramelBytes/actionboard-cli/cmd"

func main() {
	cmd.Execute()
}
