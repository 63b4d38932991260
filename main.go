package main

import "github.com/ghaggin/newsgate/cmd"

func main() {
	cmd.Execute()
}
