package main

import "github.com/jfmyers9/sequels/cmd"

func main() {
	cmd.Execute()
}
