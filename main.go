package main

import "github.com/khudka/khudka/cmd"

func main() {
	cmd.Execute()
}
