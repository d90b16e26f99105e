package main

import "github.com/notargets/gocontact/cmd"

func main() {
	cmd.Execute()
}
