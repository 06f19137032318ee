package main

import "github.com/nuoiem/ms-go-donations/cmd"

func main() {
	cmd.Execute()
}
