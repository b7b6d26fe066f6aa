package main

import "github.com/logicossoftware/go-ldif/cmd/ldif/cmd"

func main() {
	cmd.Execute()
}
