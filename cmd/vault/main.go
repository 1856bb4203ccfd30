package main

import "github.com/adnanxsalim/tool-vault/cmd/vault/cmd"

func main() {
	cmd.Execute()
}
