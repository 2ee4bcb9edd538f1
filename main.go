package main

import "github.com/sainath-666/storefront/cmd"

func main() {
	cmd.Start()
}
