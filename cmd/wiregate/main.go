package main

import "github.com/wiregate/wiregate/internal/cli"

func main() {
	cli.Execute()
}
