package main

import (
	"github.com/pixelquest/accounts/internal/cli"
)

func main() {
	cli.Execute()
}
