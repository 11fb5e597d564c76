package main

import (
	"github.com/chronic-org/chronic/cmd/chronic/command"
)

func main() {
	command.Execute()
}
