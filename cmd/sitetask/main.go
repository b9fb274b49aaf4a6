package main

import "github.com/sitetask/sitetask/internal/command"

func main() {
	command.Execute()
}
