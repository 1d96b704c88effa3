package main

import "github.com/sendagame/progress/internal/cli"

func main() {
	cli.Execute()
}
