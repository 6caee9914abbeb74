package main

import "github.com/Santosestevialima/telemarketing/cmd"

func main() {
	cmd.Execute()
}
