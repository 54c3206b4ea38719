package main

import "cozypomodoro/internal/cli"

func main() {
	cli.Execute()
}
