package main

import (
	_ "github.com/joho/godotenv/autoload"

	"avaro.dev/internal/cli"
)

func main() {
	cli.ExitOnError(cli.Execute())
}
