package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"igpt/internal/cli"
)

func main() {
	_ = godotenv.Load()

	if err := cli.RootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
