package main

import (
	"log"

	"github.com/thiagokokada/git-branches/cmd"
)

func main() {
	if err := cmd.Run(); err != nil {
		log.Fatalf("git-branches: %v", err)
	}
}
