package main

import (
	"log"
	"os"

	"streamhouse/api/internal/cli"
)

// @title Streamhouse API
// @version 1.0
// @description Backend for live rooms, viewer tracking and OTP-verified accounts.
// @host localhost:8080
// @BasePath /
func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if err := cli.Execute(); err != nil {
		log.Fatalf("❌ %v", err)
	}
}
