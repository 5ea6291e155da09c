// Package main is the franka-ik command itself.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	robofincli "go.viam.com/robofin/cli"
)

func main() {
	if err := realMain(); err != nil {
		log.Fatal(err)
	}
}

func realMain() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	return robofincli.NewApp(os.Stdout).RunContext(ctx, os.Args)
}
