// Package main runs booking desk operations against the storyline heat engine.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	bookingcmd "github.com/louisbranch/heelturn.club/internal/cmd/booking"
)

func main() {
	cfg, err := bookingcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[BOOKING] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := bookingcmd.Run(ctx, cfg, os.Stdout, os.Stderr); err != nil {
		log.Fatalf("booking: %v", err)
	}
}
