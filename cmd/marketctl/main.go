// Package main - marketctl CLI
//
// Usage:
//
//	go run ./cmd/marketctl markets
//	go run ./cmd/marketctl search IBEX35 '^Banco'
//	go run ./cmd/marketctl show IBEX35 ITX --debug
//	go run ./cmd/marketctl seed
package main

import (
	"os"

	"github.com/felipet/finance-api/cmd/marketctl/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
