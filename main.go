// Package main provides a pointer to cachesim's actual entry points.
// cachesim is a configurable cache and main-memory hierarchy simulator.
//
// For the full CLIs, use: go run ./cmd/cachesim, ./cmd/sweep,
// ./cmd/compare, or ./cmd/gentrace.
package main

import "fmt"

func main() {
	fmt.Println("cachesim - cache and main-memory hierarchy simulator")
	fmt.Println("")
	fmt.Println("This module exposes four CLIs:")
	fmt.Println("  go run ./cmd/cachesim  -- replay a trace through a cache hierarchy")
	fmt.Println("  go run ./cmd/sweep     -- parameter-sweep search over cache shapes")
	fmt.Println("  go run ./cmd/compare   -- compare named hierarchy configurations")
	fmt.Println("  go run ./cmd/gentrace  -- generate or list synthetic access traces")
}
