// Command simulate runs headless Monte-Carlo seasons and prints balance
// statistics: chain-failure rate, per-stage pass counts and medal totals.
package main

import (
	"context"
	"os"

	"github.com/hqin/oicoach/internal/simtool"
)

func main() {
	if err := simtool.Main(context.Background(), os.Args[1:], os.Stdout); err != nil {
		os.Stderr.WriteString("simulate failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
