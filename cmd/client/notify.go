package main

import (
	"fmt"
	"io"

	"github.com/orderpay/schedule/internal/schedule"
)

type consoleNotifier struct {
	out io.Writer
}

func (n consoleNotifier) Saved(month schedule.MonthKey) {
	fmt.Fprintf(n.out, "\n✓ saved %s\n", month)
}

func (n consoleNotifier) Failed(op string, err error) {
	fmt.Fprintf(n.out, "\n✗ %s failed: %v\n", op, err)
}
