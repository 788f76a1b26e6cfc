//go:build linux

package cmd

import (
	"fmt"

	perf "github.com/hodgesds/perf-utils"
)

// measureInstructions runs f under a hardware instruction counter when the
// kernel exposes perf events, otherwise runs it plain. f runs exactly once
// either way, and its error is reported separately from counter setup
// failures.
func measureInstructions(f func() error) error {
	var (
		ran  bool
		ferr error
	)
	pv, err := perf.CPUInstructions(func() error {
		ran = true
		ferr = f()
		return ferr
	})
	if !ran {
		// Counter setup failed before f could run.
		return f()
	}
	if ferr != nil {
		return ferr
	}
	if err == nil && pv != nil {
		fmt.Printf("[%d]\t\t\t= CPU instructions\n", pv.Value)
	}
	return nil
}
