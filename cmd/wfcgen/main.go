// Command wfcgen is a thin CLI shell around the wave-function-collapse
// solver core: it loads a run configuration, compiles tile/rule
// definitions, runs the solver, and writes the result.
package main

import "github.com/hollowforge/wfcmap/cmd/wfcgen/cmd"

func main() {
	cmd.Execute()
}
