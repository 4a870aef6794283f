package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/nguyentantai21042004/transcript-digest/internal/transcript"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit status. A transcript
// failure is reported on stdout next to the rest of the digest output.
func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		var fe *transcript.FetchError
		if errors.As(err, &fe) {
			fmt.Fprintln(stdout, fe.Error())
		} else {
			fmt.Fprintln(stderr, "Error:", err)
		}
		return 1
	}
	return 0
}
