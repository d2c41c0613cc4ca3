// Command tracecut runs the trace-to-segment pipeline against a config file
// and prints segment counts once the segment stream has ended.
package main

import (
	"os"

	"github.com/jessevdk/go-flags"
)

type rootCmd struct {
	Version versionCmd `command:"version" description:"Show version information"`
	Run     runCmd     `command:"run" description:"Run the pipeline against a config file"`
}

func main() {
	var root rootCmd
	parser := flags.NewParser(&root, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if fe, ok := err.(*flags.Error); ok && fe.Type == flags.ErrHelp {
			return
		}
		os.Exit(1)
	}
}

type versionCmd struct{}

// Execute prints the version information.
func (c *versionCmd) Execute(_ []string) error {
	println("tracecut dev")
	return nil
}
