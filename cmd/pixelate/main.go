package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pixelate <image>",
	Short: "Pixelate an image into uniform blocks and export it as an image, matrix or text",
	Long: `pixelate divides an image into blocks, reduces each block to a single
color with the selected averaging method and paints the block with it.

The result is saved as an image and can optionally be exported as a JSON
matrix, a text matrix or previewed in the terminal.

Environment variables:
  PIXELATE_LOG_LEVEL=debug    Enable debug logging`,
	Args:              cobra.ExactArgs(1),
	RunE:              runPixelate,
	SilenceUsage:      true,
	PersistentPreRun:  setupLogging,
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
}

// debug is set when PIXELATE_LOG_LEVEL=debug.
var debug bool

// setupLogging sends log output to stderr, keeping stdout for results and
// the MCP protocol.
func setupLogging(cmd *cobra.Command, args []string) {
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	debug = os.Getenv("PIXELATE_LOG_LEVEL") == "debug"
}

func debugf(format string, args ...interface{}) {
	if debug {
		log.Printf(format, args...)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
