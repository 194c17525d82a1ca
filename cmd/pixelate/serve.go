package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/ironsheep/image-pixelate/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run as an MCP server over stdin/stdout",
	Long: `serve exposes the pixelation engine as MCP tools (pixelate_image,
pixelate_matrix, pixelate_palette, pixelate_methods) over JSON-RPC 2.0 on
stdin/stdout. Configure it in your MCP client.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	debugf("Image Pixelate MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)

	srv := server.New(Version)
	if err := srv.Run(); err != nil {
		log.Printf("Server error: %v", err)
		return err
	}
	return nil
}
