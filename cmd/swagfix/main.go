// Command swagfix migrates Swagger/OpenAPI 2.0 documents to the OpenAPI 3.0
// component layout.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/swagfix/swagfix"
	"github.com/swagfix/swagfix/cmd/swagfix/commands"
	"github.com/swagfix/swagfix/internal/mcpserver"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("swagfix v%s\n", swagfix.Version())
	case "help", "-h", "--help":
		printUsage()
	case "migrate":
		if err := commands.HandleMigrate(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "mcp":
		if err := mcpserver.Run(context.Background()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("swagfix - migrate Swagger 2.0 documents to the OpenAPI 3.0 component layout")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  swagfix <command> [flags] [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  migrate    Relocate definitions to components.schemas and rewrite $refs")
	fmt.Println("  mcp        Run an MCP server exposing the migration as a tool over stdio")
	fmt.Println("  version    Show version information")
	fmt.Println("  help       Show this help message")
	fmt.Println()
	fmt.Println("Run 'swagfix <command> --help' for command-specific flags.")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  swagfix migrate docs/openapi.json")
	fmt.Println("  swagfix migrate --dry-run docs/openapi.json")
	fmt.Println("  swagfix migrate --full -o openapi3.yaml swagger.yaml")
	fmt.Println("  cat swagger.json | swagfix migrate -q - > openapi.json")
}
