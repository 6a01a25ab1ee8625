package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/swagfix/swagfix"
	"github.com/swagfix/swagfix/document"
	"github.com/swagfix/swagfix/migrator"
)

// MigrateFlags contains flags for the migrate command
type MigrateFlags struct {
	Output string
	DryRun bool
	Full   bool
	Quiet  bool
}

// SetupMigrateFlags creates and configures a FlagSet for the migrate command.
// Returns the FlagSet and a MigrateFlags struct with bound flag variables.
func SetupMigrateFlags() (*flag.FlagSet, *MigrateFlags) {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	flags := &MigrateFlags{}

	fs.StringVar(&flags.Output, "o", "", "output file path (default: rewrite the input file in place)")
	fs.StringVar(&flags.Output, "output", "", "output file path (default: rewrite the input file in place)")
	fs.BoolVar(&flags.DryRun, "dry-run", false, "report the changes without writing any output")
	fs.BoolVar(&flags.Full, "full", false, "also relocate securityDefinitions, parameters, and responses, and stamp the openapi version")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only output the document, no diagnostic messages")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only output the document, no diagnostic messages")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: swagfix migrate [flags] <file|->\n\n")
		Writef(fs.Output(), "Migrate a Swagger 2.0 document to the OpenAPI 3.0 component layout.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nDefault Migrations:\n")
		Writef(fs.Output(), "  - Relocate the top-level definitions map to components.schemas\n")
		Writef(fs.Output(), "  - Rewrite every $ref from #/definitions/ to #/components/schemas/\n")
		Writef(fs.Output(), "\nFull Mode (--full) adds:\n")
		Writef(fs.Output(), "  - securityDefinitions -> components.securitySchemes\n")
		Writef(fs.Output(), "  - parameters -> components.parameters\n")
		Writef(fs.Output(), "  - responses -> components.responses\n")
		Writef(fs.Output(), "  - Replace the swagger version marker with openapi 3.0.3\n")
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  swagfix migrate docs/openapi.json\n")
		Writef(fs.Output(), "  swagfix migrate -o openapi3.json swagger.json\n")
		Writef(fs.Output(), "  swagfix migrate --dry-run swagger.yaml\n")
		Writef(fs.Output(), "  cat swagger.json | swagfix migrate -q - > openapi.json\n")
		Writef(fs.Output(), "\nPipelining:\n")
		Writef(fs.Output(), "  - Use '-' as the file path to read from stdin; the result goes to\n")
		Writef(fs.Output(), "    stdout unless -o is given\n")
		Writef(fs.Output(), "  - Use --quiet/-q to suppress diagnostic output for pipelining\n")
		Writef(fs.Output(), "\nNotes:\n")
		Writef(fs.Output(), "  - The output preserves the source format (JSON or YAML) and key order\n")
		Writef(fs.Output(), "  - The file is only written after the full migration succeeds in memory\n")
		Writef(fs.Output(), "\nExit Codes:\n")
		Writef(fs.Output(), "  0    Migration successful\n")
		Writef(fs.Output(), "  1    Migration failed (unreadable input, malformed document, or a\n")
		Writef(fs.Output(), "       components key that is not a mapping)\n")
	}

	return fs, flags
}

// HandleMigrate executes the migrate command
func HandleMigrate(args []string) error {
	fs, flags := SetupMigrateFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("migrate command requires exactly one file path or '-' for stdin")
	}

	specPath := fs.Arg(0)

	m := migrator.New()
	if flags.Full {
		m.EnabledMigrations = migrator.AllMigrations()
	}

	var result *migrator.MigrationResult
	var err error

	if specPath == StdinFilePath {
		doc, readErr := document.LoadReader(os.Stdin)
		if readErr != nil {
			return fmt.Errorf("reading stdin: %w", readErr)
		}
		result, err = m.MigrateDocument(doc)
	} else {
		result, err = m.Migrate(specPath)
	}
	if err != nil {
		return fmt.Errorf("migrating document: %w", err)
	}

	if !flags.Quiet {
		Writef(os.Stderr, "Swagger 2.0 -> OpenAPI 3.0 Layout Migration\n")
		Writef(os.Stderr, "===========================================\n\n")
		Writef(os.Stderr, "swagfix version: %s\n", swagfix.Version())
		if specPath == StdinFilePath {
			Writef(os.Stderr, "Specification: <stdin>\n")
		} else {
			Writef(os.Stderr, "Specification: %s\n", specPath)
		}
		Writef(os.Stderr, "Source Format: %s\n", result.SourceFormat)
		Writef(os.Stderr, "Changes: %d\n\n", result.ChangeCount)

		if result.HasChanges() {
			for _, change := range result.Changes {
				Writef(os.Stderr, "  [%s] %s: %s\n", change.Type, change.Path, change.Description)
			}
			Writef(os.Stderr, "\n")
		}
	}

	if flags.DryRun {
		if !flags.Quiet {
			Writef(os.Stderr, "Dry run: no output written\n")
		}
		return nil
	}

	outputPath := flags.Output
	if outputPath == "" && specPath != StdinFilePath {
		outputPath = specPath
	}

	if outputPath == "" {
		data, marshalErr := result.Document.Marshal()
		if marshalErr != nil {
			return fmt.Errorf("marshaling migrated document: %w", marshalErr)
		}
		if _, writeErr := os.Stdout.Write(data); writeErr != nil {
			return fmt.Errorf("writing migrated document to stdout: %w", writeErr)
		}
		return nil
	}

	if err := result.Document.Save(outputPath); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}

	if !flags.Quiet {
		Writef(os.Stdout, "Migrated %s to the OpenAPI 3.0 component layout (%d changes)\n", outputPath, result.ChangeCount)
	}

	return nil
}
