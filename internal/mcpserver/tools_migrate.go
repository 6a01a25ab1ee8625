package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/swagfix/swagfix/document"
	"github.com/swagfix/swagfix/migrator"
)

type migrateInput struct {
	File            string `json:"file,omitempty"             jsonschema:"Path to a Swagger 2.0 document on disk"`
	Content         string `json:"content,omitempty"          jsonschema:"Inline document content (JSON or YAML)"`
	DryRun          bool   `json:"dry_run,omitempty"          jsonschema:"Preview changes without writing any output"`
	Full            bool   `json:"full,omitempty"             jsonschema:"Also relocate securityDefinitions\\, parameters\\, and responses\\, and stamp the openapi version"`
	IncludeDocument bool   `json:"include_document,omitempty" jsonschema:"Include the full migrated document in the output"`
	Output          string `json:"output,omitempty"           jsonschema:"File path to write the migrated document. Defaults to rewriting the input file in place when file is set."`
	Offset          int    `json:"offset,omitempty"           jsonschema:"Skip the first N changes (for pagination)"`
	Limit           int    `json:"limit,omitempty"            jsonschema:"Maximum number of changes to return (default 100)"`
}

type changeApplied struct {
	Type        string `json:"type"`
	Path        string `json:"path"`
	Description string `json:"description"`
}

type migrateOutput struct {
	ChangeCount int             `json:"change_count"`
	Returned    int             `json:"returned"`
	Changes     []changeApplied `json:"changes,omitempty"`
	Format      string          `json:"format"`
	WrittenTo   string          `json:"written_to,omitempty"`
	Document    string          `json:"document,omitempty"`
}

func handleMigrate(_ context.Context, _ *mcp.CallToolRequest, input migrateInput) (*mcp.CallToolResult, migrateOutput, error) {
	doc, err := loadInput(input)
	if err != nil {
		return errResult(err), migrateOutput{}, nil
	}

	m := migrator.New()
	if input.Full || cfg.FullDefault {
		m.EnabledMigrations = migrator.AllMigrations()
	}

	result, err := m.MigrateDocument(doc)
	if err != nil {
		return errResult(err), migrateOutput{}, nil
	}

	output := migrateOutput{
		ChangeCount: result.ChangeCount,
		Format:      string(result.SourceFormat),
	}

	output.Changes = makeSlice[changeApplied](len(result.Changes))
	for _, change := range result.Changes {
		output.Changes = append(output.Changes, changeApplied{
			Type:        string(change.Type),
			Path:        change.Path,
			Description: change.Description,
		})
	}

	output.Changes = paginate(output.Changes, input.Offset, input.Limit)
	output.Returned = len(output.Changes)

	if input.DryRun {
		return nil, output, nil
	}

	outputPath := input.Output
	if outputPath == "" && input.File != "" {
		outputPath = input.File
	}

	if outputPath != "" {
		if err := result.Document.Save(outputPath); err != nil {
			return errResult(fmt.Errorf("failed to write output file: %w", err)), migrateOutput{}, nil
		}
		output.WrittenTo = outputPath
	}

	if input.IncludeDocument {
		data, err := result.Document.Marshal()
		if err != nil {
			return errResult(err), migrateOutput{}, nil
		}
		output.Document = string(data)
	}

	return nil, output, nil
}

// loadInput resolves the two input modes: file path or inline content.
// Exactly one must be set.
func loadInput(input migrateInput) (*document.Document, error) {
	switch {
	case input.File != "" && input.Content != "":
		return nil, fmt.Errorf("provide only one of file or content")
	case input.File != "":
		return document.Load(input.File)
	case input.Content != "":
		return document.Parse([]byte(input.Content))
	default:
		return nil, fmt.Errorf("one of file or content is required")
	}
}
