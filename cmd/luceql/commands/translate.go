package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/luceql/luceql/internal/luceneql"
)

// translateCommand returns the translate subcommand
func (a *App) translateCommand() *cli.Command {
	return &cli.Command{
		Name:      "translate",
		Usage:     "translate a Lucene query to CloudSearch syntax",
		ArgsUsage: "<query>",
		Description: `Translate a Lucene query to CloudSearch structured syntax.

Remaining arguments are joined with spaces, so quoting the whole query
is optional for simple cases.

Examples:
   luceql translate "foo AND bar:baz"
   luceql translate baz NOT bar
   luceql translate 'count:10 OR is_active:yes'`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return a.runTranslate(ctx, cmd)
		},
	}
}

func (a *App) runTranslate(ctx context.Context, cmd *cli.Command) error {
	query := strings.Join(cmd.Args().Slice(), " ")
	if query == "" {
		return fmt.Errorf("query is required")
	}

	opts := a.Config.ParserOptions()
	parser := luceneql.NewParser(a.Config.Parser.DefaultField, opts...)

	tree, err := parser.Parse(query)
	if err != nil {
		return fmt.Errorf("invalid query: %w", err)
	}

	renderer, err := luceneql.NewRenderer()
	if err != nil {
		return err
	}
	cloudsearch, err := renderer.Render(tree)
	if err != nil {
		return fmt.Errorf("translation failed: %w", err)
	}

	repr, lucene := "", ""
	if tree != nil {
		repr = tree.Repr()
		lucene = tree.String()
	}

	fmt.Printf("%s %s\n", mutedStyle.Render("Lucene input:"), query)
	fmt.Printf("%s %s\n", mutedStyle.Render("Parsed representation:"), repr)
	fmt.Printf("%s %s\n", mutedStyle.Render("Lucene form:"), lucene)
	fmt.Printf("%s %s\n", mutedStyle.Render("Cloudsearch form:"), cloudsearch)

	return nil
}
