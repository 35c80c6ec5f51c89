package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/luceql/luceql/internal/luceneql"
)

// selfTests is the fixed table of known-good translations run by the
// selftest subcommand. All entries use the default grammar
// configuration.
var selfTests = []struct {
	input    string
	expected string
}{
	// basic fields
	{"foo", "(field text 'foo')"},
	{"foo:bar", "(field foo 'bar')"},

	// phrases
	{`"foo bar baz"`, "(field text 'foo bar baz')"},

	// AND clauses
	{"foo AND bar", "(and (field text 'foo') (field text 'bar'))"},
	{"foo AND bar:baz", "(and (field text 'foo') (field bar 'baz'))"},

	// OR clauses
	{"foo OR bar", "(or (field text 'foo') (field text 'bar'))"},
	{"bar:baz OR foo", "(or (field bar 'baz') (field text 'foo'))"},

	// NOT clauses
	{"NOT foo", "(not (field text 'foo'))"},
	{"baz NOT bar", "(and (field text 'baz') (not (field text 'bar')))"},
	{"foo:bar NOT foo:baz", "(and (field foo 'bar') (not (field foo 'baz')))"},

	// typed fields
	{"count:10", "count:10"},
	{"is_active:yes", "is_active:1"},
	{"is_ready:nope", "is_ready:0"},
	{"bar AND count:oops", "(field text 'bar')"},
}

// selftestCommand returns the selftest subcommand
func (a *App) selftestCommand() *cli.Command {
	return &cli.Command{
		Name:  "selftest",
		Usage: "run the built-in translation table",
		Description: `Run every entry of the built-in (input, expected) translation table
and stop at the first mismatch.`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return a.runSelftest(ctx, cmd)
		},
	}
}

func (a *App) runSelftest(ctx context.Context, cmd *cli.Command) error {
	for _, tt := range selfTests {
		fmt.Printf("%s becomes %s ? ...\n", tt.input, tt.expected)

		result := luceneql.Translate(tt.input)
		if !result.Valid {
			fmt.Printf("\t%s %v\n", errorStyle.Render("nope:"), result.Error)
			return fmt.Errorf("selftest failed on %q: %s", tt.input, result.Error.Message)
		}
		if result.CloudSearch != tt.expected {
			fmt.Printf("\t%s %s\n", errorStyle.Render("nope:"), result.CloudSearch)
			return fmt.Errorf("selftest failed on %q", tt.input)
		}

		fmt.Printf("\t%s\n", successStyle.Render("yup!"))
	}

	return nil
}
