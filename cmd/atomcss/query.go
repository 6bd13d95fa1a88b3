package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yacobolo/atomcss/internal/queries"
	"github.com/yacobolo/atomcss/internal/values"
)

var queryCmd = &cobra.Command{
	Use:   "query <text>",
	Short: "Parse an at-rule query or a CSS value and print its canonical form",
	Long: `Parse "@media ...", "@supports ..." or a declaration value with the same
parsers the compiler uses. Prints the canonical form and, with --tree, the
syntax tree of a query.`,
	Example: `  atomcss query "@media (min-width: 400px) and (max-width: 800px)"
  atomcss query --tree "@supports (display: grid) and (not (display: inline-grid))"
  atomcss query --legacy "@media screen and (min-width: 400px)"
  atomcss query "calc(100% - 10px) 0"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		legacy, _ := cmd.Flags().GetBool("legacy")
		tree, _ := cmd.Flags().GetBool("tree")
		out, err := runQuery(args[0], legacy, tree)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	queryCmd.Flags().Bool("legacy", false, "Parse media queries with the flat grammar")
	queryCmd.Flags().Bool("tree", false, "Print the syntax tree")
}

// runQuery dispatches on the leading at-keyword
func runQuery(text string, legacy, tree bool) (string, error) {
	text = strings.TrimSpace(text)

	switch {
	case strings.HasPrefix(text, "@media"):
		parse := queries.ParseMediaQueryRecursive
		if legacy {
			parse = queries.ParseMediaQuery
		}
		q, err := parse(text)
		if err != nil {
			return "", err
		}
		if tree {
			return q.String() + "\n" + strings.TrimRight(queries.Tree(q), "\n"), nil
		}
		return q.String(), nil

	case strings.HasPrefix(text, "@supports"):
		q, err := queries.ParseSupportsQuery(text)
		if err != nil {
			return "", err
		}
		if tree {
			return q.String() + "\n" + strings.TrimRight(queries.SupportsTree(q), "\n"), nil
		}
		return q.String(), nil
	}

	v, err := values.Parse(text)
	if err != nil {
		return "", err
	}
	return v.String(), nil
}
