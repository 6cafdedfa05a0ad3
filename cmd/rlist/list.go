package main

import (
	"github.com/spf13/cobra"

	"github.com/rlist/rlist/internal/entry"
	"github.com/rlist/rlist/internal/query"
)

var (
	listLong   bool
	listAuthor string
	listTopics []string
	listFrom   string
	listTo     string
	listSortBy string
	listDesc   bool
	listLimit  int
)

func init() {
	listCmd.Flags().BoolVarP(&listLong, "long", "l", false, "Show topics and dates (human output only)")
	listCmd.Flags().StringVarP(&listAuthor, "author", "a", "", "Filter by author (exact, case-insensitive)")
	listCmd.Flags().StringSliceVarP(&listTopics, "topics", "t", nil, "Required topics (entry must carry all of them)")
	listCmd.Flags().StringVar(&listFrom, "from", "", "Earliest added date (today, yesterday, or DD-MM-YY)")
	listCmd.Flags().StringVar(&listTo, "to", "", "Latest added date (today, yesterday, or DD-MM-YY)")
	listCmd.Flags().StringVar(&listSortBy, "sort-by", "", "Sort field: identifier, url, title, author, date (default date)")
	listCmd.Flags().BoolVar(&listDesc, "desc", false, "Sort in descending order")
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "Maximum results to return (0 = unbounded)")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:     "list [query tokens...]",
	Aliases: []string{"ls", "search", "query", "find"},
	Short:   "List entries matching a filter",
	Long: `List entries matching a filter. All predicates combine with AND.

Query Syntax (positional tokens):
  author:<name>   - Exact author match (case-insensitive)
  date:<token>    - Entries added on that date
  plain text      - Substring match over identifier and title

Date tokens are 'today', 'yesterday', or an explicit DD-MM-YY date.
The same tokens work for the --from and --to bounds (inclusive).

Examples:
  rlist list
  rlist list tour author:alice
  rlist list date:yesterday
  rlist list --topics rust,go --from 01-03-24 --to 31-03-24
  rlist list --sort-by title --desc --limit 10`,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	f := query.Filter{
		Author:     listAuthor,
		Topics:     entry.NormalizeTopics(listTopics),
		From:       listFrom,
		To:         listTo,
		SortBy:     listSortBy,
		Descending: listDesc,
		Limit:      listLimit,
	}
	if err := lexFilterTokens(args, &f); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	st := mustOpenStore()
	defer st.Close()

	entries, err := query.New(st).Run(f)
	if err != nil {
		exitWithCoreError("querying entries", err)
	}

	if humanOutput {
		printEntriesHuman(entries, listLong, dateLayout())
	} else {
		if entries == nil {
			entries = []entry.Entry{}
		}
		outputJSON(ListResponse{Entries: entries, Count: len(entries)})
	}
	return nil
}
