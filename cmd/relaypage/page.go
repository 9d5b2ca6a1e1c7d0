package main

import (
	"encoding/json"
	"errors"

	"github.com/ncobase/relaypage/binding"
	"github.com/ncobase/relaypage/data"
	"github.com/ncobase/relaypage/paging"
	"github.com/spf13/cobra"
)

type pageOptions struct {
	first, last   int
	after, before string
	sort          string
	direction     string
	where         []string
	tieBreak      string
	pretty        bool
}

func newPageCommand(root *rootOptions) *cobra.Command {
	var o pageOptions

	cmd := &cobra.Command{
		Use:   "page [collection]",
		Short: "Print one page of a collection as a Relay connection",
		Example: `  relaypage page products --first 2 --sort price --direction desc
  relaypage --fixture testdata/products.json page --last 3 --before <cursor>`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := root.load(); err != nil {
				return err
			}
			name := root.defaultCollection
			if len(args) == 1 {
				name = args[0]
			}
			if name == "" {
				return errors.New("collection name is required")
			}

			raw := map[string]any{}
			flags := cmd.Flags()
			if flags.Changed("first") {
				raw["first"] = o.first
			}
			if flags.Changed("last") {
				raw["last"] = o.last
			}
			raw["after"], raw["before"] = o.after, o.before

			pageArgs, err := binding.ParseArgs(raw)
			if err != nil {
				return err
			}
			filter, err := binding.ParseWhere(o.where)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			app, cleanup, err := initializeApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			conn, err := app.Resolve(ctx, name, pageArgs, filter, paging.Options[data.Document, data.Document]{
				CursorField:   o.sort,
				Direction:     paging.ParseDirection(o.direction),
				TieBreakField: o.tieBreak,
			})
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			if o.pretty {
				enc.SetIndent("", "  ")
			}
			return enc.Encode(conn)
		},
	}

	f := cmd.Flags()
	f.IntVar(&o.first, "first", 0, "page size, scanning forward")
	f.StringVar(&o.after, "after", "", "cursor to start after")
	f.IntVar(&o.last, "last", 0, "page size, scanning backward")
	f.StringVar(&o.before, "before", "", "cursor to end before")
	f.StringVarP(&o.sort, "sort", "s", "", "sort field, defaults to the tie-break field")
	f.StringVarP(&o.direction, "direction", "d", "asc", "sort direction: asc or desc")
	f.StringArrayVarP(&o.where, "where", "w", nil, "filter as field:value or field:op:value, repeatable")
	f.StringVar(&o.tieBreak, "tie-break", "", "unique tie-break field")
	f.BoolVar(&o.pretty, "pretty", false, "indent the output")
	return cmd
}
