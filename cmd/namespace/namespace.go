package namespace

import (
	"context"
	"io"

	"github.com/kfsoftware/hlf-console/cmd/cmdutil"
	"github.com/spf13/cobra"
)

type listCmd struct {
	output string
}

func (c *listCmd) run(ctx context.Context, out io.Writer) error {
	gqlClient, err := cmdutil.NewClient()
	if err != nil {
		return err
	}
	res, err := gqlClient.GetNamespaces(ctx)
	if err != nil {
		return err
	}
	namespaces := res.Data().Namespaces
	if c.output != cmdutil.FormatTable {
		names := []string{}
		for _, ns := range namespaces {
			names = append(names, ns.Name)
		}
		return cmdutil.PrintObject(out, c.output, names)
	}
	table := cmdutil.NewTable("NAME")
	for _, ns := range namespaces {
		table.Row(ns.Name)
	}
	return table.Write(out)
}

func NewNamespaceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "namespace",
		Short: "Inspect the namespaces visible to the console",
	}
	c := &listCmd{}
	list := &cobra.Command{
		Use:   "list",
		Short: "List namespaces",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cmdutil.ValidateFormat(c.output); err != nil {
				return err
			}
			return c.run(cmd.Context(), cmd.OutOrStdout())
		},
	}
	list.Flags().StringVarP(&c.output, "output", "o", cmdutil.FormatTable, "output format: table, yaml or json")
	cmd.AddCommand(list)
	return cmd
}
