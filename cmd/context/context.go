package context

import (
	"fmt"
	"io"
	"sort"

	"github.com/kfsoftware/hlf-console/cmd/cmdutil"
	"github.com/kfsoftware/hlf-console/config"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func NewContextCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "context",
		Short: "Manage the console API endpoints stored locally",
	}
	cmd.AddCommand(
		newSetCmd(),
		newUseCmd(),
		newShowCmd(),
		newListCmd(),
	)
	return cmd
}

type setCmd struct {
	name    string
	url     string
	headers []string
	use     bool
}

func (c *setCmd) validate() error {
	if c.url == "" {
		return errors.New("--url is required")
	}
	return nil
}

func (c *setCmd) run(out io.Writer) error {
	headers, err := cmdutil.ParseHeaders(c.headers)
	if err != nil {
		return err
	}
	store, err := cmdutil.ContextStore()
	if err != nil {
		return err
	}
	ctx := config.Context{Name: c.name, URL: c.url}
	if len(headers) > 0 {
		ctx.Headers = headers
	}
	if err := store.Add(ctx); err != nil {
		return err
	}
	fmt.Fprintf(out, "context %s saved\n", c.name)
	if !c.use {
		return nil
	}
	if err := store.Use(c.name); err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "switched to context %s\n", c.name)
	return err
}

func newSetCmd() *cobra.Command {
	c := &setCmd{}
	cmd := &cobra.Command{
		Use:   "set NAME",
		Short: "Create or replace a context",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.name = args[0]
			if err := c.validate(); err != nil {
				return err
			}
			return c.run(cmd.OutOrStdout())
		},
	}
	f := cmd.Flags()
	f.StringVar(&c.url, "url", "", "GraphQL endpoint of the console API")
	f.StringArrayVar(&c.headers, "header", nil, "header sent with every request, as 'Name: value'")
	f.BoolVar(&c.use, "use", false, "make it the current context")
	return cmd
}

func newUseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "use NAME",
		Short: "Select the current context",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := cmdutil.ContextStore()
			if err != nil {
				return err
			}
			if err := store.Use(args[0]); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "switched to context %s\n", args[0])
			return err
		},
	}
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the context commands would use",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := cmdutil.ResolveContext()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Name:\t%s\n", ctx.Name)
			fmt.Fprintf(out, "URL:\t%s\n", ctx.URL)
			names := make([]string, 0, len(ctx.Headers))
			for name := range ctx.Headers {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintf(out, "Header:\t%s\n", name)
			}
			return nil
		},
	}
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored contexts",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := cmdutil.ContextStore()
			if err != nil {
				return err
			}
			contexts, err := store.List()
			if err != nil {
				return err
			}
			current := ""
			if ctx, err := store.Current(); err == nil {
				current = ctx.Name
			}
			table := cmdutil.NewTable("CURRENT", "NAME", "URL")
			for _, ctx := range contexts {
				marker := ""
				if ctx.Name == current {
					marker = "*"
				}
				table.Row(marker, ctx.Name, ctx.URL)
			}
			return table.Write(cmd.OutOrStdout())
		},
	}
}
