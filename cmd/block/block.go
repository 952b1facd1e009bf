package block

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/kfsoftware/hlf-console/cmd/cmdutil"
	"github.com/kfsoftware/hlf-console/gql/client"
	"github.com/kfsoftware/hlf-console/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const timeFormat = time.RFC3339

func NewBlockCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "block",
		Short: "Browse the blocks of a channel",
	}
	cmd.AddCommand(
		newListCmd(),
		newGetCmd(),
	)
	return cmd
}

type listCmd struct {
	channelID string
	from      int
	to        int
	limit     int
	reverse   bool
	watch     bool
	interval  time.Duration
	output    string
}

func (c *listCmd) validate() error {
	if c.channelID == "" {
		return errors.New("--channel is required")
	}
	if c.from < 0 || c.to < 0 {
		return errors.New("--from and --to must not be negative")
	}
	if c.to != 0 && c.to < c.from {
		return errors.Errorf("--to %d is lower than --from %d", c.to, c.from)
	}
	if c.limit <= 0 {
		return errors.New("--limit must be positive")
	}
	if c.watch && c.interval <= 0 {
		return errors.New("--interval must be positive")
	}
	return cmdutil.ValidateFormat(c.output)
}

// height reads the channel height with an empty range.
func height(ctx context.Context, gqlClient *client.Client, channelID string) (int, error) {
	res, err := gqlClient.Blocks(ctx, client.BlocksQueryVariables{ChannelID: channelID})
	if err != nil {
		return 0, err
	}
	return res.Data().Blocks.Height, nil
}

// blockRange resolves the flags to [from, to). Without --to the last
// --limit blocks are listed.
func (c *listCmd) blockRange(h int) (int, int) {
	from, to := c.from, c.to
	if to == 0 || to > h {
		to = h
	}
	if c.to == 0 && c.from == 0 {
		from = to - c.limit
	}
	if from < 0 {
		from = 0
	}
	if from > to {
		from = to
	}
	return from, to
}

func blockRow(table *cmdutil.Table, b client.BlockFields) {
	table.Row(b.BlockNumber, b.NumTransactions, b.DataHash, b.CreatedAt.Format(timeFormat))
}

func (c *listCmd) run(ctx context.Context, out io.Writer) error {
	gqlClient, err := cmdutil.NewClient()
	if err != nil {
		return err
	}
	h, err := height(ctx, gqlClient, c.channelID)
	if err != nil {
		return err
	}
	from, to := c.blockRange(h)
	res, err := gqlClient.Blocks(ctx, client.BlocksQueryVariables{
		ChannelID: c.channelID,
		From:      from,
		To:        to,
		Reverse:   c.reverse,
	})
	if err != nil {
		return err
	}
	blocks := res.Data().Blocks.Blocks
	if c.output != cmdutil.FormatTable {
		if blocks == nil {
			blocks = []client.BlockFields{}
		}
		return cmdutil.PrintObject(out, c.output, blocks)
	}
	table := cmdutil.NewTable("NUMBER", "TXS", "DATA HASH", "CREATED")
	for _, b := range blocks {
		blockRow(table, b)
	}
	if err := table.Write(out); err != nil {
		return err
	}
	if !c.watch {
		return nil
	}
	return c.follow(ctx, gqlClient, out, res.Data().Blocks.Height)
}

// follow polls the channel height and prints every new block until ctx is
// done.
func (c *listCmd) follow(ctx context.Context, gqlClient *client.Client, out io.Writer, next int) error {
	var mu sync.Mutex
	onHeight := func(data interface{}) {
		q, ok := data.(*client.BlocksQuery)
		if !ok {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		h := q.Blocks.Height
		if h <= next {
			return
		}
		res, err := gqlClient.Blocks(ctx, client.BlocksQueryVariables{ChannelID: c.channelID, From: next, To: h})
		if err != nil {
			log.Warnf("failed to fetch blocks [%d, %d): %v", next, h, err)
			return
		}
		for _, b := range res.Data().Blocks.Blocks {
			fmt.Fprintf(out, "%d\t%d\t%s\t%s\n", b.BlockNumber, b.NumTransactions, b.DataHash, b.CreatedAt.Format(timeFormat))
		}
		next = h
	}
	poll, err := gqlClient.Blocks(ctx,
		client.BlocksQueryVariables{ChannelID: c.channelID},
		client.WithPollInterval(c.interval),
		client.WithOnCompleted(onHeight),
	)
	if err != nil {
		return err
	}
	defer poll.StopPolling()
	log.Debugf("watching channel %s from block %d", c.channelID, next)
	<-ctx.Done()
	return nil
}

func newListCmd() *cobra.Command {
	c := &listCmd{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List block headers of a channel",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.validate(); err != nil {
				return err
			}
			return c.run(cmd.Context(), cmd.OutOrStdout())
		},
	}
	f := cmd.Flags()
	f.StringVar(&c.channelID, "channel", "", "channel id")
	f.IntVar(&c.from, "from", 0, "first block number")
	f.IntVar(&c.to, "to", 0, "block number to stop before, defaults to the channel height")
	f.IntVar(&c.limit, "limit", 10, "number of blocks to list when no range is given")
	f.BoolVar(&c.reverse, "reverse", false, "newest blocks first")
	f.BoolVarP(&c.watch, "watch", "w", false, "keep printing new blocks")
	f.DurationVar(&c.interval, "interval", 2*time.Second, "poll interval for --watch")
	f.StringVarP(&c.output, "output", "o", cmdutil.FormatTable, "output format: table, yaml or json")
	return cmd
}

type getCmd struct {
	channelID string
	number    int
	output    string
}

func (c *getCmd) validate() error {
	if c.channelID == "" {
		return errors.New("--channel is required")
	}
	if c.number < 0 {
		return errors.New("--number must not be negative")
	}
	return cmdutil.ValidateFormat(c.output)
}

func (c *getCmd) run(ctx context.Context, out io.Writer) error {
	gqlClient, err := cmdutil.NewClient()
	if err != nil {
		return err
	}
	res, err := gqlClient.Block(ctx, client.BlockQueryVariables{ChannelID: c.channelID, BlockNumber: c.number})
	if err != nil {
		return err
	}
	b := res.Data().Block
	if b == nil {
		return errors.Errorf("block %d not found in channel %s", c.number, c.channelID)
	}
	if c.output != cmdutil.FormatTable {
		return cmdutil.PrintObject(out, c.output, b)
	}
	fmt.Fprintf(out, "Block:\t%d\n", b.BlockNumber)
	fmt.Fprintf(out, "Data hash:\t%s\n", b.DataHash)
	fmt.Fprintf(out, "Created:\t%s\n", b.CreatedAt.Format(timeFormat))
	fmt.Fprintln(out)
	table := cmdutil.NewTable("TX ID", "TYPE", "CHAINCODE", "READS", "WRITES", "CREATED")
	for _, tx := range b.Transactions {
		table.Row(tx.TxID, tx.Type, tx.Chaincode, len(tx.Reads), len(tx.Writes), tx.CreatedAt.Format(timeFormat))
	}
	return table.Write(out)
}

func newGetCmd() *cobra.Command {
	c := &getCmd{}
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Show a block and its transactions",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.validate(); err != nil {
				return err
			}
			return c.run(cmd.Context(), cmd.OutOrStdout())
		},
	}
	f := cmd.Flags()
	f.StringVar(&c.channelID, "channel", "", "channel id")
	f.IntVar(&c.number, "number", 0, "block number")
	f.StringVarP(&c.output, "output", "o", cmdutil.FormatTable, "output format: table, yaml or json")
	return cmd
}
