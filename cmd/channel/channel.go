package channel

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/hyperledger/fabric-config/configtx"
	cb "github.com/hyperledger/fabric-protos-go/common"
	"github.com/kfsoftware/hlf-console/cmd/cmdutil"
	"github.com/kfsoftware/hlf-console/gql/client"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const (
	ordererGroupKey     = "Orderer"
	applicationGroupKey = "Application"
)

func NewChannelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "channel",
		Short: "Inspect the channels joined by the console identity",
	}
	cmd.AddCommand(
		newListCmd(),
		newGetCmd(),
		newConfigCmd(),
		newChaincodesCmd(),
	)
	return cmd
}

func newListCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List channels",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cmdutil.ValidateFormat(output); err != nil {
				return err
			}
			gqlClient, err := cmdutil.NewClient()
			if err != nil {
				return err
			}
			res, err := gqlClient.Channels(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if output != cmdutil.FormatTable {
				names := []string{}
				for _, ch := range res.Data().Channels {
					names = append(names, ch.Name)
				}
				return cmdutil.PrintObject(out, output, names)
			}
			table := cmdutil.NewTable("NAME")
			for _, ch := range res.Data().Channels {
				table.Row(ch.Name)
			}
			return table.Write(out)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", cmdutil.FormatTable, "output format: table, yaml or json")
	return cmd
}

type getCmd struct {
	channelID string
	output    string
}

func (c *getCmd) validate() error {
	if c.channelID == "" {
		return errors.New("--channel is required")
	}
	return cmdutil.ValidateFormat(c.output)
}

func (c *getCmd) run(ctx context.Context, out io.Writer) error {
	gqlClient, err := cmdutil.NewClient()
	if err != nil {
		return err
	}
	res, err := gqlClient.Channel(ctx, client.ChannelQueryVariables{ChannelID: c.channelID})
	if err != nil {
		return err
	}
	details := res.Data().Channel
	if c.output != cmdutil.FormatTable {
		return cmdutil.PrintObject(out, c.output, details)
	}
	orderer := details.Orderer
	fmt.Fprintf(out, "Channel:\t%s\n", c.channelID)
	fmt.Fprintf(out, "Orderer type:\t%s\n", orderer.Type)
	fmt.Fprintf(out, "Batch timeout:\t%d\n", orderer.BatchTimeout)
	fmt.Fprintf(out, "Batch size:\t%d messages, %d bytes max, %d bytes preferred\n",
		orderer.BatchSize.MaxMessageCount, orderer.BatchSize.AbsoluteMaxBytes, orderer.BatchSize.PreferredMaxBytes)
	fmt.Fprintf(out, "Capabilities:\t%s\n", strings.Join(orderer.Capabilities, ", "))

	fmt.Fprintln(out)
	orgs := cmdutil.NewTable("ORDERER ORG", "ENDPOINTS", "ROOT CERTS")
	for _, org := range orderer.Organizations {
		orgs.Row(org.MSPID, strings.Join(org.OrdererEndpoints, ","), len(org.MSP.RootCerts))
	}
	if err := orgs.Write(out); err != nil {
		return err
	}
	consenters := cmdutil.NewTable("CONSENTER", "PORT")
	for _, consenter := range orderer.EtcdDraft.Consenters {
		consenters.Row(consenter.Address.Host, consenter.Address.Port)
	}
	if consenters.Len() > 0 {
		fmt.Fprintln(out)
		if err := consenters.Write(out); err != nil {
			return err
		}
	}
	if details.Application == nil {
		return nil
	}
	fmt.Fprintln(out)
	peers := cmdutil.NewTable("APPLICATION ORG", "ANCHOR PEERS")
	for _, org := range details.Application.Organizations {
		var anchors []string
		for _, a := range org.AnchorPeer {
			anchors = append(anchors, fmt.Sprintf("%s:%d", a.Host, a.Port))
		}
		peers.Row(org.MSPID, strings.Join(anchors, ","))
	}
	return peers.Write(out)
}

func newGetCmd() *cobra.Command {
	c := &getCmd{}
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Show the orderer and application configuration of a channel",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.validate(); err != nil {
				return err
			}
			return c.run(cmd.Context(), cmd.OutOrStdout())
		},
	}
	f := cmd.Flags()
	f.StringVar(&c.channelID, "channel", "", "channel id")
	f.StringVarP(&c.output, "output", "o", cmdutil.FormatTable, "output format: table, yaml or json")
	return cmd
}

type configCmd struct {
	channelID string
	raw       bool
}

func (c *configCmd) validate() error {
	if c.channelID == "" {
		return errors.New("--channel is required")
	}
	return nil
}

func (c *configCmd) run(ctx context.Context, out io.Writer) error {
	gqlClient, err := cmdutil.NewClient()
	if err != nil {
		return err
	}
	res, err := gqlClient.ChannelConfig(ctx, client.ChannelQueryVariables{ChannelID: c.channelID})
	if err != nil {
		return err
	}
	channel := res.Data().Model()
	if c.raw {
		_, err = fmt.Fprintln(out, channel.RawConfig)
		return err
	}
	cfg, err := channel.DecodeConfig()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Channel:\t%s\n", channel.Name)
	fmt.Fprintf(out, "Height:\t%d\n", channel.Height)
	return writeConfigSummary(out, cfg)
}

func orgNames(orgs []configtx.Organization) string {
	names := make([]string, 0, len(orgs))
	for _, org := range orgs {
		names = append(names, org.Name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

func hasGroup(cfg *cb.Config, key string) bool {
	if cfg.ChannelGroup == nil {
		return false
	}
	_, ok := cfg.ChannelGroup.Groups[key]
	return ok
}

func writeConfigSummary(out io.Writer, raw *cb.Config) error {
	if !hasGroup(raw, ordererGroupKey) {
		return errors.New("channel config has no orderer group")
	}
	cfg := configtx.New(raw)
	orderer, err := cfg.Orderer().Configuration()
	if err != nil {
		return errors.Wrap(err, "failed to read orderer configuration")
	}
	fmt.Fprintf(out, "Orderer type:\t%s\n", orderer.OrdererType)
	fmt.Fprintf(out, "Batch timeout:\t%s\n", orderer.BatchTimeout)
	fmt.Fprintf(out, "Max message count:\t%d\n", orderer.BatchSize.MaxMessageCount)
	fmt.Fprintf(out, "Orderer orgs:\t%s\n", orgNames(orderer.Organizations))
	// system channels carry no application group
	if !hasGroup(raw, applicationGroupKey) {
		return nil
	}
	application, err := cfg.Application().Configuration()
	if err != nil {
		return errors.Wrap(err, "failed to read application configuration")
	}
	fmt.Fprintf(out, "Application orgs:\t%s\n", orgNames(application.Organizations))
	fmt.Fprintf(out, "Capabilities:\t%s\n", strings.Join(application.Capabilities, ", "))
	return nil
}

func newConfigCmd() *cobra.Command {
	c := &configCmd{}
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Decode the current configuration of a channel",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.validate(); err != nil {
				return err
			}
			return c.run(cmd.Context(), cmd.OutOrStdout())
		},
	}
	f := cmd.Flags()
	f.StringVar(&c.channelID, "channel", "", "channel id")
	f.BoolVar(&c.raw, "raw", false, "print the JSON configuration as returned by the API")
	return cmd
}

type chaincodesCmd struct {
	channelID string
	output    string
}

func (c *chaincodesCmd) validate() error {
	if c.channelID == "" {
		return errors.New("--channel is required")
	}
	return cmdutil.ValidateFormat(c.output)
}

func (c *chaincodesCmd) run(ctx context.Context, out io.Writer) error {
	gqlClient, err := cmdutil.NewClient()
	if err != nil {
		return err
	}
	res, err := gqlClient.ChannelChaincodes(ctx, client.ChannelQueryVariables{ChannelID: c.channelID})
	if err != nil {
		return err
	}
	chaincodes := res.Data().Channel.Chaincodes
	if c.output != cmdutil.FormatTable {
		if chaincodes == nil {
			chaincodes = []client.ChannelChaincodeFields{}
		}
		return cmdutil.PrintObject(out, c.output, chaincodes)
	}
	table := cmdutil.NewTable("NAME", "VERSION", "SEQUENCE", "POLICY", "APPROVALS")
	for _, cc := range chaincodes {
		policy, err := cc.SignaturePolicy.Model().DSL()
		if err != nil {
			policy = cc.ConfigPolicy
		}
		approved := 0
		for _, a := range cc.Approvals {
			if a.Approved {
				approved++
			}
		}
		table.Row(cc.Name, cc.Version, cc.Sequence, policy, fmt.Sprintf("%d/%d", approved, len(cc.Approvals)))
	}
	return table.Write(out)
}

func newChaincodesCmd() *cobra.Command {
	c := &chaincodesCmd{}
	cmd := &cobra.Command{
		Use:   "chaincodes",
		Short: "List the chaincodes committed on a channel",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.validate(); err != nil {
				return err
			}
			return c.run(cmd.Context(), cmd.OutOrStdout())
		},
	}
	f := cmd.Flags()
	f.StringVar(&c.channelID, "channel", "", "channel id")
	f.StringVarP(&c.output, "output", "o", cmdutil.FormatTable, "output format: table, yaml or json")
	return cmd
}
