package client

import (
	"context"

	"github.com/kfsoftware/hlf-console/gql/models"
	"github.com/pkg/errors"
	"github.com/shurcooL/graphql"
)

// ChannelConfig

type ChannelConfigQuery struct {
	Channel struct {
		Name        string `graphql:"name" json:"name"`
		RawConfig   string `graphql:"rawConfig" json:"rawConfig"`
		ProtoConfig string `graphql:"protoConfig" json:"protoConfig"`
		Height      int    `graphql:"height" json:"height"`
	} `graphql:"channel(channelID: $channelID)" json:"channel"`
}

// Model returns the channel record carrying the raw configuration, ready
// for DecodeConfig.
func (q *ChannelConfigQuery) Model() *models.Channel {
	return &models.Channel{
		Name:        q.Channel.Name,
		RawConfig:   q.Channel.RawConfig,
		ProtoConfig: q.Channel.ProtoConfig,
		Height:      q.Channel.Height,
	}
}

type ChannelConfigQueryResult struct{ *Result }

func (r *ChannelConfigQueryResult) Data() *ChannelConfigQuery {
	data, _ := r.value().(*ChannelConfigQuery)
	return data
}

func (c *Client) channelConfigFetch(vars ChannelQueryVariables) fetchFunc {
	return c.queryFetch("ChannelConfig", func() interface{} { return &ChannelConfigQuery{} }, vars.variables())
}

// ChannelConfig fetches the encoded configuration block of a channel.
func (c *Client) ChannelConfig(ctx context.Context, vars ChannelQueryVariables, opts ...Option) (*ChannelConfigQueryResult, error) {
	r := &ChannelConfigQueryResult{newResult("ChannelConfig", c.options(opts))}
	return r, r.start(ctx, c.channelConfigFetch(vars))
}

type ChannelConfigLazyQuery struct {
	client *Client
	result *ChannelConfigQueryResult
}

func (c *Client) ChannelConfigLazy(opts ...Option) *ChannelConfigLazyQuery {
	return &ChannelConfigLazyQuery{client: c, result: &ChannelConfigQueryResult{newResult("ChannelConfig", c.options(opts))}}
}

func (q *ChannelConfigLazyQuery) Execute(ctx context.Context, vars ChannelQueryVariables) (*ChannelConfigQueryResult, error) {
	return q.result, q.result.execute(ctx, q.client.channelConfigFetch(vars))
}

func (q *ChannelConfigLazyQuery) Result() *ChannelConfigQueryResult {
	return q.result
}

// ChannelChaincodes

type ChannelChaincodesQuery struct {
	Channel struct {
		Name       string                   `graphql:"name" json:"name"`
		Height     int                      `graphql:"height" json:"height"`
		Chaincodes []ChannelChaincodeFields `graphql:"chaincodes" json:"chaincodes"`
	} `graphql:"channel(channelID: $channelID)" json:"channel"`
}

type ChannelChaincodesQueryResult struct{ *Result }

func (r *ChannelChaincodesQueryResult) Data() *ChannelChaincodesQuery {
	data, _ := r.value().(*ChannelChaincodesQuery)
	return data
}

func (c *Client) channelChaincodesFetch(vars ChannelQueryVariables) fetchFunc {
	return c.queryFetch("ChannelChaincodes", func() interface{} { return &ChannelChaincodesQuery{} }, vars.variables())
}

// ChannelChaincodes fetches the chaincode definitions committed on a channel.
func (c *Client) ChannelChaincodes(ctx context.Context, vars ChannelQueryVariables, opts ...Option) (*ChannelChaincodesQueryResult, error) {
	r := &ChannelChaincodesQueryResult{newResult("ChannelChaincodes", c.options(opts))}
	return r, r.start(ctx, c.channelChaincodesFetch(vars))
}

type ChannelChaincodesLazyQuery struct {
	client *Client
	result *ChannelChaincodesQueryResult
}

func (c *Client) ChannelChaincodesLazy(opts ...Option) *ChannelChaincodesLazyQuery {
	return &ChannelChaincodesLazyQuery{client: c, result: &ChannelChaincodesQueryResult{newResult("ChannelChaincodes", c.options(opts))}}
}

func (q *ChannelChaincodesLazyQuery) Execute(ctx context.Context, vars ChannelQueryVariables) (*ChannelChaincodesQueryResult, error) {
	return q.result, q.result.execute(ctx, q.client.channelChaincodesFetch(vars))
}

func (q *ChannelChaincodesLazyQuery) Result() *ChannelChaincodesQueryResult {
	return q.result
}

// Blocks

type BlocksQuery struct {
	Blocks struct {
		Height int           `graphql:"height" json:"height"`
		Blocks []BlockFields `graphql:"blocks" json:"blocks"`
	} `graphql:"blocks(channelID: $channelID, from: $from, to: $to, reverse: $reverse)" json:"blocks"`
}

// BlocksQueryVariables selects the block range [From, To).
type BlocksQueryVariables struct {
	ChannelID string
	From      int
	To        int
	Reverse   bool
}

func (v BlocksQueryVariables) validate() error {
	if v.ChannelID == "" {
		return errors.New("channel id is required")
	}
	if v.From < 0 || v.To < v.From {
		return errors.Errorf("invalid block range [%d, %d)", v.From, v.To)
	}
	return nil
}

func (v BlocksQueryVariables) variables() map[string]interface{} {
	return map[string]interface{}{
		"channelID": graphql.String(v.ChannelID),
		"from":      graphql.Int(v.From),
		"to":        graphql.Int(v.To),
		"reverse":   graphql.Boolean(v.Reverse),
	}
}

type BlocksQueryResult struct{ *Result }

func (r *BlocksQueryResult) Data() *BlocksQuery {
	data, _ := r.value().(*BlocksQuery)
	return data
}

func (c *Client) blocksFetch(vars BlocksQueryVariables) fetchFunc {
	fetch := c.queryFetch("Blocks", func() interface{} { return &BlocksQuery{} }, vars.variables())
	return func(ctx context.Context) (interface{}, error) {
		if err := vars.validate(); err != nil {
			return nil, err
		}
		return fetch(ctx)
	}
}

// Blocks fetches a range of block headers together with the channel height.
func (c *Client) Blocks(ctx context.Context, vars BlocksQueryVariables, opts ...Option) (*BlocksQueryResult, error) {
	r := &BlocksQueryResult{newResult("Blocks", c.options(opts))}
	return r, r.start(ctx, c.blocksFetch(vars))
}

type BlocksLazyQuery struct {
	client *Client
	result *BlocksQueryResult
}

func (c *Client) BlocksLazy(opts ...Option) *BlocksLazyQuery {
	return &BlocksLazyQuery{client: c, result: &BlocksQueryResult{newResult("Blocks", c.options(opts))}}
}

func (q *BlocksLazyQuery) Execute(ctx context.Context, vars BlocksQueryVariables) (*BlocksQueryResult, error) {
	return q.result, q.result.execute(ctx, q.client.blocksFetch(vars))
}

func (q *BlocksLazyQuery) Result() *BlocksQueryResult {
	return q.result
}

// Block

type BlockQuery struct {
	Block *struct {
		BlockFields
		Transactions []TransactionFields `graphql:"transactions" json:"transactions"`
	} `graphql:"block(channelID: $channelID, blockNumber: $blockNumber)" json:"block"`
}

type BlockQueryVariables struct {
	ChannelID   string
	BlockNumber int
}

func (v BlockQueryVariables) variables() map[string]interface{} {
	return map[string]interface{}{
		"channelID":   graphql.String(v.ChannelID),
		"blockNumber": graphql.Int(v.BlockNumber),
	}
}

type BlockQueryResult struct{ *Result }

func (r *BlockQueryResult) Data() *BlockQuery {
	data, _ := r.value().(*BlockQuery)
	return data
}

func (c *Client) blockFetch(vars BlockQueryVariables) fetchFunc {
	return c.queryFetch("Block", func() interface{} { return &BlockQuery{} }, vars.variables())
}

// Block fetches one block with its decoded transactions.
func (c *Client) Block(ctx context.Context, vars BlockQueryVariables, opts ...Option) (*BlockQueryResult, error) {
	r := &BlockQueryResult{newResult("Block", c.options(opts))}
	return r, r.start(ctx, c.blockFetch(vars))
}

type BlockLazyQuery struct {
	client *Client
	result *BlockQueryResult
}

func (c *Client) BlockLazy(opts ...Option) *BlockLazyQuery {
	return &BlockLazyQuery{client: c, result: &BlockQueryResult{newResult("Block", c.options(opts))}}
}

func (q *BlockLazyQuery) Execute(ctx context.Context, vars BlockQueryVariables) (*BlockQueryResult, error) {
	return q.result, q.result.execute(ctx, q.client.blockFetch(vars))
}

func (q *BlockLazyQuery) Result() *BlockQueryResult {
	return q.result
}
