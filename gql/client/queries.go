package client

import (
	"context"

	"github.com/kfsoftware/hlf-console/gql/models"
	"github.com/shurcooL/graphql"
)

// GetCA

type GetCAQuery struct {
	CA *CAFields `graphql:"ca(input: $input)" json:"ca"`
}

type GetCAQueryVariables struct {
	Input models.NameAndNamespace
}

func (v GetCAQueryVariables) variables() map[string]interface{} {
	return map[string]interface{}{"input": v.Input}
}

type GetCAQueryResult struct{ *Result }

func (r *GetCAQueryResult) Data() *GetCAQuery {
	data, _ := r.value().(*GetCAQuery)
	return data
}

func (c *Client) getCAFetch(vars GetCAQueryVariables) fetchFunc {
	return c.queryFetch("GetCA", func() interface{} { return &GetCAQuery{} }, vars.variables())
}

// GetCA fetches a certificate authority by name and namespace.
func (c *Client) GetCA(ctx context.Context, vars GetCAQueryVariables, opts ...Option) (*GetCAQueryResult, error) {
	r := &GetCAQueryResult{newResult("GetCA", c.options(opts))}
	return r, r.start(ctx, c.getCAFetch(vars))
}

type GetCALazyQuery struct {
	client *Client
	result *GetCAQueryResult
}

func (c *Client) GetCALazy(opts ...Option) *GetCALazyQuery {
	return &GetCALazyQuery{client: c, result: &GetCAQueryResult{newResult("GetCA", c.options(opts))}}
}

func (q *GetCALazyQuery) Execute(ctx context.Context, vars GetCAQueryVariables) (*GetCAQueryResult, error) {
	return q.result, q.result.execute(ctx, q.client.getCAFetch(vars))
}

func (q *GetCALazyQuery) Result() *GetCAQueryResult {
	return q.result
}

// GetCAs

type GetCAsQuery struct {
	CAs []CAFields `graphql:"cas" json:"cas"`
}

type GetCAsQueryResult struct{ *Result }

func (r *GetCAsQueryResult) Data() *GetCAsQuery {
	data, _ := r.value().(*GetCAsQuery)
	return data
}

func (c *Client) getCAsFetch() fetchFunc {
	return c.queryFetch("GetCAs", func() interface{} { return &GetCAsQuery{} }, nil)
}

// GetCAs lists the certificate authorities of every namespace.
func (c *Client) GetCAs(ctx context.Context, opts ...Option) (*GetCAsQueryResult, error) {
	r := &GetCAsQueryResult{newResult("GetCAs", c.options(opts))}
	return r, r.start(ctx, c.getCAsFetch())
}

type GetCAsLazyQuery struct {
	client *Client
	result *GetCAsQueryResult
}

func (c *Client) GetCAsLazy(opts ...Option) *GetCAsLazyQuery {
	return &GetCAsLazyQuery{client: c, result: &GetCAsQueryResult{newResult("GetCAs", c.options(opts))}}
}

func (q *GetCAsLazyQuery) Execute(ctx context.Context) (*GetCAsQueryResult, error) {
	return q.result, q.result.execute(ctx, q.client.getCAsFetch())
}

func (q *GetCAsLazyQuery) Result() *GetCAsQueryResult {
	return q.result
}

// channel

type ChannelDetails struct {
	Orderer     OrdererConfigFields      `graphql:"orderer" json:"orderer"`
	Application *ApplicationConfigFields `graphql:"application" json:"application"`
}

type ChannelQuery struct {
	Channel ChannelDetails `graphql:"channel(channelID: $channelID)" json:"channel"`
}

type ChannelQueryVariables struct {
	ChannelID string
}

func (v ChannelQueryVariables) variables() map[string]interface{} {
	return map[string]interface{}{"channelID": graphql.String(v.ChannelID)}
}

type ChannelQueryResult struct{ *Result }

func (r *ChannelQueryResult) Data() *ChannelQuery {
	data, _ := r.value().(*ChannelQuery)
	return data
}

func (c *Client) channelFetch(vars ChannelQueryVariables) fetchFunc {
	return c.queryFetch("channel", func() interface{} { return &ChannelQuery{} }, vars.variables())
}

// Channel fetches the orderer and application configuration of a channel.
func (c *Client) Channel(ctx context.Context, vars ChannelQueryVariables, opts ...Option) (*ChannelQueryResult, error) {
	r := &ChannelQueryResult{newResult("channel", c.options(opts))}
	return r, r.start(ctx, c.channelFetch(vars))
}

type ChannelLazyQuery struct {
	client *Client
	result *ChannelQueryResult
}

func (c *Client) ChannelLazy(opts ...Option) *ChannelLazyQuery {
	return &ChannelLazyQuery{client: c, result: &ChannelQueryResult{newResult("channel", c.options(opts))}}
}

func (q *ChannelLazyQuery) Execute(ctx context.Context, vars ChannelQueryVariables) (*ChannelQueryResult, error) {
	return q.result, q.result.execute(ctx, q.client.channelFetch(vars))
}

func (q *ChannelLazyQuery) Result() *ChannelQueryResult {
	return q.result
}

// channels

type ChannelsQuery struct {
	Channels []LightChannelFields `graphql:"channels" json:"channels"`
}

type ChannelsQueryResult struct{ *Result }

func (r *ChannelsQueryResult) Data() *ChannelsQuery {
	data, _ := r.value().(*ChannelsQuery)
	return data
}

func (c *Client) channelsFetch() fetchFunc {
	return c.queryFetch("channels", func() interface{} { return &ChannelsQuery{} }, nil)
}

// Channels lists the channels the API identity has joined.
func (c *Client) Channels(ctx context.Context, opts ...Option) (*ChannelsQueryResult, error) {
	r := &ChannelsQueryResult{newResult("channels", c.options(opts))}
	return r, r.start(ctx, c.channelsFetch())
}

type ChannelsLazyQuery struct {
	client *Client
	result *ChannelsQueryResult
}

func (c *Client) ChannelsLazy(opts ...Option) *ChannelsLazyQuery {
	return &ChannelsLazyQuery{client: c, result: &ChannelsQueryResult{newResult("channels", c.options(opts))}}
}

func (q *ChannelsLazyQuery) Execute(ctx context.Context) (*ChannelsQueryResult, error) {
	return q.result, q.result.execute(ctx, q.client.channelsFetch())
}

func (q *ChannelsLazyQuery) Result() *ChannelsQueryResult {
	return q.result
}

// GetNamespaces

type GetNamespacesQuery struct {
	Namespaces []NamespaceFields `graphql:"namespaces" json:"namespaces"`
}

type GetNamespacesQueryResult struct{ *Result }

func (r *GetNamespacesQueryResult) Data() *GetNamespacesQuery {
	data, _ := r.value().(*GetNamespacesQuery)
	return data
}

func (c *Client) getNamespacesFetch() fetchFunc {
	return c.queryFetch("GetNamespaces", func() interface{} { return &GetNamespacesQuery{} }, nil)
}

// GetNamespaces lists the namespaces of the cluster.
func (c *Client) GetNamespaces(ctx context.Context, opts ...Option) (*GetNamespacesQueryResult, error) {
	r := &GetNamespacesQueryResult{newResult("GetNamespaces", c.options(opts))}
	return r, r.start(ctx, c.getNamespacesFetch())
}

type GetNamespacesLazyQuery struct {
	client *Client
	result *GetNamespacesQueryResult
}

func (c *Client) GetNamespacesLazy(opts ...Option) *GetNamespacesLazyQuery {
	return &GetNamespacesLazyQuery{client: c, result: &GetNamespacesQueryResult{newResult("GetNamespaces", c.options(opts))}}
}

func (q *GetNamespacesLazyQuery) Execute(ctx context.Context) (*GetNamespacesQueryResult, error) {
	return q.result, q.result.execute(ctx, q.client.getNamespacesFetch())
}

func (q *GetNamespacesLazyQuery) Result() *GetNamespacesQueryResult {
	return q.result
}

// GetOrderer

type GetOrdererQuery struct {
	Orderer *OrdererFields `graphql:"orderer(input: $input)" json:"orderer"`
}

type GetOrdererQueryVariables struct {
	Input models.NameAndNamespace
}

func (v GetOrdererQueryVariables) variables() map[string]interface{} {
	return map[string]interface{}{"input": v.Input}
}

type GetOrdererQueryResult struct{ *Result }

func (r *GetOrdererQueryResult) Data() *GetOrdererQuery {
	data, _ := r.value().(*GetOrdererQuery)
	return data
}

func (c *Client) getOrdererFetch(vars GetOrdererQueryVariables) fetchFunc {
	return c.queryFetch("GetOrderer", func() interface{} { return &GetOrdererQuery{} }, vars.variables())
}

// GetOrderer fetches an ordering node by name and namespace.
func (c *Client) GetOrderer(ctx context.Context, vars GetOrdererQueryVariables, opts ...Option) (*GetOrdererQueryResult, error) {
	r := &GetOrdererQueryResult{newResult("GetOrderer", c.options(opts))}
	return r, r.start(ctx, c.getOrdererFetch(vars))
}

type GetOrdererLazyQuery struct {
	client *Client
	result *GetOrdererQueryResult
}

func (c *Client) GetOrdererLazy(opts ...Option) *GetOrdererLazyQuery {
	return &GetOrdererLazyQuery{client: c, result: &GetOrdererQueryResult{newResult("GetOrderer", c.options(opts))}}
}

func (q *GetOrdererLazyQuery) Execute(ctx context.Context, vars GetOrdererQueryVariables) (*GetOrdererQueryResult, error) {
	return q.result, q.result.execute(ctx, q.client.getOrdererFetch(vars))
}

func (q *GetOrdererLazyQuery) Result() *GetOrdererQueryResult {
	return q.result
}

// GetOrderers

type GetOrderersQuery struct {
	Orderers []OrdererFields `graphql:"orderers" json:"orderers"`
}

type GetOrderersQueryResult struct{ *Result }

func (r *GetOrderersQueryResult) Data() *GetOrderersQuery {
	data, _ := r.value().(*GetOrderersQuery)
	return data
}

func (c *Client) getOrderersFetch() fetchFunc {
	return c.queryFetch("GetOrderers", func() interface{} { return &GetOrderersQuery{} }, nil)
}

// GetOrderers lists the ordering nodes of every namespace.
func (c *Client) GetOrderers(ctx context.Context, opts ...Option) (*GetOrderersQueryResult, error) {
	r := &GetOrderersQueryResult{newResult("GetOrderers", c.options(opts))}
	return r, r.start(ctx, c.getOrderersFetch())
}

type GetOrderersLazyQuery struct {
	client *Client
	result *GetOrderersQueryResult
}

func (c *Client) GetOrderersLazy(opts ...Option) *GetOrderersLazyQuery {
	return &GetOrderersLazyQuery{client: c, result: &GetOrderersQueryResult{newResult("GetOrderers", c.options(opts))}}
}

func (q *GetOrderersLazyQuery) Execute(ctx context.Context) (*GetOrderersQueryResult, error) {
	return q.result, q.result.execute(ctx, q.client.getOrderersFetch())
}

func (q *GetOrderersLazyQuery) Result() *GetOrderersQueryResult {
	return q.result
}

// GetPeer

type GetPeerQuery struct {
	Peer *PeerFields `graphql:"peer(input: $input)" json:"peer"`
}

type GetPeerQueryVariables struct {
	Input models.NameAndNamespace
}

func (v GetPeerQueryVariables) variables() map[string]interface{} {
	return map[string]interface{}{"input": v.Input}
}

type GetPeerQueryResult struct{ *Result }

func (r *GetPeerQueryResult) Data() *GetPeerQuery {
	data, _ := r.value().(*GetPeerQuery)
	return data
}

func (c *Client) getPeerFetch(vars GetPeerQueryVariables) fetchFunc {
	return c.queryFetch("GetPeer", func() interface{} { return &GetPeerQuery{} }, vars.variables())
}

// GetPeer fetches a peer by name and namespace.
func (c *Client) GetPeer(ctx context.Context, vars GetPeerQueryVariables, opts ...Option) (*GetPeerQueryResult, error) {
	r := &GetPeerQueryResult{newResult("GetPeer", c.options(opts))}
	return r, r.start(ctx, c.getPeerFetch(vars))
}

type GetPeerLazyQuery struct {
	client *Client
	result *GetPeerQueryResult
}

func (c *Client) GetPeerLazy(opts ...Option) *GetPeerLazyQuery {
	return &GetPeerLazyQuery{client: c, result: &GetPeerQueryResult{newResult("GetPeer", c.options(opts))}}
}

func (q *GetPeerLazyQuery) Execute(ctx context.Context, vars GetPeerQueryVariables) (*GetPeerQueryResult, error) {
	return q.result, q.result.execute(ctx, q.client.getPeerFetch(vars))
}

func (q *GetPeerLazyQuery) Result() *GetPeerQueryResult {
	return q.result
}

// GetPeers

type GetPeersQuery struct {
	Peers []PeerFields `graphql:"peers" json:"peers"`
}

type GetPeersQueryResult struct{ *Result }

func (r *GetPeersQueryResult) Data() *GetPeersQuery {
	data, _ := r.value().(*GetPeersQuery)
	return data
}

func (c *Client) getPeersFetch() fetchFunc {
	return c.queryFetch("GetPeers", func() interface{} { return &GetPeersQuery{} }, nil)
}

// GetPeers lists the peers of every namespace.
func (c *Client) GetPeers(ctx context.Context, opts ...Option) (*GetPeersQueryResult, error) {
	r := &GetPeersQueryResult{newResult("GetPeers", c.options(opts))}
	return r, r.start(ctx, c.getPeersFetch())
}

type GetPeersLazyQuery struct {
	client *Client
	result *GetPeersQueryResult
}

func (c *Client) GetPeersLazy(opts ...Option) *GetPeersLazyQuery {
	return &GetPeersLazyQuery{client: c, result: &GetPeersQueryResult{newResult("GetPeers", c.options(opts))}}
}

func (q *GetPeersLazyQuery) Execute(ctx context.Context) (*GetPeersQueryResult, error) {
	return q.result, q.result.execute(ctx, q.client.getPeersFetch())
}

func (q *GetPeersLazyQuery) Result() *GetPeersQueryResult {
	return q.result
}
