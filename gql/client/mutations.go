package client

import (
	"context"

	"github.com/kfsoftware/hlf-console/gql/models"
)

// Mutations run once per call; Skip and PollInterval are ignored.

func (c *Client) mutate(ctx context.Context, name string, opts []Option, newData func() interface{}, variables map[string]interface{}) (*Result, error) {
	o := c.options(opts)
	o.Skip = false
	o.PollInterval = 0
	r := newResult(name, o)
	fetch := c.mutationFetch(name, newData, variables)
	r.setFetch(fetch)
	return r, r.run(ctx, fetch)
}

// CreatePeer

type CreatePeerMutation struct {
	CreatePeer *PeerFields `graphql:"createPeer(input: $input)" json:"createPeer"`
}

type CreatePeerMutationVariables struct {
	Input models.CreatePeerInput
}

type CreatePeerMutationResult struct{ *Result }

func (r *CreatePeerMutationResult) Data() *CreatePeerMutation {
	data, _ := r.value().(*CreatePeerMutation)
	return data
}

// CreatePeer creates a peer from its resource manifest.
func (c *Client) CreatePeer(ctx context.Context, vars CreatePeerMutationVariables, opts ...Option) (*CreatePeerMutationResult, error) {
	r, err := c.mutate(ctx, "CreatePeer", opts,
		func() interface{} { return &CreatePeerMutation{} },
		map[string]interface{}{"input": vars.Input})
	return &CreatePeerMutationResult{r}, err
}

// UpdatePeer

type UpdatePeerMutation struct {
	UpdatePeer *PeerFields `graphql:"updatePeer(filter: $filter, input: $input)" json:"updatePeer"`
}

type UpdatePeerMutationVariables struct {
	Filter models.NameAndNamespace
	Input  models.UpdateePeerInput
}

type UpdatePeerMutationResult struct{ *Result }

func (r *UpdatePeerMutationResult) Data() *UpdatePeerMutation {
	data, _ := r.value().(*UpdatePeerMutation)
	return data
}

// UpdatePeer replaces the manifest of the peer selected by the filter.
func (c *Client) UpdatePeer(ctx context.Context, vars UpdatePeerMutationVariables, opts ...Option) (*UpdatePeerMutationResult, error) {
	r, err := c.mutate(ctx, "UpdatePeer", opts,
		func() interface{} { return &UpdatePeerMutation{} },
		map[string]interface{}{"filter": vars.Filter, "input": vars.Input})
	return &UpdatePeerMutationResult{r}, err
}

// CreateOrderer

type CreateOrdererMutation struct {
	CreateOrderer *OrdererFields `graphql:"createOrderer(input: $input)" json:"createOrderer"`
}

type CreateOrdererMutationVariables struct {
	Input models.CreateOrdererInput
}

type CreateOrdererMutationResult struct{ *Result }

func (r *CreateOrdererMutationResult) Data() *CreateOrdererMutation {
	data, _ := r.value().(*CreateOrdererMutation)
	return data
}

// CreateOrderer creates an ordering node from its resource manifest.
func (c *Client) CreateOrderer(ctx context.Context, vars CreateOrdererMutationVariables, opts ...Option) (*CreateOrdererMutationResult, error) {
	r, err := c.mutate(ctx, "CreateOrderer", opts,
		func() interface{} { return &CreateOrdererMutation{} },
		map[string]interface{}{"input": vars.Input})
	return &CreateOrdererMutationResult{r}, err
}

// UpdateOrderer

type UpdateOrdererMutation struct {
	UpdateOrderer *OrdererFields `graphql:"updateOrderer(filter: $filter, input: $input)" json:"updateOrderer"`
}

type UpdateOrdererMutationVariables struct {
	Filter models.NameAndNamespace
	Input  models.UpdateeOrdererInput
}

type UpdateOrdererMutationResult struct{ *Result }

func (r *UpdateOrdererMutationResult) Data() *UpdateOrdererMutation {
	data, _ := r.value().(*UpdateOrdererMutation)
	return data
}

// UpdateOrderer replaces the manifest of the ordering node selected by the filter.
func (c *Client) UpdateOrderer(ctx context.Context, vars UpdateOrdererMutationVariables, opts ...Option) (*UpdateOrdererMutationResult, error) {
	r, err := c.mutate(ctx, "UpdateOrderer", opts,
		func() interface{} { return &UpdateOrdererMutation{} },
		map[string]interface{}{"filter": vars.Filter, "input": vars.Input})
	return &UpdateOrdererMutationResult{r}, err
}

// CreateCA

type CreateCAMutation struct {
	CreateCA *CAFields `graphql:"createCA(input: $input)" json:"createCA"`
}

type CreateCAMutationVariables struct {
	Input models.CreateCAInput
}

type CreateCAMutationResult struct{ *Result }

func (r *CreateCAMutationResult) Data() *CreateCAMutation {
	data, _ := r.value().(*CreateCAMutation)
	return data
}

// CreateCA creates a certificate authority from its resource manifest.
func (c *Client) CreateCA(ctx context.Context, vars CreateCAMutationVariables, opts ...Option) (*CreateCAMutationResult, error) {
	r, err := c.mutate(ctx, "CreateCA", opts,
		func() interface{} { return &CreateCAMutation{} },
		map[string]interface{}{"input": vars.Input})
	return &CreateCAMutationResult{r}, err
}

// UpdateCA

type UpdateCAMutation struct {
	UpdateCA *CAFields `graphql:"updateCA(filter: $filter, input: $input)" json:"updateCA"`
}

type UpdateCAMutationVariables struct {
	Filter models.NameAndNamespace
	Input  models.UpdateeCAInput
}

type UpdateCAMutationResult struct{ *Result }

func (r *UpdateCAMutationResult) Data() *UpdateCAMutation {
	data, _ := r.value().(*UpdateCAMutation)
	return data
}

// UpdateCA replaces the manifest of the certificate authority selected by the filter.
func (c *Client) UpdateCA(ctx context.Context, vars UpdateCAMutationVariables, opts ...Option) (*UpdateCAMutationResult, error) {
	r, err := c.mutate(ctx, "UpdateCA", opts,
		func() interface{} { return &UpdateCAMutation{} },
		map[string]interface{}{"filter": vars.Filter, "input": vars.Input})
	return &UpdateCAMutationResult{r}, err
}
