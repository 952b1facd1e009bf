package node

import (
	"context"

	"github.com/kfsoftware/hlf-console/gql/client"
	"github.com/kfsoftware/hlf-console/gql/models"
)

// item is the common shape of peers, orderers and CAs.
type item struct {
	Name      string `json:"name"`
	Namespace string `json:"namespace"`
	YAML      string `json:"yaml"`
}

func (i item) key() models.NameAndNamespace {
	return models.NameAndNamespace{Name: i.Name, Namespace: i.Namespace}
}

// resource binds one node type to its console operations.
type resource struct {
	name string
	// kind expected in manifests passed to create and update
	kind   string
	list   func(ctx context.Context, c *client.Client) ([]item, error)
	get    func(ctx context.Context, c *client.Client, key models.NameAndNamespace) (*item, error)
	create func(ctx context.Context, c *client.Client, yaml string) (*item, error)
	update func(ctx context.Context, c *client.Client, key models.NameAndNamespace, yaml string) (*item, error)
}

func peerItem(f *client.PeerFields) *item {
	if f == nil {
		return nil
	}
	return &item{Name: f.Name, Namespace: f.Namespace, YAML: f.YAML}
}

func ordererItem(f *client.OrdererFields) *item {
	if f == nil {
		return nil
	}
	return &item{Name: f.Name, Namespace: f.Namespace, YAML: f.YAML}
}

func caItem(f *client.CAFields) *item {
	if f == nil {
		return nil
	}
	return &item{Name: f.Name, Namespace: f.Namespace, YAML: f.YAML}
}

var peerResource = resource{
	name: "peer",
	kind: "FabricPeer",
	list: func(ctx context.Context, c *client.Client) ([]item, error) {
		res, err := c.GetPeers(ctx)
		if err != nil {
			return nil, err
		}
		var items []item
		for i := range res.Data().Peers {
			items = append(items, *peerItem(&res.Data().Peers[i]))
		}
		return items, nil
	},
	get: func(ctx context.Context, c *client.Client, key models.NameAndNamespace) (*item, error) {
		res, err := c.GetPeer(ctx, client.GetPeerQueryVariables{Input: key})
		if err != nil {
			return nil, err
		}
		return peerItem(res.Data().Peer), nil
	},
	create: func(ctx context.Context, c *client.Client, yaml string) (*item, error) {
		res, err := c.CreatePeer(ctx, client.CreatePeerMutationVariables{Input: models.CreatePeerInput{YAML: yaml}})
		if err != nil {
			return nil, err
		}
		return peerItem(res.Data().CreatePeer), nil
	},
	update: func(ctx context.Context, c *client.Client, key models.NameAndNamespace, yaml string) (*item, error) {
		res, err := c.UpdatePeer(ctx, client.UpdatePeerMutationVariables{Filter: key, Input: models.UpdateePeerInput{YAML: &yaml}})
		if err != nil {
			return nil, err
		}
		return peerItem(res.Data().UpdatePeer), nil
	},
}

var ordererResource = resource{
	name: "orderer",
	kind: "FabricOrdererNode",
	list: func(ctx context.Context, c *client.Client) ([]item, error) {
		res, err := c.GetOrderers(ctx)
		if err != nil {
			return nil, err
		}
		var items []item
		for i := range res.Data().Orderers {
			items = append(items, *ordererItem(&res.Data().Orderers[i]))
		}
		return items, nil
	},
	get: func(ctx context.Context, c *client.Client, key models.NameAndNamespace) (*item, error) {
		res, err := c.GetOrderer(ctx, client.GetOrdererQueryVariables{Input: key})
		if err != nil {
			return nil, err
		}
		return ordererItem(res.Data().Orderer), nil
	},
	create: func(ctx context.Context, c *client.Client, yaml string) (*item, error) {
		res, err := c.CreateOrderer(ctx, client.CreateOrdererMutationVariables{Input: models.CreateOrdererInput{YAML: yaml}})
		if err != nil {
			return nil, err
		}
		return ordererItem(res.Data().CreateOrderer), nil
	},
	update: func(ctx context.Context, c *client.Client, key models.NameAndNamespace, yaml string) (*item, error) {
		res, err := c.UpdateOrderer(ctx, client.UpdateOrdererMutationVariables{Filter: key, Input: models.UpdateeOrdererInput{YAML: &yaml}})
		if err != nil {
			return nil, err
		}
		return ordererItem(res.Data().UpdateOrderer), nil
	},
}

var caResource = resource{
	name: "ca",
	kind: "FabricCA",
	list: func(ctx context.Context, c *client.Client) ([]item, error) {
		res, err := c.GetCAs(ctx)
		if err != nil {
			return nil, err
		}
		var items []item
		for i := range res.Data().CAs {
			items = append(items, *caItem(&res.Data().CAs[i]))
		}
		return items, nil
	},
	get: func(ctx context.Context, c *client.Client, key models.NameAndNamespace) (*item, error) {
		res, err := c.GetCA(ctx, client.GetCAQueryVariables{Input: key})
		if err != nil {
			return nil, err
		}
		return caItem(res.Data().CA), nil
	},
	create: func(ctx context.Context, c *client.Client, yaml string) (*item, error) {
		res, err := c.CreateCA(ctx, client.CreateCAMutationVariables{Input: models.CreateCAInput{YAML: yaml}})
		if err != nil {
			return nil, err
		}
		return caItem(res.Data().CreateCA), nil
	},
	update: func(ctx context.Context, c *client.Client, key models.NameAndNamespace, yaml string) (*item, error) {
		res, err := c.UpdateCA(ctx, client.UpdateCAMutationVariables{Filter: key, Input: models.UpdateeCAInput{YAML: &yaml}})
		if err != nil {
			return nil, err
		}
		return caItem(res.Data().UpdateCA), nil
	},
}
