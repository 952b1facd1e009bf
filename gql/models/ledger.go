package models

import (
	"encoding/base64"

	"github.com/golang/protobuf/proto"
	cb "github.com/hyperledger/fabric-protos-go/common"
	"github.com/pkg/errors"
)

// HeaderType returns the envelope header type carried by transactions of
// this type.
func (e TransactionType) HeaderType() (cb.HeaderType, bool) {
	v, ok := cb.HeaderType_value[string(e)]
	if !ok {
		return 0, false
	}
	return cb.HeaderType(v), true
}

// TransactionTypeFromHeader is the inverse of HeaderType.
func TransactionTypeFromHeader(h cb.HeaderType) (TransactionType, bool) {
	t := TransactionType(h.String())
	return t, t.IsValid()
}

// DecodeConfig decodes protoConfig, the base64 encoded common.Config of the
// channel.
func (c *Channel) DecodeConfig() (*cb.Config, error) {
	if c.ProtoConfig == "" {
		return nil, errors.Errorf("channel %s has no protoConfig", c.Name)
	}
	raw, err := base64.StdEncoding.DecodeString(c.ProtoConfig)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode protoConfig of channel %s", c.Name)
	}
	cfg := &cb.Config{}
	if err := proto.Unmarshal(raw, cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal config of channel %s", c.Name)
	}
	return cfg, nil
}
