package models

import (
	"fmt"
	"strings"

	cb "github.com/hyperledger/fabric-protos-go/common"
	"github.com/hyperledger/fabric-sdk-go/third_party/github.com/hyperledger/fabric/common/policydsl"
	"github.com/pkg/errors"
)

// roles accepted by the policy DSL, keyed by the MSPRole enum name
var dslRoles = map[string]string{
	"MEMBER":  "member",
	"ADMIN":   "admin",
	"CLIENT":  "client",
	"PEER":    "peer",
	"ORDERER": "orderer",
}

// DSL renders the policy the way `peer lifecycle` expects it, e.g.
// OR('Org1MSP.member','Org2MSP.member').
func (p *SignaturePolicy) DSL() (string, error) {
	if p == nil || p.Rule == nil {
		return "", errors.New("signature policy has no rule")
	}
	principals := make([]string, len(p.Principals))
	for i, principal := range p.Principals {
		s, err := principal.dsl()
		if err != nil {
			return "", errors.Wrapf(err, "principal %d", i)
		}
		principals[i] = s
	}
	return p.Rule.dsl(principals)
}

// Envelope parses the rendered DSL back into the protobuf form used on the
// channel.
func (p *SignaturePolicy) Envelope() (*cb.SignaturePolicyEnvelope, error) {
	dsl, err := p.DSL()
	if err != nil {
		return nil, err
	}
	envelope, err := policydsl.FromString(dsl)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid policy %s", dsl)
	}
	return envelope, nil
}

func (p *MSPPrincipal) dsl() (string, error) {
	if p == nil {
		return "", errors.New("nil principal")
	}
	if p.Combined != nil {
		return "", errors.Errorf("%s principals cannot be expressed in the policy DSL", p.Combined.Classification)
	}
	if p.Role == nil {
		return "", errors.New("principal has no role")
	}
	role, ok := dslRoles[strings.ToUpper(p.Role.Role)]
	if !ok {
		return "", errors.Errorf("unknown MSP role %q", p.Role.Role)
	}
	return fmt.Sprintf("'%s.%s'", p.Role.MSPID, role), nil
}

func (r *SignaturePolicyRule) dsl(principals []string) (string, error) {
	if r == nil {
		return "", errors.New("nil rule")
	}
	switch {
	case r.SignedBy != nil:
		idx := r.SignedBy.SignedBy
		if idx < 0 || idx >= len(principals) {
			return "", errors.Errorf("signedBy %d out of range, policy has %d principals", idx, len(principals))
		}
		return principals[idx], nil
	case r.NOutOf != nil:
		if len(r.NOutOf.Rules) == 0 {
			return "", errors.New("noutOf rule without sub rules")
		}
		rules := make([]string, 0, len(r.NOutOf.Rules))
		for _, rule := range r.NOutOf.Rules {
			s, err := rule.dsl(principals)
			if err != nil {
				return "", err
			}
			rules = append(rules, s)
		}
		n := r.NOutOf.N
		joined := strings.Join(rules, ",")
		switch {
		case n == len(rules):
			return fmt.Sprintf("AND(%s)", joined), nil
		case n == 1:
			return fmt.Sprintf("OR(%s)", joined), nil
		default:
			return fmt.Sprintf("OutOf(%d,%s)", n, joined), nil
		}
	}
	return "", errors.Errorf("rule of type %q has neither signedBy nor noutOf", r.Type)
}
