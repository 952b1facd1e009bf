package models

import (
	"bytes"
	"encoding/base64"
	"testing"

	"github.com/golang/protobuf/proto"
	cb "github.com/hyperledger/fabric-protos-go/common"
	mspproto "github.com/hyperledger/fabric-protos-go/msp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rolePrincipal(mspID, role string) *MSPPrincipal {
	return &MSPPrincipal{Role: &MSPPrincipalRole{MSPID: mspID, Role: role}}
}

func signedBy(i int) *SignaturePolicyRule {
	return &SignaturePolicyRule{Type: "SIGNED_BY", SignedBy: &SignaturePolicySignedBy{SignedBy: i}}
}

func nOutOf(n int, rules ...*SignaturePolicyRule) *SignaturePolicyRule {
	return &SignaturePolicyRule{Type: "N_OUT_OF", NOutOf: &SignaturePolicyNOutOf{N: n, Rules: rules}}
}

func TestSignaturePolicyDSL(t *testing.T) {
	tests := []struct {
		name   string
		policy *SignaturePolicy
		want   string
	}{
		{
			name: "or",
			policy: &SignaturePolicy{
				Rule:       nOutOf(1, signedBy(0), signedBy(1)),
				Principals: []*MSPPrincipal{rolePrincipal("Org1MSP", "MEMBER"), rolePrincipal("Org2MSP", "MEMBER")},
			},
			want: "OR('Org1MSP.member','Org2MSP.member')",
		},
		{
			name: "and",
			policy: &SignaturePolicy{
				Rule:       nOutOf(2, signedBy(0), signedBy(1)),
				Principals: []*MSPPrincipal{rolePrincipal("Org1MSP", "ADMIN"), rolePrincipal("Org2MSP", "peer")},
			},
			want: "AND('Org1MSP.admin','Org2MSP.peer')",
		},
		{
			name: "out of",
			policy: &SignaturePolicy{
				Rule: nOutOf(2, signedBy(0), signedBy(1), signedBy(2)),
				Principals: []*MSPPrincipal{
					rolePrincipal("Org1MSP", "MEMBER"),
					rolePrincipal("Org2MSP", "MEMBER"),
					rolePrincipal("Org3MSP", "MEMBER"),
				},
			},
			want: "OutOf(2,'Org1MSP.member','Org2MSP.member','Org3MSP.member')",
		},
		{
			name: "nested",
			policy: &SignaturePolicy{
				Rule:       nOutOf(1, nOutOf(2, signedBy(0), signedBy(1)), signedBy(2)),
				Principals: []*MSPPrincipal{rolePrincipal("A", "MEMBER"), rolePrincipal("B", "MEMBER"), rolePrincipal("C", "ADMIN")},
			},
			want: "OR(AND('A.member','B.member'),'C.admin')",
		},
		{
			name: "single signer",
			policy: &SignaturePolicy{
				Rule:       signedBy(0),
				Principals: []*MSPPrincipal{rolePrincipal("Org1MSP", "CLIENT")},
			},
			want: "'Org1MSP.client'",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.policy.DSL()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSignaturePolicyDSLErrors(t *testing.T) {
	tests := []struct {
		name   string
		policy *SignaturePolicy
	}{
		{name: "nil", policy: nil},
		{name: "no rule", policy: &SignaturePolicy{}},
		{
			name:   "index out of range",
			policy: &SignaturePolicy{Rule: signedBy(3), Principals: []*MSPPrincipal{rolePrincipal("A", "MEMBER")}},
		},
		{
			name:   "unknown role",
			policy: &SignaturePolicy{Rule: signedBy(0), Principals: []*MSPPrincipal{rolePrincipal("A", "AUDITOR")}},
		},
		{
			name: "combined principal",
			policy: &SignaturePolicy{
				Rule:       signedBy(0),
				Principals: []*MSPPrincipal{{Combined: &MSPPrincipalCombined{Classification: "COMBINED"}}},
			},
		},
		{
			name:   "empty noutOf",
			policy: &SignaturePolicy{Rule: nOutOf(1), Principals: []*MSPPrincipal{rolePrincipal("A", "MEMBER")}},
		},
		{
			name:   "empty rule",
			policy: &SignaturePolicy{Rule: &SignaturePolicyRule{Type: "UNKNOWN"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.policy.DSL()
			require.Error(t, err)
		})
	}
}

func TestSignaturePolicyEnvelope(t *testing.T) {
	policy := &SignaturePolicy{
		Rule:       nOutOf(1, signedBy(0), signedBy(1)),
		Principals: []*MSPPrincipal{rolePrincipal("Org1MSP", "MEMBER"), rolePrincipal("Org2MSP", "ADMIN")},
	}
	envelope, err := policy.Envelope()
	require.NoError(t, err)

	rule := envelope.Rule.GetNOutOf()
	require.NotNil(t, rule)
	assert.Equal(t, int32(1), rule.N)
	require.Len(t, rule.Rules, 2)
	require.Len(t, envelope.Identities, 2)

	role := &mspproto.MSPRole{}
	require.NoError(t, proto.Unmarshal(envelope.Identities[0].Principal, role))
	assert.Equal(t, "Org1MSP", role.MspIdentifier)
	assert.Equal(t, mspproto.MSPRole_MEMBER, role.Role)

	require.NoError(t, proto.Unmarshal(envelope.Identities[1].Principal, role))
	assert.Equal(t, "Org2MSP", role.MspIdentifier)
	assert.Equal(t, mspproto.MSPRole_ADMIN, role.Role)
}

func TestTransactionTypeHeaderType(t *testing.T) {
	for _, tt := range AllTransactionType {
		h, ok := tt.HeaderType()
		require.True(t, ok, tt)
		back, ok := TransactionTypeFromHeader(h)
		require.True(t, ok, tt)
		assert.Equal(t, tt, back)
	}

	h, ok := TransactionTypeEndorserTransaction.HeaderType()
	require.True(t, ok)
	assert.Equal(t, cb.HeaderType_ENDORSER_TRANSACTION, h)

	_, ok = TransactionType("BOGUS").HeaderType()
	assert.False(t, ok)
}

func TestTransactionTypeGQL(t *testing.T) {
	var tt TransactionType
	require.NoError(t, tt.UnmarshalGQL("CONFIG"))
	assert.Equal(t, TransactionTypeConfig, tt)
	assert.Error(t, tt.UnmarshalGQL("NOPE"))
	assert.Error(t, tt.UnmarshalGQL(3))

	buf := &bytes.Buffer{}
	TransactionTypeConfigUpdate.MarshalGQL(buf)
	assert.Equal(t, `"CONFIG_UPDATE"`, buf.String())
}

func TestChannelDecodeConfig(t *testing.T) {
	cfg := &cb.Config{Sequence: 7}
	raw, err := proto.Marshal(cfg)
	require.NoError(t, err)

	ch := &Channel{Name: "demo", ProtoConfig: base64.StdEncoding.EncodeToString(raw)}
	decoded, err := ch.DecodeConfig()
	require.NoError(t, err)
	assert.Equal(t, uint64(7), decoded.Sequence)

	_, err = (&Channel{Name: "demo"}).DecodeConfig()
	assert.Error(t, err)

	_, err = (&Channel{Name: "demo", ProtoConfig: "%%%"}).DecodeConfig()
	assert.Error(t, err)
}

func TestNameAndNamespaceString(t *testing.T) {
	assert.Equal(t, "default/org1-peer0", NameAndNamespace{Name: "org1-peer0", Namespace: "default"}.String())
}
