package client

import (
	"time"

	"github.com/kfsoftware/hlf-console/gql/models"
)

// Selection structs shared by several documents. Field tags carry the schema
// field names; the executor builds the request selection from them.

type PeerFields struct {
	Name      string `graphql:"name" json:"name"`
	Namespace string `graphql:"namespace" json:"namespace"`
	YAML      string `graphql:"yaml" json:"yaml"`
}

func (f PeerFields) Key() models.NameAndNamespace {
	return models.NameAndNamespace{Name: f.Name, Namespace: f.Namespace}
}

type OrdererFields struct {
	Name      string `graphql:"name" json:"name"`
	Namespace string `graphql:"namespace" json:"namespace"`
	YAML      string `graphql:"yaml" json:"yaml"`
}

func (f OrdererFields) Key() models.NameAndNamespace {
	return models.NameAndNamespace{Name: f.Name, Namespace: f.Namespace}
}

type CAFields struct {
	Name      string `graphql:"name" json:"name"`
	Namespace string `graphql:"namespace" json:"namespace"`
	YAML      string `graphql:"yaml" json:"yaml"`
}

func (f CAFields) Key() models.NameAndNamespace {
	return models.NameAndNamespace{Name: f.Name, Namespace: f.Namespace}
}

type NamespaceFields struct {
	Name string `graphql:"name" json:"name"`
}

type LightChannelFields struct {
	Name string `graphql:"name" json:"name"`
}

type ChannelPolicyFields struct {
	Key       string `graphql:"key" json:"key"`
	Type      string `graphql:"type" json:"type"`
	Rule      string `graphql:"rule" json:"rule"`
	ModPolicy string `graphql:"modPolicy" json:"modPolicy"`
}

type NetworkAddressFields struct {
	Host string `graphql:"host" json:"host"`
	Port int    `graphql:"port" json:"port"`
}

type OUIdentifierFields struct {
	Certificate  string `graphql:"certificate" json:"certificate"`
	OUIdentifier string `graphql:"ouIdentifier" json:"ouIdentifier"`
}

type ChannelACLFields struct {
	Key   string `graphql:"key" json:"key"`
	Value string `graphql:"value" json:"value"`
}

type ChannelMSPFields struct {
	Name                 string   `graphql:"name" json:"name"`
	RootCerts            []string `graphql:"rootCerts" json:"rootCerts"`
	IntermediateCerts    []string `graphql:"intermediateCerts" json:"intermediateCerts"`
	Admins               []string `graphql:"admins" json:"admins"`
	RevocationList       []string `graphql:"revocationList" json:"revocationList"`
	TLSRootCerts         []string `graphql:"tlsRootCerts" json:"tlsRootCerts"`
	TLSIntermediateCerts []string `graphql:"tlsIntermediateCerts" json:"tlsIntermediateCerts"`
}

type NodeOUsFields struct {
	Enable              bool               `graphql:"enable" json:"enable"`
	ClientOUIdentifier  OUIdentifierFields `graphql:"clientOUIdentifier" json:"clientOUIdentifier"`
	PeerOUIdentifier    OUIdentifierFields `graphql:"peerOUIdentifier" json:"peerOUIdentifier"`
	AdminOUIdentifier   OUIdentifierFields `graphql:"adminOUIdentifier" json:"adminOUIdentifier"`
	OrdererOUIdentifier OUIdentifierFields `graphql:"ordererOUIdentifier" json:"ordererOUIdentifier"`
}

type CryptoConfigFields struct {
	SignatureHashFamily            string `graphql:"signatureHashFamily" json:"signatureHashFamily"`
	IdentityIdentifierHashFunction string `graphql:"identityIdentifierHashFunction" json:"identityIdentifierHashFunction"`
}

type OrdererOrgFields struct {
	ModPolicy        string                `graphql:"modPolicy" json:"modPolicy"`
	MSPID            string                `graphql:"mspID" json:"mspID"`
	OrdererEndpoints []string              `graphql:"ordererEndpoints" json:"ordererEndpoints"`
	CryptoConfig     CryptoConfigFields    `graphql:"cryptoConfig" json:"cryptoConfig"`
	MSP              ChannelMSPFields      `graphql:"msp" json:"msp"`
	NodeOUs          NodeOUsFields         `graphql:"nodeOUs" json:"nodeOUs"`
	Policies         []ChannelPolicyFields `graphql:"policies" json:"policies"`
	OUs              []OUIdentifierFields  `graphql:"ous" json:"ous"`
}

type ApplicationOrgFields struct {
	MSPID      string                 `graphql:"mspID" json:"mspID"`
	ModPolicy  string                 `graphql:"modPolicy" json:"modPolicy"`
	AnchorPeer []NetworkAddressFields `graphql:"anchorPeer" json:"anchorPeer"`
}

type BatchSizeFields struct {
	MaxMessageCount   int `graphql:"maxMessageCount" json:"maxMessageCount"`
	AbsoluteMaxBytes  int `graphql:"absoluteMaxBytes" json:"absoluteMaxBytes"`
	PreferredMaxBytes int `graphql:"preferredMaxBytes" json:"preferredMaxBytes"`
}

type ConsenterFields struct {
	Address       NetworkAddressFields `graphql:"address" json:"address"`
	ClientTLSCert string               `graphql:"clientTlsCert" json:"clientTlsCert"`
	ServerTLSCert string               `graphql:"serverTlsCert" json:"serverTlsCert"`
}

type OrdererConfigFields struct {
	Type         string                `graphql:"type" json:"type"`
	BatchTimeout int                   `graphql:"batchTimeout" json:"batchTimeout"`
	BatchSize    BatchSizeFields       `graphql:"batchSize" json:"batchSize"`
	MaxChannels  int                   `graphql:"maxChannels" json:"maxChannels"`
	Capabilities []string              `graphql:"capabilities" json:"capabilities"`
	State        string                `graphql:"state" json:"state"`
	Policies     []ChannelPolicyFields `graphql:"policies" json:"policies"`
	EtcdDraft    struct {
		Consenters []ConsenterFields `graphql:"consenters" json:"consenters"`
	} `graphql:"etcdDraft" json:"etcdDraft"`
	Organizations []OrdererOrgFields `graphql:"organizations" json:"organizations"`
}

type ApplicationConfigFields struct {
	Policies      []ChannelPolicyFields  `graphql:"policies" json:"policies"`
	Capabilities  []string               `graphql:"capabilities" json:"capabilities"`
	ACLs          []ChannelACLFields     `graphql:"acls" json:"acls"`
	Organizations []ApplicationOrgFields `graphql:"organizations" json:"organizations"`
}

type BlockFields struct {
	BlockNumber     int       `graphql:"blockNumber" json:"blockNumber"`
	DataHash        string    `graphql:"dataHash" json:"dataHash"`
	NumTransactions int       `graphql:"numTransactions" json:"numTransactions"`
	CreatedAt       time.Time `graphql:"createdAt" json:"createdAt"`
}

type TransactionWriteFields struct {
	ChaincodeID string `graphql:"chaincodeID" json:"chaincodeID"`
	Deleted     bool   `graphql:"deleted" json:"deleted"`
	Key         string `graphql:"key" json:"key"`
	Value       string `graphql:"value" json:"value"`
}

type TransactionReadFields struct {
	ChaincodeID     string `graphql:"chaincodeID" json:"chaincodeID"`
	Key             string `graphql:"key" json:"key"`
	BlockNumVersion *int   `graphql:"blockNumVersion" json:"blockNumVersion"`
	TxNumVersion    *int   `graphql:"txNumVersion" json:"txNumVersion"`
}

type TransactionFields struct {
	TxID      string                   `graphql:"txID" json:"txID"`
	Type      models.TransactionType   `graphql:"type" json:"type"`
	CreatedAt time.Time                `graphql:"createdAt" json:"createdAt"`
	Version   string                   `graphql:"version" json:"version"`
	Path      *string                  `graphql:"path" json:"path"`
	Response  *string                  `graphql:"response" json:"response"`
	Request   *string                  `graphql:"request" json:"request"`
	Chaincode string                   `graphql:"chaincode" json:"chaincode"`
	Writes    []TransactionWriteFields `graphql:"writes" json:"writes"`
	Reads     []TransactionReadFields  `graphql:"reads" json:"reads"`
}

type SignedByFields struct {
	SignedBy int `graphql:"signedBy" json:"signedBy"`
}

type MSPPrincipalFields struct {
	Combined *struct {
		Classification string `graphql:"classification" json:"classification"`
	} `graphql:"combined" json:"combined"`
	Role *struct {
		MSPID string `graphql:"mspID" json:"mspID"`
		Role  string `graphql:"role" json:"role"`
	} `graphql:"role" json:"role"`
}

// policy rules are selected at a fixed depth, innermost first

type PolicyRuleLeafFields struct {
	Type     string          `graphql:"type" json:"type"`
	SignedBy *SignedByFields `graphql:"signedBy" json:"signedBy"`
}

type PolicyRuleInnerFields struct {
	Type     string          `graphql:"type" json:"type"`
	SignedBy *SignedByFields `graphql:"signedBy" json:"signedBy"`
	NOutOf   *struct {
		N     int                    `graphql:"n" json:"n"`
		Rules []PolicyRuleLeafFields `graphql:"rules" json:"rules"`
	} `graphql:"noutOf" json:"noutOf"`
}

type PolicyRuleFields struct {
	Type     string          `graphql:"type" json:"type"`
	SignedBy *SignedByFields `graphql:"signedBy" json:"signedBy"`
	NOutOf   *struct {
		N     int                     `graphql:"n" json:"n"`
		Rules []PolicyRuleInnerFields `graphql:"rules" json:"rules"`
	} `graphql:"noutOf" json:"noutOf"`
}

type SignaturePolicyFields struct {
	Version    int                  `graphql:"version" json:"version"`
	Principals []MSPPrincipalFields `graphql:"principals" json:"principals"`
	Rule       PolicyRuleFields     `graphql:"rule" json:"rule"`
}

// Model converts the selection into the schema record.
func (f SignaturePolicyFields) Model() *models.SignaturePolicy {
	policy := &models.SignaturePolicy{
		Version: f.Version,
		Rule:    f.Rule.model(),
	}
	for _, p := range f.Principals {
		principal := &models.MSPPrincipal{}
		if p.Combined != nil {
			principal.Combined = &models.MSPPrincipalCombined{Classification: p.Combined.Classification}
		}
		if p.Role != nil {
			principal.Role = &models.MSPPrincipalRole{MSPID: p.Role.MSPID, Role: p.Role.Role}
		}
		policy.Principals = append(policy.Principals, principal)
	}
	return policy
}

func signedByModel(s *SignedByFields) *models.SignaturePolicySignedBy {
	if s == nil {
		return nil
	}
	return &models.SignaturePolicySignedBy{SignedBy: s.SignedBy}
}

func (f PolicyRuleFields) model() *models.SignaturePolicyRule {
	rule := &models.SignaturePolicyRule{Type: f.Type, SignedBy: signedByModel(f.SignedBy)}
	if f.NOutOf != nil {
		rule.NOutOf = &models.SignaturePolicyNOutOf{N: f.NOutOf.N}
		for _, r := range f.NOutOf.Rules {
			rule.NOutOf.Rules = append(rule.NOutOf.Rules, r.model())
		}
	}
	return rule
}

func (f PolicyRuleInnerFields) model() *models.SignaturePolicyRule {
	rule := &models.SignaturePolicyRule{Type: f.Type, SignedBy: signedByModel(f.SignedBy)}
	if f.NOutOf != nil {
		rule.NOutOf = &models.SignaturePolicyNOutOf{N: f.NOutOf.N}
		for _, r := range f.NOutOf.Rules {
			rule.NOutOf.Rules = append(rule.NOutOf.Rules, r.model())
		}
	}
	return rule
}

func (f PolicyRuleLeafFields) model() *models.SignaturePolicyRule {
	return &models.SignaturePolicyRule{Type: f.Type, SignedBy: signedByModel(f.SignedBy)}
}

type ChaincodeApprovalFields struct {
	MSPID    string `graphql:"mspID" json:"mspID"`
	Approved bool   `graphql:"approved" json:"approved"`
}

type PrivateDataCollectionFields struct {
	Name              string `graphql:"name" json:"name"`
	RequiredPeerCount int    `graphql:"requiredPeerCount" json:"requiredPeerCount"`
	MaxPeerCount      int    `graphql:"maxPeerCount" json:"maxPeerCount"`
	BlockToLive       int    `graphql:"blockToLive" json:"blockToLive"`
	MemberOnlyRead    bool   `graphql:"memberOnlyRead" json:"memberOnlyRead"`
	MemberOnlyWrite   bool   `graphql:"memberOnlyWrite" json:"memberOnlyWrite"`
}

type ChannelChaincodeFields struct {
	Name                   string                        `graphql:"name" json:"name"`
	Version                string                        `graphql:"version" json:"version"`
	Sequence               int                           `graphql:"sequence" json:"sequence"`
	EndorsementPlugin      string                        `graphql:"endorsementPlugin" json:"endorsementPlugin"`
	ValidationPlugin       string                        `graphql:"validationPlugin" json:"validationPlugin"`
	ConfigPolicy           string                        `graphql:"configPolicy" json:"configPolicy"`
	SignaturePolicy        SignaturePolicyFields         `graphql:"signaturePolicy" json:"signaturePolicy"`
	Approvals              []ChaincodeApprovalFields     `graphql:"approvals" json:"approvals"`
	PrivateDataCollections []PrivateDataCollectionFields `graphql:"privateDataCollections" json:"privateDataCollections"`
}
