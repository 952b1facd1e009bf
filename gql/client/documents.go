package client

// Canonical request documents. The tagged selection structs in this package
// send the same selection trees.

const GetCADocument = `
query GetCA($input: NameAndNamespace!) {
  ca(input: $input) {
    name
    namespace
    yaml
  }
}
`

const GetCAsDocument = `
query GetCAs {
  cas {
    name
    namespace
    yaml
  }
}
`

const ChannelDocument = `
query channel($channelID: String!) {
  channel(channelID: $channelID) {
    orderer {
      type
      batchTimeout
      batchSize {
        maxMessageCount
        absoluteMaxBytes
        preferredMaxBytes
      }
      maxChannels
      capabilities
      state
      policies {
        key
        type
        rule
        modPolicy
      }
      etcdDraft {
        consenters {
          address {
            host
            port
          }
          clientTlsCert
          serverTlsCert
        }
      }
      organizations {
        modPolicy
        mspID
        ordererEndpoints
        cryptoConfig {
          signatureHashFamily
          identityIdentifierHashFunction
        }
        msp {
          name
          rootCerts
          intermediateCerts
          admins
          revocationList
          tlsRootCerts
          tlsIntermediateCerts
        }
        nodeOUs {
          enable
          clientOUIdentifier {
            certificate
            ouIdentifier
          }
          peerOUIdentifier {
            certificate
            ouIdentifier
          }
          adminOUIdentifier {
            certificate
            ouIdentifier
          }
          ordererOUIdentifier {
            certificate
            ouIdentifier
          }
        }
        policies {
          key
          type
          rule
          modPolicy
        }
        ous {
          certificate
          ouIdentifier
        }
      }
    }
    application {
      policies {
        key
        type
        rule
        modPolicy
      }
      capabilities
      acls {
        key
        value
      }
      organizations {
        mspID
        modPolicy
        anchorPeer {
          host
          port
        }
      }
    }
  }
}
`

const ChannelsDocument = `
query channels {
  channels {
    name
  }
}
`

const GetNamespacesDocument = `
query GetNamespaces {
  namespaces {
    name
  }
}
`

const GetOrdererDocument = `
query GetOrderer($input: NameAndNamespace!) {
  orderer(input: $input) {
    name
    namespace
    yaml
  }
}
`

const GetOrderersDocument = `
query GetOrderers {
  orderers {
    name
    namespace
    yaml
  }
}
`

const GetPeerDocument = `
query GetPeer($input: NameAndNamespace!) {
  peer(input: $input) {
    name
    namespace
    yaml
  }
}
`

const GetPeersDocument = `
query GetPeers {
  peers {
    name
    namespace
    yaml
  }
}
`

const ChannelConfigDocument = `
query ChannelConfig($channelID: String!) {
  channel(channelID: $channelID) {
    name
    rawConfig
    protoConfig
    height
  }
}
`

// ChannelChaincodesDocument selects signature policies three rule levels
// deep; deeper rules come back without their children.
const ChannelChaincodesDocument = `
query ChannelChaincodes($channelID: String!) {
  channel(channelID: $channelID) {
    name
    height
    chaincodes {
      name
      version
      sequence
      endorsementPlugin
      validationPlugin
      configPolicy
      signaturePolicy {
        version
        principals {
          combined {
            classification
          }
          role {
            mspID
            role
          }
        }
        rule {
          type
          signedBy {
            signedBy
          }
          noutOf {
            n
            rules {
              type
              signedBy {
                signedBy
              }
              noutOf {
                n
                rules {
                  type
                  signedBy {
                    signedBy
                  }
                }
              }
            }
          }
        }
      }
      approvals {
        mspID
        approved
      }
      privateDataCollections {
        name
        requiredPeerCount
        maxPeerCount
        blockToLive
        memberOnlyRead
        memberOnlyWrite
      }
    }
  }
}
`

const BlocksDocument = `
query Blocks($channelID: String!, $from: Int!, $to: Int!, $reverse: Boolean!) {
  blocks(channelID: $channelID, from: $from, to: $to, reverse: $reverse) {
    height
    blocks {
      blockNumber
      dataHash
      numTransactions
      createdAt
    }
  }
}
`

const BlockDocument = `
query Block($channelID: String!, $blockNumber: Int!) {
  block(channelID: $channelID, blockNumber: $blockNumber) {
    blockNumber
    dataHash
    numTransactions
    createdAt
    transactions {
      txID
      type
      createdAt
      version
      path
      response
      request
      chaincode
      writes {
        chaincodeID
        deleted
        key
        value
      }
      reads {
        chaincodeID
        key
        blockNumVersion
        txNumVersion
      }
    }
  }
}
`

const CreatePeerDocument = `
mutation CreatePeer($input: CreatePeerInput!) {
  createPeer(input: $input) {
    name
    namespace
    yaml
  }
}
`

const UpdatePeerDocument = `
mutation UpdatePeer($filter: NameAndNamespace!, $input: UpdateePeerInput!) {
  updatePeer(filter: $filter, input: $input) {
    name
    namespace
    yaml
  }
}
`

const CreateOrdererDocument = `
mutation CreateOrderer($input: CreateOrdererInput!) {
  createOrderer(input: $input) {
    name
    namespace
    yaml
  }
}
`

const UpdateOrdererDocument = `
mutation UpdateOrderer($filter: NameAndNamespace!, $input: UpdateeOrdererInput!) {
  updateOrderer(filter: $filter, input: $input) {
    name
    namespace
    yaml
  }
}
`

const CreateCADocument = `
mutation CreateCA($input: CreateCAInput!) {
  createCA(input: $input) {
    name
    namespace
    yaml
  }
}
`

const UpdateCADocument = `
mutation UpdateCA($filter: NameAndNamespace!, $input: UpdateeCAInput!) {
  updateCA(filter: $filter, input: $input) {
    name
    namespace
    yaml
  }
}
`

// Documents maps operation names to their canonical documents.
var Documents = map[string]string{
	"GetCA":             GetCADocument,
	"GetCAs":            GetCAsDocument,
	"channel":           ChannelDocument,
	"channels":          ChannelsDocument,
	"GetNamespaces":     GetNamespacesDocument,
	"GetOrderer":        GetOrdererDocument,
	"GetOrderers":       GetOrderersDocument,
	"GetPeer":           GetPeerDocument,
	"GetPeers":          GetPeersDocument,
	"ChannelConfig":     ChannelConfigDocument,
	"ChannelChaincodes": ChannelChaincodesDocument,
	"Blocks":            BlocksDocument,
	"Block":             BlockDocument,
	"CreatePeer":        CreatePeerDocument,
	"UpdatePeer":        UpdatePeerDocument,
	"CreateOrderer":     CreateOrdererDocument,
	"UpdateOrderer":     UpdateOrdererDocument,
	"CreateCA":          CreateCADocument,
	"UpdateCA":          UpdateCADocument,
}
