package gql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2/ast"
)

func TestSchemaLoads(t *testing.T) {
	s, err := Schema()
	require.NoError(t, err)
	require.NotNil(t, s.Query)
	require.NotNil(t, s.Mutation)

	for _, name := range []string{"peers", "peer", "orderers", "orderer", "cas", "ca", "namespaces", "channels", "channel", "blocks", "block"} {
		assert.NotNil(t, s.Query.Fields.ForName(name), "query %s", name)
	}
	for _, name := range []string{"createPeer", "updatePeer", "createOrderer", "updateOrderer", "createCA", "updateCA"} {
		assert.NotNil(t, s.Mutation.Fields.ForName(name), "mutation %s", name)
	}
}

func TestUpdateMutationsFilterByNameAndNamespace(t *testing.T) {
	s, err := Schema()
	require.NoError(t, err)
	for _, name := range []string{"updatePeer", "updateOrderer", "updateCA"} {
		field := s.Mutation.Fields.ForName(name)
		require.NotNil(t, field)
		filter := field.Arguments.ForName("filter")
		require.NotNil(t, filter, name)
		assert.Equal(t, "NameAndNamespace!", filter.Type.String())
	}
}

func TestValidateDocument(t *testing.T) {
	doc, err := ValidateDocument(`query GetPeers { peers { name namespace yaml } }`)
	require.NoError(t, err)
	require.Len(t, doc.Operations, 1)

	_, err = ValidateDocument(`query { peers { name unknownField } }`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknownField")

	_, err = ValidateDocument(`query ($input: NameAndNamespace!) { peer(input: $input) { name } }`)
	require.NoError(t, err)

	_, err = ValidateDocument(`query { peer { name } }`)
	require.Error(t, err)
}

func TestOperationType(t *testing.T) {
	doc, err := ValidateDocument(`
query GetCAs { cas { name } }
mutation CreateCA($input: CreateCAInput!) { createCA(input: $input) { name } }
`)
	require.NoError(t, err)

	op, err := OperationType(doc, "CreateCA")
	require.NoError(t, err)
	assert.Equal(t, ast.Mutation, op)

	op, err = OperationType(doc, "GetCAs")
	require.NoError(t, err)
	assert.Equal(t, ast.Query, op)

	_, err = OperationType(doc, "")
	require.Error(t, err)

	_, err = OperationType(doc, "Missing")
	require.Error(t, err)
}
