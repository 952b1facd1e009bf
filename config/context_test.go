package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/client-go/util/homedir"
)

func TestContextStore(t *testing.T) {
	store := NewContextStoreAt(t.TempDir())

	_, err := store.Current()
	assert.Equal(t, ErrNoContext, err)

	contexts, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, contexts)

	require.NoError(t, store.Add(Context{Name: "prod", URL: "https://console.example.com/graphql"}))
	require.NoError(t, store.Add(Context{
		Name:    "local",
		URL:     "http://localhost:8080/graphql",
		Headers: map[string]string{"Authorization": "Bearer t"},
	}))

	ctx, err := store.Get("local")
	require.NoError(t, err)
	assert.Equal(t, "Bearer t", ctx.Headers["Authorization"])

	contexts, err = store.List()
	require.NoError(t, err)
	require.Len(t, contexts, 2)
	assert.Equal(t, "local", contexts[0].Name)
	assert.Equal(t, "prod", contexts[1].Name)

	require.NoError(t, store.Use("prod"))
	current, err := store.Current()
	require.NoError(t, err)
	assert.Equal(t, "https://console.example.com/graphql", current.URL)

	require.NoError(t, store.Add(Context{Name: "prod", URL: "https://other.example.com/graphql"}))
	current, err = store.Current()
	require.NoError(t, err)
	assert.Equal(t, "https://other.example.com/graphql", current.URL)
}

func TestContextStoreErrors(t *testing.T) {
	store := NewContextStoreAt(t.TempDir())

	assert.Error(t, store.Add(Context{Name: "no-url"}))
	assert.Error(t, store.Add(Context{URL: "http://localhost"}))
	_, err := store.Get("missing")
	assert.EqualError(t, err, "context missing not found")
	assert.Error(t, store.Use("missing"))
}

func TestExpandPath(t *testing.T) {
	home := homedir.HomeDir()
	assert.Equal(t, home, ExpandPath("~"))
	assert.Equal(t, filepath.Join(home, "peers"), ExpandPath("~/peers"))
	assert.Equal(t, "/tmp/peers", ExpandPath("/tmp/peers"))
	assert.Equal(t, "relative/~", ExpandPath("relative/~"))
}
