package cmdutil

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/kfsoftware/hlf-console/config"
	"github.com/kfsoftware/hlf-console/gql/client"
	"github.com/kfsoftware/hlf-console/log"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Keys of the global flags, bound to viper by the root command.
const (
	URLKey     = "url"
	ContextKey = "context"
	HeaderKey  = "header"
	TimeoutKey = "timeout"
)

// ContextStore opens the context store, rooted at HLF_CONSOLE_ROOT when set.
func ContextStore() (*config.ContextStore, error) {
	if fromEnv := os.Getenv("HLF_CONSOLE_ROOT"); fromEnv != "" {
		base, err := filepath.Abs(config.ExpandPath(fromEnv))
		if err != nil {
			return nil, errors.Wrap(err, "cannot get absolute path")
		}
		log.Debugf("using environment override HLF_CONSOLE_ROOT=%s", base)
		return config.NewContextStoreAt(base), nil
	}
	return config.NewContextStore()
}

// ParseHeaders reads "Name: value" pairs.
func ParseHeaders(raw []string) (map[string]string, error) {
	headers := map[string]string{}
	for _, h := range raw {
		parts := strings.SplitN(h, ":", 2)
		if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" {
			return nil, errors.Errorf("invalid header %q, expected 'Name: value'", h)
		}
		headers[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}
	return headers, nil
}

// ResolveContext picks the API endpoint: --url first, then --context, then
// the current context. Headers given with --header override the context's.
func ResolveContext() (*config.Context, error) {
	headers, err := ParseHeaders(viper.GetStringSlice(HeaderKey))
	if err != nil {
		return nil, err
	}
	var ctx *config.Context
	if url := viper.GetString(URLKey); url != "" {
		ctx = &config.Context{Name: "flags", URL: url}
	} else {
		store, err := ContextStore()
		if err != nil {
			return nil, err
		}
		if name := viper.GetString(ContextKey); name != "" {
			ctx, err = store.Get(name)
		} else {
			ctx, err = store.Current()
		}
		if err != nil {
			return nil, err
		}
	}
	if len(headers) > 0 {
		merged := map[string]string{}
		for k, v := range ctx.Headers {
			merged[k] = v
		}
		for k, v := range headers {
			merged[k] = v
		}
		ctx.Headers = merged
	}
	return ctx, nil
}

// NewClient returns a client for the resolved context.
func NewClient() (*client.Client, error) {
	ctx, err := ResolveContext()
	if err != nil {
		return nil, err
	}
	var opts []client.ClientOption
	for k, v := range ctx.Headers {
		opts = append(opts, client.WithHeader(k, v))
	}
	if timeout := viper.GetDuration(TimeoutKey); timeout > 0 {
		opts = append(opts, client.WithDefaultOptions(client.WithTimeout(timeout)))
	}
	log.Debugf("using console API %s (context %s)", ctx.URL, ctx.Name)
	return client.New(ctx.URL, opts...), nil
}

// EnsureDirs creates every path that does not exist yet.
func EnsureDirs(paths ...string) error {
	for _, p := range paths {
		log.Debugf("Ensure creating dir: %q", p)
		if err := os.MkdirAll(p, 0755); err != nil {
			return errors.Wrapf(err, "failed to ensure create directory %q", p)
		}
	}
	return nil
}
