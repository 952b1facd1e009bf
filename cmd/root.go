package cmd

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/kfsoftware/hlf-console/cmd/block"
	"github.com/kfsoftware/hlf-console/cmd/channel"
	"github.com/kfsoftware/hlf-console/cmd/cmdutil"
	contextcmd "github.com/kfsoftware/hlf-console/cmd/context"
	generatecerts "github.com/kfsoftware/hlf-console/cmd/generate-certs"
	"github.com/kfsoftware/hlf-console/cmd/namespace"
	"github.com/kfsoftware/hlf-console/cmd/node"
	"github.com/kfsoftware/hlf-console/cmd/schema"
	"github.com/kfsoftware/hlf-console/cmd/serve"
	"github.com/kfsoftware/hlf-console/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	envPrefix   = "HLF_CONSOLE"
	verboseKey  = "verbose"
	logLevelKey = "log-level"
)

const rootDesc = `
hlf-console administers a Hyperledger Fabric network through the console API:
peers, orderers and certificate authorities, channels and their blocks.
It also runs the console backend with 'serve'.`

// NewRootCmd builds the command tree. Global flags are bound to viper and can
// also be set with HLF_CONSOLE_* environment variables.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "hlf-console",
		Short:         "Hyperledger Fabric console client and backend",
		Long:          rootDesc,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if level := viper.GetString(logLevelKey); level != "" {
				if err := log.SetLevel(level); err != nil {
					return err
				}
			}
			if viper.GetBool(verboseKey) {
				log.SetVerbose(true)
			}
			return nil
		},
	}
	pf := rootCmd.PersistentFlags()
	pf.BoolP(verboseKey, "v", false, "debug output")
	pf.String(logLevelKey, "", "log level: debug, info, warn or error")
	pf.String(cmdutil.URLKey, "", "GraphQL endpoint of the console API, overrides the context")
	pf.String(cmdutil.ContextKey, "", "stored context to use instead of the current one")
	pf.StringSlice(cmdutil.HeaderKey, nil, "extra request header as 'Name: value'")
	pf.Duration(cmdutil.TimeoutKey, 0, "timeout of every API request")
	for _, key := range []string{verboseKey, logLevelKey, cmdutil.URLKey, cmdutil.ContextKey, cmdutil.HeaderKey, cmdutil.TimeoutKey} {
		if err := viper.BindPFlag(key, pf.Lookup(key)); err != nil {
			log.Fatalf("failed to bind flag %s: %v", key, err)
		}
	}

	rootCmd.AddCommand(
		serve.NewServeCmd(),
		generatecerts.NewGenerateCertsCmd(),
		node.NewPeerCmd(),
		node.NewOrdererCmd(),
		node.NewCACmd(),
		namespace.NewNamespaceCmd(),
		channel.NewChannelCmd(),
		block.NewBlockCmd(),
		contextcmd.NewContextCmd(),
		schema.NewSchemaCmd(),
	)
	return rootCmd
}

func init() {
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// Execute runs the root command until it returns or the process is
// interrupted. This is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := NewRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		log.Fatal(err)
	}
}
