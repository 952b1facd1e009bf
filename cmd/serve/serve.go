package serve

import (
	"context"
	"crypto/tls"
	"io/ioutil"
	"path/filepath"
	"time"

	"github.com/kfsoftware/hlf-console/ca"
	"github.com/kfsoftware/hlf-console/cmd/cmdutil"
	"github.com/kfsoftware/hlf-console/config"
	"github.com/kfsoftware/hlf-console/log"
	"github.com/kfsoftware/hlf-console/server"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	serveDesc = `
'serve' command starts the console backend: it validates GraphQL requests
against the console schema and forwards them to the console API`
	serveExample = `  hlf-console serve --address="0.0.0.0:8080" --upstream=http://console-api:8080/graphql
  hlf-console serve --config=./console.yaml --tls-self-signed --tls-host=console.local`

	shutdownTimeout = 10 * time.Second
)

type serveCmd struct {
	address        string
	metricsAddress string
	upstream       string
	staticDir      string
	config         string
	tlsSelfSigned  bool
	tlsHosts       []string
	tlsCAOut       string
	tlsCert        string
	tlsKey         string
}

// serveConfig is the layout of the --config file. Flags given on the command
// line take precedence over it.
type serveConfig struct {
	Address        string `mapstructure:"address"`
	MetricsAddress string `mapstructure:"metricsAddress"`
	Upstream       string `mapstructure:"upstream"`
	StaticDir      string `mapstructure:"staticDir"`
	TLS            struct {
		SelfSigned bool     `mapstructure:"selfSigned"`
		Hosts      []string `mapstructure:"hosts"`
		CAOut      string   `mapstructure:"caOut"`
		Cert       string   `mapstructure:"cert"`
		Key        string   `mapstructure:"key"`
	} `mapstructure:"tls"`
}

func NewServeCmd() *cobra.Command {
	s := &serveCmd{}
	cmd := &cobra.Command{
		Use:     "serve",
		Short:   "Starts the console backend",
		Long:    serveDesc,
		Example: serveExample,
		RunE: func(cmd *cobra.Command, args []string) error {
			if s.config != "" {
				if err := s.loadConfig(cmd.Flags()); err != nil {
					return err
				}
			}
			if err := s.validate(); err != nil {
				return err
			}
			return s.run(cmd.Context())
		},
	}

	f := cmd.Flags()
	f.StringVar(&s.address, "address", "0.0.0.0:8080", "address for the server")
	f.StringVar(&s.metricsAddress, "metrics-address", "", "address for the metrics server")
	f.StringVar(&s.upstream, "upstream", "", "GraphQL endpoint of the console API")
	f.StringVar(&s.staticDir, "static-dir", "", "directory with the console UI, served at /")
	f.StringVarP(&s.config, "config", "c", "", "config file")
	f.BoolVar(&s.tlsSelfSigned, "tls-self-signed", false, "serve HTTPS with a generated certificate")
	f.StringSliceVar(&s.tlsHosts, "tls-host", []string{"localhost"}, "host names of the generated certificate")
	f.StringVar(&s.tlsCAOut, "tls-ca-out", "", "write the generated certificate here so clients can trust it")
	f.StringVar(&s.tlsCert, "tls-cert", "", "serving certificate, see 'generate-certs'")
	f.StringVar(&s.tlsKey, "tls-key", "", "private key of --tls-cert")
	return cmd
}

// loadConfig reads the config file and fills every option whose flag was
// not set.
func (c *serveCmd) loadConfig(flags *pflag.FlagSet) error {
	v := viper.New()
	v.SetConfigFile(c.config)
	if err := v.ReadInConfig(); err != nil {
		return errors.Wrapf(err, "failed to read config %s", c.config)
	}
	conf := &serveConfig{}
	if err := v.Unmarshal(conf); err != nil {
		return errors.Wrapf(err, "invalid config %s", c.config)
	}
	setString := func(flag string, dst *string, value string) {
		if !flags.Changed(flag) && value != "" {
			*dst = value
		}
	}
	setString("address", &c.address, conf.Address)
	setString("metrics-address", &c.metricsAddress, conf.MetricsAddress)
	setString("upstream", &c.upstream, conf.Upstream)
	setString("static-dir", &c.staticDir, conf.StaticDir)
	setString("tls-ca-out", &c.tlsCAOut, conf.TLS.CAOut)
	setString("tls-cert", &c.tlsCert, conf.TLS.Cert)
	setString("tls-key", &c.tlsKey, conf.TLS.Key)
	if !flags.Changed("tls-self-signed") && conf.TLS.SelfSigned {
		c.tlsSelfSigned = true
	}
	if !flags.Changed("tls-host") && len(conf.TLS.Hosts) > 0 {
		c.tlsHosts = conf.TLS.Hosts
	}
	log.Debugf("loaded config %s", c.config)
	return nil
}

func (c *serveCmd) validate() error {
	if c.address == "" {
		return errors.New("--address is required for the server")
	}
	if c.upstream == "" {
		return errors.New("--upstream is required")
	}
	if c.metricsAddress != "" && c.metricsAddress == c.address {
		return errors.New("--metrics-address must differ from --address")
	}
	if c.tlsCAOut != "" && !c.tlsSelfSigned {
		return errors.New("--tls-ca-out requires --tls-self-signed")
	}
	if (c.tlsCert == "") != (c.tlsKey == "") {
		return errors.New("--tls-cert and --tls-key must be given together")
	}
	if c.tlsCert != "" && c.tlsSelfSigned {
		return errors.New("--tls-cert cannot be combined with --tls-self-signed")
	}
	return nil
}

func (c *serveCmd) tlsConfig() (*tls.Config, error) {
	if c.tlsCert != "" {
		pair, err := tls.LoadX509KeyPair(config.ExpandPath(c.tlsCert), config.ExpandPath(c.tlsKey))
		if err != nil {
			return nil, errors.Wrap(err, "failed to load TLS certificate")
		}
		return &tls.Config{MinVersion: tls.VersionTLS12, Certificates: []tls.Certificate{pair}}, nil
	}
	if !c.tlsSelfSigned {
		return nil, nil
	}
	tlsConfig, caCrt, err := ca.SelfSignedTLSConfig(c.tlsHosts)
	if err != nil {
		return nil, err
	}
	if c.tlsCAOut != "" {
		path := config.ExpandPath(c.tlsCAOut)
		if err := cmdutil.EnsureDirs(filepath.Dir(path)); err != nil {
			return nil, err
		}
		if err := ioutil.WriteFile(path, ca.EncodeCertificate(caCrt), 0644); err != nil {
			return nil, errors.Wrapf(err, "failed to write %s", path)
		}
		log.Infof("TLS certificate authority written to %s", path)
	}
	return tlsConfig, nil
}

func (c *serveCmd) run(ctx context.Context) error {
	tlsConfig, err := c.tlsConfig()
	if err != nil {
		return err
	}
	s, err := server.NewServer(server.ConsoleServerOpts{
		Address:        c.address,
		MetricsAddress: c.metricsAddress,
		UpstreamURL:    c.upstream,
		StaticDir:      config.ExpandPath(c.staticDir),
		TLSConfig:      tlsConfig,
	})
	if err != nil {
		return err
	}
	done := make(chan struct{})
	go func() {
		s.Run()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
	}
	log.Infof("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.Stop(shutdownCtx); err != nil {
		return errors.Wrap(err, "failed to stop the server")
	}
	<-done
	return nil
}
