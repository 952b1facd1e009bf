package generate_certs

import (
	"crypto/x509/pkix"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/kfsoftware/hlf-console/ca"
	"github.com/kfsoftware/hlf-console/cmd/cmdutil"
	"github.com/kfsoftware/hlf-console/config"
	"github.com/kfsoftware/hlf-console/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"k8s.io/client-go/util/homedir"
)

const (
	generateDesc = `
'generate-certs' creates a certificate authority and a serving certificate
for 'serve --tls-cert --tls-key'`
	generateExample = `  hlf-console generate-certs --host=console.local --host=10.0.0.4`

	caCertFile  = "ca.pem"
	caKeyFile   = "ca-key.pem"
	tlsCertFile = "tls.pem"
	tlsKeyFile  = "tls-key.pem"
)

// certsDir is where certificates go when --out-dir is not set.
func certsDir() (string, error) {
	base := filepath.Join(homedir.HomeDir(), ".hlf-console")
	if fromEnv := os.Getenv("HLF_CONSOLE_ROOT"); fromEnv != "" {
		base = config.ExpandPath(fromEnv)
		log.Debugf("using environment override HLF_CONSOLE_ROOT=%s", fromEnv)
	}
	base, err := filepath.Abs(base)
	if err != nil {
		return "", errors.Wrap(err, "cannot get absolute path")
	}
	return filepath.Join(base, "certs"), nil
}

type generateCmd struct {
	hosts        []string
	outDir       string
	organization string
	force        bool
}

func (c *generateCmd) validate() error {
	if len(c.hosts) == 0 {
		return errors.New("--host is required")
	}
	if c.organization == "" {
		return errors.New("--organization is required")
	}
	return nil
}

// checkFree fails when any of names already exists in dir.
func checkFree(dir string, names ...string) error {
	for _, name := range names {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return errors.Errorf("%s already exists, use --force to replace it", path)
		} else if !os.IsNotExist(err) {
			return errors.Wrapf(err, "failed to check %s", path)
		}
	}
	return nil
}

func (c *generateCmd) run(out io.Writer) error {
	dir := config.ExpandPath(c.outDir)
	if dir == "" {
		var err error
		dir, err = certsDir()
		if err != nil {
			return err
		}
	}
	if err := cmdutil.EnsureDirs(dir); err != nil {
		return err
	}
	if !c.force {
		if err := checkFree(dir, caCertFile, caKeyFile, tlsCertFile, tlsKeyFile); err != nil {
			return err
		}
	}
	caCrt, caKey, err := ca.CreateTLSCA(pkix.Name{
		Organization: []string{c.organization},
		CommonName:   c.organization + "-ca",
	})
	if err != nil {
		return err
	}
	crt, key, err := ca.IssueServerCert(caCrt, caKey, c.hosts, pkix.Name{
		Organization: []string{c.organization},
		CommonName:   c.hosts[0],
	})
	if err != nil {
		return err
	}
	caKeyPEM, err := ca.EncodePrivateKey(caKey)
	if err != nil {
		return err
	}
	keyPEM, err := ca.EncodePrivateKey(key)
	if err != nil {
		return err
	}
	files := []struct {
		name     string
		contents []byte
	}{
		{caCertFile, ca.EncodeCertificate(caCrt)},
		{caKeyFile, caKeyPEM},
		{tlsCertFile, ca.EncodeCertificate(crt)},
		{tlsKeyFile, keyPEM},
	}
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if err := ioutil.WriteFile(path, f.contents, 0600); err != nil {
			return errors.Wrapf(err, "failed to write %s", path)
		}
		log.Infof("%s written", path)
	}
	_, err = io.WriteString(out, "hlf-console serve --tls-cert="+filepath.Join(dir, tlsCertFile)+" --tls-key="+filepath.Join(dir, tlsKeyFile)+"\n")
	return err
}

func NewGenerateCertsCmd() *cobra.Command {
	c := &generateCmd{}
	cmd := &cobra.Command{
		Use:     "generate-certs",
		Short:   "Generate TLS certificates for the console backend",
		Long:    generateDesc,
		Example: generateExample,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.validate(); err != nil {
				return err
			}
			return c.run(cmd.OutOrStdout())
		},
	}
	f := cmd.Flags()
	f.StringSliceVar(&c.hosts, "host", []string{"localhost"}, "DNS names and IPs of the serving certificate")
	f.StringVar(&c.outDir, "out-dir", "", "output directory, defaults to ~/.hlf-console/certs")
	f.StringVar(&c.organization, "organization", "hlf-console", "organization of the certificates")
	f.BoolVar(&c.force, "force", false, "replace existing files")
	return cmd
}
