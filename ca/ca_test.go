package ca

import (
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueServerCert(t *testing.T) {
	caCrt, caKey, err := CreateTLSCA(pkix.Name{CommonName: "test-ca"})
	require.NoError(t, err)
	assert.True(t, caCrt.IsCA)

	crt, _, err := IssueServerCert(caCrt, caKey, []string{"console.local", "10.0.0.2", "127.0.0.1"}, pkix.Name{CommonName: "console"})
	require.NoError(t, err)
	assert.Equal(t, []string{"console.local"}, crt.DNSNames)
	require.Len(t, crt.IPAddresses, 2)
	assert.True(t, crt.IPAddresses[1].Equal(net.ParseIP("10.0.0.2")))

	roots := x509.NewCertPool()
	roots.AddCert(caCrt)
	_, err = crt.Verify(x509.VerifyOptions{
		DNSName:   "console.local",
		Roots:     roots,
		KeyUsages: []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
	})
	assert.NoError(t, err)
}

func TestSelfSignedTLSConfig(t *testing.T) {
	cfg, caCrt, err := SelfSignedTLSConfig([]string{"localhost"})
	require.NoError(t, err)
	require.Len(t, cfg.Certificates, 1)
	leaf := cfg.Certificates[0].Leaf
	require.NotNil(t, leaf)
	assert.NoError(t, leaf.CheckSignatureFrom(caCrt))
	assert.Contains(t, leaf.DNSNames, "localhost")
}

func TestEncode(t *testing.T) {
	caCrt, caKey, err := CreateTLSCA(pkix.Name{CommonName: "test-ca"})
	require.NoError(t, err)

	block, _ := pem.Decode(EncodeCertificate(caCrt))
	require.NotNil(t, block)
	assert.Equal(t, "CERTIFICATE", block.Type)

	keyPEM, err := EncodePrivateKey(caKey)
	require.NoError(t, err)
	block, _ = pem.Decode(keyPEM)
	require.NotNil(t, block)
	_, err = x509.ParsePKCS8PrivateKey(block.Bytes)
	assert.NoError(t, err)
}
