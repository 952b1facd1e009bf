package ca

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"net"
	"time"

	"github.com/pkg/errors"
)

const (
	caValidity     = 10 * 365 * 24 * time.Hour
	serverValidity = 365 * 24 * time.Hour
)

func newSerialNumber() (*big.Int, error) {
	limit := new(big.Int).Lsh(big.NewInt(1), 128)
	serial, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate serial number")
	}
	return serial, nil
}

// splitHosts separates IP addresses from DNS names. Loopback is always
// included so the console is reachable locally.
func splitHosts(hosts []string) ([]string, []net.IP) {
	var dnsNames []string
	ips := []net.IP{net.ParseIP("127.0.0.1")}
	for _, host := range hosts {
		if ip := net.ParseIP(host); ip != nil {
			if !ip.Equal(ips[0]) {
				ips = append(ips, ip)
			}
			continue
		}
		dnsNames = append(dnsNames, host)
	}
	return dnsNames, ips
}

// CreateTLSCA creates a self-signed CA used to issue the console's serving
// certificate.
func CreateTLSCA(subject pkix.Name) (*x509.Certificate, *ecdsa.PrivateKey, error) {
	serial, err := newSerialNumber()
	if err != nil {
		return nil, nil, err
	}
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to generate CA key")
	}
	now := time.Now()
	tmpl := &x509.Certificate{
		SerialNumber:          serial,
		Subject:               subject,
		NotBefore:             now.AddDate(0, 0, -1),
		NotAfter:              now.Add(caValidity),
		IsCA:                  true,
		KeyUsage:              x509.KeyUsageDigitalSignature | x509.KeyUsageCertSign | x509.KeyUsageCRLSign,
		BasicConstraintsValid: true,
		SubjectKeyId:          computeSKI(key),
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to sign CA certificate")
	}
	crt, err := x509.ParseCertificate(der)
	if err != nil {
		return nil, nil, err
	}
	return crt, key, nil
}

// IssueServerCert signs a serving certificate for hosts with the given CA.
func IssueServerCert(caCrt *x509.Certificate, caKey *ecdsa.PrivateKey, hosts []string, subject pkix.Name) (*x509.Certificate, *ecdsa.PrivateKey, error) {
	serial, err := newSerialNumber()
	if err != nil {
		return nil, nil, err
	}
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to generate server key")
	}
	dnsNames, ips := splitHosts(hosts)
	now := time.Now()
	tmpl := &x509.Certificate{
		SerialNumber:   serial,
		Subject:        subject,
		NotBefore:      now.AddDate(0, 0, -1),
		NotAfter:       now.Add(serverValidity),
		KeyUsage:       x509.KeyUsageDigitalSignature | x509.KeyUsageKeyEncipherment,
		ExtKeyUsage:    []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		DNSNames:       dnsNames,
		IPAddresses:    ips,
		SubjectKeyId:   computeSKI(key),
		AuthorityKeyId: caCrt.SubjectKeyId,
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, caCrt, &key.PublicKey, caKey)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to sign server certificate")
	}
	crt, err := x509.ParseCertificate(der)
	if err != nil {
		return nil, nil, err
	}
	return crt, key, nil
}

// SelfSignedTLSConfig creates a CA and a serving certificate for hosts and
// returns a server TLS config along with the CA, so clients can trust it.
func SelfSignedTLSConfig(hosts []string) (*tls.Config, *x509.Certificate, error) {
	caCrt, caKey, err := CreateTLSCA(pkix.Name{
		Organization: []string{"hlf-console"},
		CommonName:   "hlf-console-ca",
	})
	if err != nil {
		return nil, nil, err
	}
	crt, key, err := IssueServerCert(caCrt, caKey, hosts, pkix.Name{
		Organization: []string{"hlf-console"},
		CommonName:   "hlf-console",
	})
	if err != nil {
		return nil, nil, err
	}
	return &tls.Config{
		MinVersion: tls.VersionTLS12,
		Certificates: []tls.Certificate{{
			Certificate: [][]byte{crt.Raw, caCrt.Raw},
			PrivateKey:  key,
			Leaf:        crt,
		}},
	}, caCrt, nil
}

func EncodeCertificate(crt *x509.Certificate) []byte {
	return pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: crt.Raw})
}

func EncodePrivateKey(key *ecdsa.PrivateKey) ([]byte, error) {
	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal private key")
	}
	return pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}), nil
}

// compute Subject Key Identifier
func computeSKI(privKey *ecdsa.PrivateKey) []byte {
	raw := elliptic.Marshal(privKey.Curve, privKey.PublicKey.X, privKey.PublicKey.Y)
	hash := sha256.Sum256(raw)
	return hash[:]
}
