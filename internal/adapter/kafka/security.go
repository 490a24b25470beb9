package kafka

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"os"

	"github.com/IBM/sarama"
	"github.com/lovoo/goka"
	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/twmb/franz-go/pkg/sasl/plain"
)

// Security holds the optional broker TLS and SASL/PLAIN settings. The zero
// value connects in plaintext.
type Security struct {
	TLS  *tls.Config
	User string
	Pass string
}

// NewSecurity loads the TLS files when all three are set. An empty user
// disables SASL.
func NewSecurity(ca, cert, key, user, pass string) (Security, error) {
	sec := Security{User: user, Pass: pass}
	if ca == "" || cert == "" || key == "" {
		return sec, nil
	}
	tlsConfig, err := MakeTLSConfig(ca, cert, key)
	if err != nil {
		return Security{}, err
	}
	sec.TLS = tlsConfig
	return sec, nil
}

func (s Security) sasl() bool {
	return s.User != ""
}

// ClientOpts returns the franz-go options for s.
func (s Security) ClientOpts() []kgo.Opt {
	var opts []kgo.Opt
	if s.TLS != nil {
		opts = append(opts, kgo.DialTLSConfig(s.TLS))
	}
	if s.sasl() {
		opts = append(opts, kgo.SASL(plain.Auth{User: s.User, Pass: s.Pass}.AsMechanism()))
	}
	return opts
}

// ApplyGokaSecurity installs s into the global goka config. It must run
// before any processor or view is built.
func ApplyGokaSecurity(s Security) {
	if s.TLS == nil && !s.sasl() {
		return
	}
	cfg := goka.DefaultConfig()
	if s.TLS != nil {
		cfg.Net.TLS.Enable = true
		cfg.Net.TLS.Config = s.TLS
	}
	if s.sasl() {
		cfg.Net.SASL.Enable = true
		cfg.Net.SASL.Mechanism = sarama.SASLTypePlaintext
		cfg.Net.SASL.User = s.User
		cfg.Net.SASL.Password = s.Pass
	}
	goka.ReplaceGlobalConfig(cfg)
}

// MakeTLSConfig builds a mutual TLS config from PEM files.
func MakeTLSConfig(ca, cert, key string) (*tls.Config, error) {
	const op = "kafka.MakeTLSConfig"

	caCert, err := os.ReadFile(ca)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read CA certificate file: %w", op, err)
	}

	caCertPool := x509.NewCertPool()
	if !caCertPool.AppendCertsFromPEM(caCert) {
		return nil, fmt.Errorf("%s: %w", op, errors.New("failed to parse CA certificate"))
	}

	clientCert, err := tls.LoadX509KeyPair(cert, key)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &tls.Config{
		RootCAs:      caCertPool,
		Certificates: []tls.Certificate{clientCert},
		MinVersion:   tls.VersionTLS12,
	}, nil
}
