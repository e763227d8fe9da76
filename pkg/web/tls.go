package web

import (
	"crypto/tls"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
)

// CertReloader serves a TLS certificate that can be swapped at runtime.
type CertReloader struct {
	mu       sync.RWMutex
	cert     *tls.Certificate
	certPath string
	keyPath  string
	logger   *log.Logger
}

// NewCertReloader loads the key pair and, where supported, reloads it
// whenever the process receives SIGHUP.
func NewCertReloader(certPath, keyPath string, logger *log.Logger) (*CertReloader, error) {
	cr := &CertReloader{
		certPath: certPath,
		keyPath:  keyPath,
		logger:   logger,
	}
	if err := cr.Reload(); err != nil {
		return nil, err
	}
	cr.watch()
	return cr, nil
}

// Reload reads the key pair from disk. The current certificate is kept when
// loading fails.
func (cr *CertReloader) Reload() error {
	cert, err := tls.LoadX509KeyPair(cr.certPath, cr.keyPath)
	if err != nil {
		return fmt.Errorf("load key pair: %w", err)
	}

	cr.mu.Lock()
	defer cr.mu.Unlock()
	cr.cert = &cert
	return nil
}

// GetCertificateFunc returns a function for tls.Config.GetCertificate.
func (cr *CertReloader) GetCertificateFunc() func(*tls.ClientHelloInfo) (*tls.Certificate, error) {
	return func(*tls.ClientHelloInfo) (*tls.Certificate, error) {
		cr.mu.RLock()
		defer cr.mu.RUnlock()
		return cr.cert, nil
	}
}
