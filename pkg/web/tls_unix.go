//go:build unix

package web

import (
	"os"
	"os/signal"
	"syscall"
)

func (cr *CertReloader) watch() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGHUP)
	go func() {
		for range sigs {
			cr.logger.Info("reloading TLS certificate", "cert", cr.certPath, "key", cr.keyPath)
			if err := cr.Reload(); err != nil {
				cr.logger.Error("failed to reload TLS certificate, keeping the old one", "err", err)
			}
		}
	}()
}
