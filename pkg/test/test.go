// Package test provides helpers shared by package tests.
package test

import (
	"net"
	"sync"
	"testing"
)

var (
	mu        sync.Mutex
	handedOut = map[string]struct{}{}
)

// ListenAddr returns a free localhost address for a test server. An address
// is never handed out twice within a test binary.
func ListenAddr(tb testing.TB) string {
	tb.Helper()
	mu.Lock()
	defer mu.Unlock()
	for {
		l, err := net.Listen("tcp", "localhost:0")
		if err != nil {
			tb.Fatalf("listen: %v", err)
		}
		addr := l.Addr().String()
		if err := l.Close(); err != nil {
			tb.Fatalf("close listener: %v", err)
		}
		if _, ok := handedOut[addr]; !ok {
			handedOut[addr] = struct{}{}
			return addr
		}
	}
}
