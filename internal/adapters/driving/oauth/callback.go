// Package oauth provides the local redirect receiver and browser utilities
// for the cloud authorisation flow. After the user approves access in the
// browser, the provider redirects to this server with the credential bundle
// in the query string; the raw URL is handed to the setup service untouched.
package oauth

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os/exec"
	"runtime"
	"sync"
	"time"
)

// CallbackServer receives the post-authorisation redirect on localhost.
type CallbackServer struct {
	mu       sync.Mutex
	port     int
	urlChan  chan string
	server   *http.Server
	listener net.Listener
}

// NewCallbackServer creates a redirect receiver. A port of 0 picks a free
// one at Start time.
func NewCallbackServer(port int) *CallbackServer {
	return &CallbackServer{
		port:    port,
		urlChan: make(chan string, 1),
	}
}

// Start begins listening on 127.0.0.1.
func (s *CallbackServer) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	mux := http.NewServeMux()
	mux.HandleFunc("/setup", s.handleRedirect)

	s.server = &http.Server{
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	addr := fmt.Sprintf("127.0.0.1:%d", s.port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.listener = listener

	if tcpAddr, ok := listener.Addr().(*net.TCPAddr); ok {
		s.port = tcpAddr.Port
	}

	go func() {
		// Shutdown returns ErrServerClosed here; real failures surface to
		// the waiter as a timeout.
		_ = s.server.Serve(listener)
	}()

	return nil
}

// handleRedirect captures the full redirect URL. Parsing and validation
// belong to the setup service; a malformed redirect still completes the
// HTTP exchange so the browser does not hang.
func (s *CallbackServer) handleRedirect(w http.ResponseWriter, r *http.Request) {
	raw := s.RedirectURI()
	if r.URL.RawQuery != "" {
		raw += "?" + r.URL.RawQuery
	}

	select {
	case s.urlChan <- raw:
	default:
	}

	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, resultHTML("Authorization received", "You can close this window and return to the terminal."))
}

// WaitForRedirect blocks until a redirect arrives or the timeout elapses.
func (s *CallbackServer) WaitForRedirect(timeout time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	select {
	case raw := <-s.urlChan:
		return raw, nil
	case <-ctx.Done():
		return "", fmt.Errorf("timeout waiting for authorization redirect")
	}
}

// Stop shuts down the server.
func (s *CallbackServer) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.server.Shutdown(ctx)
	}
	return nil
}

// Port returns the port the server is listening on.
func (s *CallbackServer) Port() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.port
}

// RedirectURI returns the URI the provider should redirect to.
func (s *CallbackServer) RedirectURI() string {
	return fmt.Sprintf("http://localhost:%d/setup", s.Port())
}

func resultHTML(title, message string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <title>Bitbucket Integration</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            display: flex;
            justify-content: center;
            align-items: center;
            height: 100vh;
            margin: 0;
            background: #FAFAFA;
        }
        .container {
            text-align: center;
            background: white;
            padding: 48px 64px;
            border-radius: 16px;
            border: 1px solid #C7C8CC;
            box-shadow: 0 4px 24px rgba(0,0,0,0.08);
        }
        h1 {
            color: #333F50;
            margin: 0 0 8px 0;
            font-size: 24px;
            font-weight: 600;
        }
        p {
            color: #7B8088;
            margin: 0;
            font-size: 16px;
        }
    </style>
</head>
<body>
    <div class="container">
        <h1>%s</h1>
        <p>%s</p>
    </div>
</body>
</html>`, title, message)
}

// OpenBrowser opens the default browser to the given URL.
func OpenBrowser(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}

// FindAvailablePort finds an available port in the given range.
func FindAvailablePort(startPort, endPort int) (int, error) {
	for port := startPort; port <= endPort; port++ {
		addr := fmt.Sprintf("127.0.0.1:%d", port)
		listener, err := net.Listen("tcp", addr)
		if err == nil {
			listener.Close()
			return port, nil
		}
	}
	return 0, fmt.Errorf("no available port in range %d-%d", startPort, endPort)
}
