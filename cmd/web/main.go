package main

import (
	_ "embed"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/tomz197/spacedodge/internal/config"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
)

//go:embed index.html
var htmlPage string

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Warn("Failed to load .env", "err", err)
	}

	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	sshHost := config.GetEnv("SSH_DISPLAY_HOST", "your-server.com")
	page := strings.ReplaceAll(htmlPage, "{{.SSHHost}}", sshHost)

	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, page)
	})

	addr := net.JoinHostPort(host, port)
	log.Info("Starting web server", "url", "http://"+addr)
	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Fatal("Server error", "err", err)
	}
}
