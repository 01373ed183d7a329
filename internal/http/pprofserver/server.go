package pprofserver

import (
	"crypto/subtle"
	"net"
	"net/http"
	"net/http/pprof"
	"strings"
)

// Config stores pprof endpoint settings. Empty credentials mean the
// endpoints are reachable from loopback only.
type Config struct {
	User string
	Pass string
}

var profiles = []string{
	"heap", "goroutine", "allocs", "block", "mutex", "threadcreate",
}

// Handler returns the pprof handlers guarded by Guard. Mounted on the
// main router under /debug/pprof/*.
func Handler(cfg Config) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	for _, name := range profiles {
		mux.Handle("/debug/pprof/"+name, pprof.Handler(name))
	}
	return Guard(cfg, mux)
}

// Guard admits loopback callers unconditionally and everyone else via
// basic auth against cfg.
func Guard(cfg Config, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isLoopback(r.RemoteAddr) || allowed(cfg, r) {
			next.ServeHTTP(w, r)
			return
		}
		w.Header().Set("WWW-Authenticate", `Basic realm="pprof"`)
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	})
}

func allowed(cfg Config, r *http.Request) bool {
	if cfg.User == "" || cfg.Pass == "" {
		return false
	}
	u, p, ok := r.BasicAuth()
	return ok && secureEq(u, cfg.User) && secureEq(p, cfg.Pass)
}

func secureEq(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

func isLoopback(remoteAddr string) bool {
	host := remoteAddr
	if h, _, err := net.SplitHostPort(remoteAddr); err == nil {
		host = h
	}
	host = strings.TrimSpace(host)

	ip := net.ParseIP(host)
	if ip == nil {
		return false
	}
	return ip.IsLoopback()
}
