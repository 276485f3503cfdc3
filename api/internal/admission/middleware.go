package admission

import (
	"net"
	"net/http"
)

type Admitter struct {
	limiter *Limiter
	reject  func(w http.ResponseWriter, r *http.Request, err error)
}

// NewAdmitter wires the limiter with the writer used for rejections.
func NewAdmitter(l *Limiter, reject func(w http.ResponseWriter, r *http.Request, err error)) *Admitter {
	return &Admitter{limiter: l, reject: reject}
}

// Admit runs the authorization check and, only when it passes, the rate check.
func (a *Admitter) Admit(route Route, r *http.Request) error {
	p, ok := Policies[route]
	if !ok {
		// Unknown routes get the strictest treatment.
		p = Policy{Auth: true}
	}
	if p.Auth {
		if err := Authorize(r.Header); err != nil {
			return err
		}
	}
	if p.Exempt || a.limiter == nil {
		return nil
	}
	if !a.limiter.Allow(route, CallerKey(r)) {
		return errRateLimited
	}
	return nil
}

// Guard is the per-route middleware form of Admit.
func (a *Admitter) Guard(route Route) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := a.Admit(route, r); err != nil {
				a.reject(w, r, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// CallerKey is the network address of the caller without its port.
func CallerKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
