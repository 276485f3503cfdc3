package admission_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"text-decoder/api/internal/admission"
	"text-decoder/api/internal/apperr"
)

func newRequest(auth string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/api/v1/analyze/profile", nil)
	r.RemoteAddr = "192.0.2.7:51234"
	if auth != "" {
		r.Header.Set("Authorization", auth)
	}
	return r
}

func TestAuthorize(t *testing.T) {
	for _, h := range []string{"", "InvalidFormat", "Token abc", "Bearer", "Bearer ", "Bearer    ", "bearer abc"} {
		r := newRequest(h)
		err := admission.Authorize(r.Header)
		require.Error(t, err, "header %q", h)
		require.Equal(t, apperr.Unauthorized, apperr.KindOf(err))
	}
	require.NoError(t, admission.Authorize(newRequest("Bearer test-token-12345").Header))
}

func TestAdmit(t *testing.T) {
	t.Run("unauthorized requests do not touch the quota", func(t *testing.T) {
		req := require.New(t)
		l := admission.NewLimiter(admission.Limits{PerMinute: map[admission.Route]int{admission.Profile: 1}}, nil)
		defer l.Stop()
		a := admission.NewAdmitter(l, nil)

		for i := 0; i < 3; i++ {
			req.Equal(apperr.Unauthorized, apperr.KindOf(a.Admit(admission.Profile, newRequest(""))))
		}
		req.NoError(a.Admit(admission.Profile, newRequest("Bearer t")))
		req.Equal(apperr.RateLimited, apperr.KindOf(a.Admit(admission.Profile, newRequest("Bearer t"))))
	})

	t.Run("public routes need no credential", func(t *testing.T) {
		a := admission.NewAdmitter(nil, nil)
		require.NoError(t, a.Admit(admission.Behaviors, newRequest("")))
		require.NoError(t, a.Admit(admission.Health, newRequest("")))
	})

	t.Run("health is never rate limited", func(t *testing.T) {
		l := admission.NewLimiter(admission.Limits{Hourly: 1}, nil)
		defer l.Stop()
		a := admission.NewAdmitter(l, nil)
		for i := 0; i < 5; i++ {
			require.NoError(t, a.Admit(admission.Health, newRequest("")))
		}
	})
}

func TestGuard(t *testing.T) {
	req := require.New(t)
	l := admission.NewLimiter(admission.DefaultLimits(), nil)
	defer l.Stop()

	var rejected []apperr.Kind
	a := admission.NewAdmitter(l, func(w http.ResponseWriter, r *http.Request, err error) {
		rejected = append(rejected, apperr.KindOf(err))
		w.WriteHeader(apperr.Status(apperr.KindOf(err)))
	})
	h := a.Guard(admission.UserDelete)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, newRequest(""))
	req.Equal(http.StatusUnauthorized, rec.Code)

	for i := 0; i < 5; i++ {
		rec = httptest.NewRecorder()
		h.ServeHTTP(rec, newRequest("Bearer t"))
		req.Equal(http.StatusOK, rec.Code, "call %d", i+1)
	}
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, newRequest("Bearer t"))
	req.Equal(http.StatusTooManyRequests, rec.Code)

	req.Equal([]apperr.Kind{apperr.Unauthorized, apperr.RateLimited}, rejected)
}

func TestCallerKey(t *testing.T) {
	r := newRequest("")
	require.Equal(t, "192.0.2.7", admission.CallerKey(r))
	r.RemoteAddr = "unix-socket"
	require.Equal(t, "unix-socket", admission.CallerKey(r))
}
