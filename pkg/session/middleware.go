package session

import "net/http"

// Middleware wires the two lifecycle hooks into a standard net/http chain.
// OnRequest runs before the handler; OnResponseHeaders runs when the handler
// writes its first byte (or returns without writing), so the session and CSRF
// cookies always land before the headers flush.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r, ok := m.OnRequest(w, r)
		if !ok {
			return
		}

		sw := &hookWriter{ResponseWriter: w, m: m, r: r}
		next.ServeHTTP(sw, r)
		sw.emit()
	})
}

// hookWriter intercepts the first write to run the response-phase hook while
// headers are still mutable.
type hookWriter struct {
	http.ResponseWriter
	m       *Manager
	r       *http.Request
	emitted bool
}

func (w *hookWriter) WriteHeader(code int) {
	w.emit()
	w.ResponseWriter.WriteHeader(code)
}

func (w *hookWriter) Write(b []byte) (int, error) {
	w.emit()
	return w.ResponseWriter.Write(b)
}

// Unwrap supports http.ResponseController.
func (w *hookWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

func (w *hookWriter) emit() {
	if w.emitted {
		return
	}
	w.emitted = true
	w.m.OnResponseHeaders(w.r.Context(), w.ResponseWriter)
}
