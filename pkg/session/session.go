package session

import "time"

// State tracks how the current request obtained its session. It is never
// persisted; its only consumer is the CSRF-skip decision.
type State uint8

const (
	// StateNew marks a session created during the current request.
	StateNew State = iota
	// StateResumed marks a session loaded from the store.
	StateResumed
)

// Session is the record persisted per token. Timestamps are unix seconds to
// match the backing table's integer columns.
type Session struct {
	Token     string         `json:"token"`
	UserID    string         `json:"user_id,omitempty"`
	Created   int64          `json:"created"`
	Updated   int64          `json:"updated"`
	Idle      int            `json:"idle"`
	Data      map[string]any `json:"data,omitempty"`
	ClientIP  string         `json:"ip_address,omitempty"`
	UserAgent string         `json:"user_agent,omitempty"`

	// State and Federated are per-request flags, never stored.
	State     State `json:"-"`
	Federated bool  `json:"-"`

	// ephemeral marks a degraded session that must not be persisted or
	// echoed back via cookie (set when the backend is unreachable).
	ephemeral bool
}

// NewSession builds a fresh record with created == updated == now.
func NewSession(token, clientIP, userAgent string, idle int) *Session {
	now := time.Now().Unix()
	return &Session{
		Token:     token,
		Created:   now,
		Updated:   now,
		Idle:      idle,
		Data:      make(map[string]any),
		ClientIP:  clientIP,
		UserAgent: userAgent,
		State:     StateNew,
	}
}

// IsAuthenticated reports whether a user is bound to the session.
func (s *Session) IsAuthenticated() bool {
	return s != nil && s.UserID != ""
}

// IsExpired reports whether the idle timeout has elapsed since the last save.
func (s *Session) IsExpired() bool {
	return s != nil && time.Now().Unix() > s.Updated+int64(s.Idle)
}

// Touch bumps Updated to now. Updated never moves backwards, even if the
// wall clock does.
func (s *Session) Touch() {
	if s == nil {
		return
	}
	if now := time.Now().Unix(); now > s.Updated {
		s.Updated = now
	}
}

// Get retrieves a value from session data.
func (s *Session) Get(key string) (any, bool) {
	if s == nil || s.Data == nil {
		return nil, false
	}
	val, ok := s.Data[key]
	return val, ok
}

// GetString retrieves a string value from session data.
func (s *Session) GetString(key string) (string, bool) {
	val, ok := s.Get(key)
	if !ok {
		return "", false
	}
	str, ok := val.(string)
	return str, ok
}

// GetInt retrieves an int value from session data. JSON round-trips store
// numbers as float64, so both forms are accepted.
func (s *Session) GetInt(key string) (int, bool) {
	val, ok := s.Get(key)
	if !ok {
		return 0, false
	}
	switch v := val.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

// GetBool retrieves a bool value from session data.
func (s *Session) GetBool(key string) (bool, bool) {
	val, ok := s.Get(key)
	if !ok {
		return false, false
	}
	b, ok := val.(bool)
	return b, ok
}

// Set stores a value in session data.
func (s *Session) Set(key string, value any) {
	if s == nil {
		return
	}
	if s.Data == nil {
		s.Data = make(map[string]any)
	}
	s.Data[key] = value
}

// Delete removes a value from session data.
func (s *Session) Delete(key string) {
	if s == nil || s.Data == nil {
		return
	}
	delete(s.Data, key)
}

// Clear removes all data from the session.
func (s *Session) Clear() {
	if s == nil {
		return
	}
	s.Data = make(map[string]any)
}

// csrfSecret returns the anti-forgery secret bound to this session, if any.
func (s *Session) csrfSecret() string {
	v, _ := s.GetString(csrfDataKey)
	return v
}
