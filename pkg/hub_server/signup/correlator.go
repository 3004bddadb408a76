package signup

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/codatende/webhookhub/pkg/hub_server/model"
	"github.com/codatende/webhookhub/pkg/util"
)

// SessionEvent is the event of the WA_EMBEDDED_SIGNUP message posted by the Meta signup popup.
type SessionEvent string

const (
	EventFinish            SessionEvent = "FINISH"
	EventFinishBusinessApp SessionEvent = "FINISH_WHATSAPP_BUSINESS_APP_ONBOARDING"
	EventFinishOnlyWABA    SessionEvent = "FINISH_ONLY_WABA"
	EventCancel            SessionEvent = "CANCEL"
)

const (
	DefaultPolls        = 10
	DefaultPollInterval = 300 * time.Millisecond
	DefaultSessionTTL   = 15 * time.Minute
)

type SessionInfo struct {
	Event         SessionEvent `json:"event"`
	PhoneNumberID string       `json:"phone_number_id"`
	WabaID        string       `json:"waba_id"`
	BusinessID    string       `json:"business_id"`
	CurrentStep   string       `json:"current_step"` // Step the user cancelled at.
}

type Session struct {
	ID           string `json:"id"`
	CompanyID    string `json:"company_id"`
	ConnectionID string `json:"connection_id"`
	ExpiresAt    int64  `json:"expires_at"`
}

// Result is a session whose code and info both arrived.
type Result struct {
	Session
	Code string
	Info SessionInfo
}

type session struct {
	Session
	code      string
	info      *SessionInfo
	ready     chan struct{}
	readyOnce sync.Once
}

func (s *session) complete() bool {
	if s.info == nil {
		return false
	}
	return s.info.Event == EventCancel || s.code != ""
}

type CorrelatorOption func(c *Correlator)

func WithPolling(polls uint, interval time.Duration) CorrelatorOption {
	return func(c *Correlator) {
		c.polls = polls
		c.interval = interval
	}
}

func WithSessionTTL(ttl time.Duration) CorrelatorOption {
	return func(c *Correlator) {
		c.ttl = ttl
	}
}

func WithCorrelatorClock(now func() time.Time) CorrelatorOption {
	return func(c *Correlator) {
		c.now = now
	}
}

// Correlator joins the authorization code and the session info of an embedded signup,
// which reach the server through separate requests in no particular order.
type Correlator struct {
	mtx      sync.Mutex
	sessions map[string]*session
	polls    uint
	interval time.Duration
	ttl      time.Duration
	now      func() time.Time
}

func NewCorrelator(opts ...CorrelatorOption) *Correlator {
	c := &Correlator{
		sessions: make(map[string]*session),
		polls:    DefaultPolls,
		interval: DefaultPollInterval,
		ttl:      DefaultSessionTTL,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Correlator) Begin(companyID, connectionID string) (Session, error) {
	if companyID == "" || connectionID == "" {
		return Session{}, fmt.Errorf("company_id and connection_id are required%w", model.ErrInvalidParameter)
	}

	s := &session{
		Session: Session{
			ID:           util.NewID("sgn"),
			CompanyID:    companyID,
			ConnectionID: connectionID,
			ExpiresAt:    c.now().Add(c.ttl).Unix(),
		},
		ready: make(chan struct{}),
	}

	c.mtx.Lock()
	defer c.mtx.Unlock()
	c.sessions[s.ID] = s
	return s.Session, nil
}

func (c *Correlator) Code(companyID, sessionID, code string) error {
	if code == "" {
		return fmt.Errorf("code is required%w", model.ErrInvalidParameter)
	}
	return c.update(companyID, sessionID, func(s *session) {
		s.code = code
	})
}

func (c *Correlator) Info(companyID, sessionID string, info SessionInfo) error {
	switch info.Event {
	case EventFinish, EventFinishBusinessApp:
		if info.WabaID == "" || info.PhoneNumberID == "" {
			return fmt.Errorf("waba_id and phone_number_id are required%w", model.ErrInvalidParameter)
		}
	case EventFinishOnlyWABA:
		if info.WabaID == "" {
			return fmt.Errorf("waba_id is required%w", model.ErrInvalidParameter)
		}
	case EventCancel:
	default:
		return fmt.Errorf("unknown event %q%w", info.Event, model.ErrInvalidParameter)
	}
	return c.update(companyID, sessionID, func(s *session) {
		s.info = &info
	})
}

// Await blocks until both signals of the session arrived, polling a bounded number of times.
// The session is consumed on success and on cancellation.
func (c *Correlator) Await(ctx context.Context, companyID, sessionID string) (Result, error) {
	s, err := c.get(companyID, sessionID)
	if err != nil {
		return Result{}, err
	}

	errPending := errors.New("pending")
	err = retry.Do(
		func() error {
			select {
			case <-s.ready:
				return nil
			case <-ctx.Done():
				return retry.Unrecoverable(ctx.Err())
			case <-time.After(c.interval):
				return errPending
			}
		},
		retry.Attempts(c.polls),
		retry.Delay(0),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
	)
	if errors.Is(err, errPending) {
		return Result{}, model.ErrSignupTimeout
	}
	if err != nil {
		return Result{}, err
	}

	c.mtx.Lock()
	defer c.mtx.Unlock()
	delete(c.sessions, s.ID)
	if s.info.Event == EventCancel {
		return Result{}, model.ErrSignupCancelled
	}
	return Result{Session: s.Session, Code: s.code, Info: *s.info}, nil
}

// Sweep drops the sessions expired at now and returns how many were dropped.
func (c *Correlator) Sweep(now time.Time) int {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	n := 0
	for id, s := range c.sessions {
		if s.ExpiresAt <= now.Unix() {
			delete(c.sessions, id)
			n++
		}
	}
	return n
}

func (c *Correlator) update(companyID, sessionID string, fn func(s *session)) error {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	s, ok := c.sessions[sessionID]
	if !ok || s.CompanyID != companyID || s.ExpiresAt <= c.now().Unix() {
		return model.ErrSignupSessionNotFound
	}
	fn(s)
	if s.complete() {
		s.readyOnce.Do(func() { close(s.ready) })
	}
	return nil
}

func (c *Correlator) get(companyID, sessionID string) (*session, error) {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	s, ok := c.sessions[sessionID]
	if !ok || s.CompanyID != companyID {
		return nil, model.ErrSignupSessionNotFound
	}
	return s, nil
}
