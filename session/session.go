// Package session is the console's single source of truth for who is logged in. The Store keeps
// the credentials in persistent client storage and in memory, and keeps the route guard's cookie
// mirror in step with them.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/jrsteele09/billing-console/browser"
	cerrors "github.com/jrsteele09/billing-console/internal/errors"
	"github.com/jrsteele09/billing-console/storage"
	"github.com/jrsteele09/billing-console/users"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultCookieName is the cookie the route guard reads.
const DefaultCookieName = "auth_token"

type Session struct {
	AccessToken  string
	RefreshToken string
	User         *users.User
}

// IsAuthenticated requires both an access token and a user; the refresh token does not matter.
func (s Session) IsAuthenticated() bool {
	return s.AccessToken != "" && s.User != nil
}

// State is what subscribers observe.
type State struct {
	Session       Session
	Loading       bool
	Authenticated bool
}

// LoginResponse is the body of a successful POST /api/auth/login.
type LoginResponse struct {
	AccessToken  string          `json:"access-token"`
	RefreshToken string          `json:"refresh-token"`
	User         json.RawMessage `json:"user"`
}

// AuthAPI is the backend side of login and logout.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*LoginResponse, error)
	Logout(ctx context.Context, refreshToken string) error
}

type Store struct {
	storage    storage.Store
	api        AuthAPI
	logger     zerolog.Logger
	cookieName string

	mu      sync.RWMutex
	session Session
	loading bool

	subMu   sync.Mutex
	subs    map[int]func(State)
	nextSub int
}

// Option defines a function type to modify the Store instance.
type Option func(*Store)

func WithLogger(logger zerolog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithCookieName changes the name of the access token cookie mirror.
func WithCookieName(name string) Option {
	return func(s *Store) {
		s.cookieName = name
	}
}

// NewStore returns a Store in the loading state; call Initialize to restore persisted
// credentials.
func NewStore(store storage.Store, api AuthAPI, options ...Option) (*Store, error) {
	if store == nil {
		return nil, errors.New("[session NewStore] storage is required")
	}
	if api == nil {
		return nil, errors.New("[session NewStore] auth api is required")
	}
	s := &Store{
		storage:    store,
		api:        api,
		logger:     log.Logger,
		cookieName: DefaultCookieName,
		loading:    true,
		subs:       make(map[int]func(State)),
	}
	for _, opt := range options {
		opt(s)
	}
	return s, nil
}

// Initialize restores the session from storage. A user record that does not decode, or storage
// that cannot be read, discards all three stored values and leaves the session empty. It never
// fails and never restores part of a corrupt session.
func (s *Store) Initialize(ctx context.Context) {
	restored, err := s.restore(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("session: discarding persisted session")
		if err := s.storage.Remove(context.WithoutCancel(ctx), storage.SessionKeys...); err != nil {
			s.logger.Err(err).Msg("session: failed to clear persisted session")
		}
		restored = Session{}
	}

	s.mu.Lock()
	s.session = restored
	s.loading = false
	state := s.stateLocked()
	s.mu.Unlock()

	s.notify(state)
}

func (s *Store) restore(ctx context.Context) (Session, error) {
	token, _, err := s.storage.Get(ctx, storage.KeyAccessToken)
	if err != nil {
		return Session{}, cerrors.Wrapf(err, "[session Initialize] read access token")
	}
	refresh, _, err := s.storage.Get(ctx, storage.KeyRefreshToken)
	if err != nil {
		return Session{}, cerrors.Wrapf(err, "[session Initialize] read refresh token")
	}
	rawUser, ok, err := s.storage.Get(ctx, storage.KeyUser)
	if err != nil {
		return Session{}, cerrors.Wrapf(err, "[session Initialize] read user")
	}

	restored := Session{AccessToken: token, RefreshToken: refresh}
	if ok {
		user, err := decodeUser([]byte(rawUser))
		if err != nil {
			return Session{}, fmt.Errorf("[session Initialize] %w: %v", cerrors.ErrCorruptSession, err)
		}
		restored.User = user
	}
	return restored, nil
}

// Login authenticates with the backend and, on success, persists the access token, refresh
// token and user record, updates the in-memory session and mirrors the access token into the
// cookie of the window on ctx. On failure nothing local changes and the error is returned as
// received.
func (s *Store) Login(ctx context.Context, email, password string) error {
	resp, err := s.api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	if resp == nil || resp.AccessToken == "" {
		return loginFailed(nil, nil)
	}
	user, err := decodeUser(resp.User)
	if err != nil {
		return loginFailed(nil, nil)
	}

	if err := s.persist(ctx, resp); err != nil {
		return err
	}

	s.mu.Lock()
	s.session = Session{AccessToken: resp.AccessToken, RefreshToken: resp.RefreshToken, User: user}
	state := s.stateLocked()
	s.mu.Unlock()

	// Storage and the cookie mirror are written together so the route guard lets the operator
	// through on the very next request.
	if w, ok := browser.FromContext(ctx); ok && w.Cookies != nil {
		w.Cookies.Set(s.cookieName, resp.AccessToken)
	}

	s.logger.Info().Str("user_id", user.ID).Str("assembly_id", user.AssemblyID).Msg("session: logged in")
	s.notify(state)
	return nil
}

// persist writes the three login values. When any write fails the previous values are put
// back, so storage never holds a token from one login and a user from another.
func (s *Store) persist(ctx context.Context, resp *LoginResponse) error {
	previous, err := s.readKeys(ctx)
	if err != nil {
		return cerrors.Wrapf(err, "[session Login] read previous session")
	}

	if err := s.write(ctx, resp); err != nil {
		if restoreErr := s.restoreKeys(context.WithoutCancel(ctx), previous); restoreErr != nil {
			s.logger.Err(restoreErr).Msg("session: failed to restore previous session after a failed login")
		}
		return err
	}
	return nil
}

func (s *Store) write(ctx context.Context, resp *LoginResponse) error {
	if err := s.storage.Set(ctx, storage.KeyAccessToken, resp.AccessToken); err != nil {
		return cerrors.Wrapf(err, "[session Login] store access token")
	}
	if resp.RefreshToken != "" {
		if err := s.storage.Set(ctx, storage.KeyRefreshToken, resp.RefreshToken); err != nil {
			return cerrors.Wrapf(err, "[session Login] store refresh token")
		}
	} else if err := s.storage.Remove(ctx, storage.KeyRefreshToken); err != nil {
		return cerrors.Wrapf(err, "[session Login] remove refresh token")
	}
	if err := s.storage.Set(ctx, storage.KeyUser, string(resp.User)); err != nil {
		return cerrors.Wrapf(err, "[session Login] store user")
	}
	return nil
}

// readKeys returns the stored session values; absent keys are left out of the map.
func (s *Store) readKeys(ctx context.Context) (map[string]string, error) {
	values := make(map[string]string, len(storage.SessionKeys))
	for _, key := range storage.SessionKeys {
		v, ok, err := s.storage.Get(ctx, key)
		if err != nil {
			return nil, err
		}
		if ok {
			values[key] = v
		}
	}
	return values, nil
}

func (s *Store) restoreKeys(ctx context.Context, values map[string]string) error {
	var errs []error
	for _, key := range storage.SessionKeys {
		v, ok := values[key]
		if !ok {
			if err := s.storage.Remove(ctx, key); err != nil {
				errs = append(errs, err)
			}
			continue
		}
		if err := s.storage.Set(ctx, key, v); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Logout invalidates the refresh token on the backend when there is one, then always clears
// storage, memory and the cookie mirror. Backend failures are logged and otherwise ignored.
func (s *Store) Logout(ctx context.Context) {
	refresh := s.refreshToken(ctx)
	if refresh != "" {
		if err := s.api.Logout(ctx, refresh); err != nil {
			s.logger.Warn().Err(err).Msg("session: backend logout failed, clearing local session anyway")
		}
	}

	if err := s.storage.Remove(context.WithoutCancel(ctx), storage.SessionKeys...); err != nil {
		s.logger.Err(err).Msg("session: failed to clear persisted session")
	}

	s.mu.Lock()
	s.session = Session{}
	state := s.stateLocked()
	s.mu.Unlock()

	// Cleared together with storage, see Login.
	if w, ok := browser.FromContext(ctx); ok && w.Cookies != nil {
		w.Cookies.Delete(s.cookieName)
	}

	s.logger.Info().Msg("session: logged out")
	s.notify(state)
}

// refreshToken prefers memory and falls back to storage, which still holds the refresh token
// after a 401 cleared the rest of the session.
func (s *Store) refreshToken(ctx context.Context) string {
	s.mu.RLock()
	refresh := s.session.RefreshToken
	s.mu.RUnlock()
	if refresh != "" {
		return refresh
	}
	stored, _, err := s.storage.Get(ctx, storage.KeyRefreshToken)
	if err != nil {
		s.logger.Err(err).Msg("session: failed to read refresh token")
		return ""
	}
	return stored
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.IsAuthenticated()
}

// IsLoading is true until the first Initialize completes.
func (s *Store) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Session returns a copy of the current session.
func (s *Store) Session() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySession(s.session)
}

// State is the current observable state, the same value subscribers receive.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stateLocked()
}

// Subscribe registers fn to be called after every change; the returned func unregisters it.
func (s *Store) Subscribe(fn func(State)) (cancel func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Store) notify(state State) {
	s.subMu.Lock()
	fns := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(state)
	}
}

func (s *Store) stateLocked() State {
	return State{
		Session:       copySession(s.session),
		Loading:       s.loading,
		Authenticated: s.session.IsAuthenticated(),
	}
}

func copySession(in Session) Session {
	out := in
	if in.User != nil {
		u := *in.User
		out.User = &u
	}
	return out
}

// decodeUser accepts only a JSON object.
func decodeUser(raw []byte) (*users.User, error) {
	var user *users.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user record is null")
	}
	return user, nil
}
