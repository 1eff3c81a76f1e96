package session

import (
	"context"
	"time"

	"cuentamia/internal/auth"
	"cuentamia/internal/core"
	"cuentamia/internal/gateway"
	"cuentamia/internal/log"
)

// ManagerOptions configures a Manager.
type ManagerOptions struct {
	// SeedDemoData makes never-saved collections start with sample records
	// instead of empty ones.
	SeedDemoData bool
	Logger       *log.Logger
	Now          func() time.Time
}

// Manager ties the user directory to the open session. At most one session
// is open; every login, switch or logout closes the previous one first.
type Manager struct {
	gw      *gateway.Gateway
	dir     *auth.Directory
	logger  *log.Logger
	opts    ManagerOptions
	current *Session
}

func NewManager(gw *gateway.Gateway, dir *auth.Directory, opts ManagerOptions) *Manager {
	if opts.Logger == nil {
		opts.Logger = log.Discard()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Manager{
		gw:     gw,
		dir:    dir,
		logger: opts.Logger.WithComponent(log.ComponentSession),
		opts:   opts,
	}
}

// Directory exposes the user directory.
func (m *Manager) Directory() *auth.Directory {
	return m.dir
}

// Session returns the open session.
func (m *Manager) Session() (*Session, error) {
	if m.current == nil {
		return nil, ErrNoSession
	}
	return m.current, nil
}

// Restore reopens the session of the persisted active user.
func (m *Manager) Restore(ctx context.Context) (*Session, error) {
	username, ok := m.dir.Current(ctx)
	if !ok {
		return nil, ErrNoSession
	}
	if !m.dir.Exists(ctx, username) {
		m.logger.WarnContext(ctx, "Active user no longer registered", log.FieldUser, username)
		m.dir.Logout(ctx)
		return nil, ErrNoSession
	}
	return m.open(ctx, username)
}

// Register adds a user without logging them in.
func (m *Manager) Register(ctx context.Context, username, password string) error {
	return m.dir.Register(ctx, username, password)
}

// Login authenticates and opens the user's session. On failure the open
// session, if any, is untouched.
func (m *Manager) Login(ctx context.Context, username, password string) (*Session, error) {
	if err := m.dir.Login(ctx, username, password); err != nil {
		return nil, err
	}
	return m.open(ctx, username)
}

// SwitchUser opens the session of another registered user.
func (m *Manager) SwitchUser(ctx context.Context, username string) (*Session, error) {
	if err := m.dir.Switch(ctx, username); err != nil {
		return nil, err
	}
	m.logger.InfoContext(ctx, "Switching user",
		log.FieldOperation, log.OpSwitch,
		log.FieldUser, username)
	return m.open(ctx, username)
}

// Logout closes the session and clears the active user.
func (m *Manager) Logout(ctx context.Context) {
	m.closeCurrent(ctx)
	m.dir.Logout(ctx)
	m.logger.InfoContext(ctx, "Logged out", log.FieldOperation, log.OpLogout)
}

// ChangePassword changes the password of the logged-in user.
func (m *Manager) ChangePassword(ctx context.Context, password string) error {
	s, err := m.Session()
	if err != nil {
		return err
	}
	return m.dir.ChangePassword(ctx, s.User(), password)
}

// DeleteAccount removes the logged-in user and all their data.
func (m *Manager) DeleteAccount(ctx context.Context) error {
	s, err := m.Session()
	if err != nil {
		return err
	}
	username := s.User()
	m.closeCurrent(ctx)
	return m.dir.Delete(ctx, username)
}

// Close closes the open session, keeping the active user for Restore.
func (m *Manager) Close(ctx context.Context) {
	m.closeCurrent(ctx)
}

func (m *Manager) open(ctx context.Context, username string) (*Session, error) {
	m.closeCurrent(ctx)

	s, err := Open(ctx, m.gw, username, Options{
		Defaults: m.defaults(),
		Logger:   m.opts.Logger,
		Now:      m.opts.Now,
	})
	if err != nil {
		return nil, err
	}
	m.current = s
	return s, nil
}

func (m *Manager) closeCurrent(ctx context.Context) {
	if m.current != nil {
		m.current.Close(ctx)
		m.current = nil
	}
}

func (m *Manager) defaults() core.Collections {
	today := core.DateOf(m.opts.Now())
	if m.opts.SeedDemoData {
		return core.DemoCollections(today)
	}
	return core.EmptyCollections(today)
}
