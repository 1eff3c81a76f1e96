// Package auth keeps the list of known users and the active username.
//
// Passwords are stored and compared as given. Hashing is deliberately out
// of scope for this application.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cuentamia/internal/core"
	"cuentamia/internal/gateway"
	"cuentamia/internal/log"
)

// MinPasswordLength applies to password changes.
const MinPasswordLength = 4

var (
	ErrUserExists         = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnknownUser        = errors.New("unknown user")
	ErrWeakPassword       = fmt.Errorf("password must be at least %d characters", MinPasswordLength)
)

// Directory reads and writes the global user records through a gateway.
type Directory struct {
	gw     *gateway.Gateway
	logger *log.Logger
}

func NewDirectory(gw *gateway.Gateway, logger *log.Logger) *Directory {
	if logger == nil {
		logger = log.Discard()
	}
	return &Directory{
		gw:     gw,
		logger: logger.WithComponent(log.ComponentAuth),
	}
}

// Users returns every registered user.
func (d *Directory) Users(ctx context.Context) []core.User {
	return gateway.Load(ctx, d.gw, d.gw.GlobalKey(gateway.UsersKey), []core.User{})
}

// Exists reports whether username is registered.
func (d *Directory) Exists(ctx context.Context, username string) bool {
	_, ok := find(d.Users(ctx), username)
	return ok
}

// Register adds a user. It does not log the user in.
func (d *Directory) Register(ctx context.Context, username, password string) error {
	u := core.User{Username: strings.TrimSpace(username), Password: password}
	if err := u.Validate(); err != nil {
		return err
	}

	users := d.Users(ctx)
	if _, ok := find(users, u.Username); ok {
		return ErrUserExists
	}

	d.gw.Save(ctx, d.gw.GlobalKey(gateway.UsersKey), append(users, u))
	d.logger.InfoContext(ctx, "User registered", log.FieldUser, u.Username)
	return nil
}

// Login checks the credentials and makes username the active user.
func (d *Directory) Login(ctx context.Context, username, password string) error {
	u, ok := find(d.Users(ctx), strings.TrimSpace(username))
	if !ok || u.Password != password {
		d.logger.WarnContext(ctx, "Login rejected",
			log.FieldUser, username,
			log.FieldErrorType, log.ErrorTypeAuth)
		return ErrInvalidCredentials
	}

	d.setCurrent(ctx, u.Username)
	d.logger.InfoContext(ctx, "User logged in", log.FieldUser, u.Username)
	return nil
}

// Switch makes an existing user active without asking for a password.
func (d *Directory) Switch(ctx context.Context, username string) error {
	if !d.Exists(ctx, username) {
		return fmt.Errorf("%w: %s", ErrUnknownUser, username)
	}
	d.setCurrent(ctx, username)
	d.logger.InfoContext(ctx, "Switched user", log.FieldUser, username)
	return nil
}

// Logout clears the active user.
func (d *Directory) Logout(ctx context.Context) {
	d.gw.Remove(ctx, d.gw.GlobalKey(gateway.CurrentUserKey))
}

// Current returns the active username, if any.
func (d *Directory) Current(ctx context.Context) (string, bool) {
	name := gateway.Load(ctx, d.gw, d.gw.GlobalKey(gateway.CurrentUserKey), "")
	return name, name != ""
}

// ChangePassword replaces the password of an existing user.
func (d *Directory) ChangePassword(ctx context.Context, username, password string) error {
	if len(password) < MinPasswordLength {
		return ErrWeakPassword
	}

	users := d.Users(ctx)
	i, ok := index(users, username)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownUser, username)
	}
	users[i].Password = password
	d.gw.Save(ctx, d.gw.GlobalKey(gateway.UsersKey), users)
	return nil
}

// Delete removes a user together with every collection stored for them.
// If the user was active, nobody is logged in afterwards.
func (d *Directory) Delete(ctx context.Context, username string) error {
	users := d.Users(ctx)
	i, ok := index(users, username)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownUser, username)
	}

	d.gw.Save(ctx, d.gw.GlobalKey(gateway.UsersKey), append(users[:i:i], users[i+1:]...))
	for _, c := range gateway.AllCollections() {
		d.gw.Remove(ctx, d.gw.NamespacedKey(username, c))
	}
	if current, _ := d.Current(ctx); current == username {
		d.Logout(ctx)
	}

	d.logger.InfoContext(ctx, "User deleted", log.FieldUser, username)
	return nil
}

func (d *Directory) setCurrent(ctx context.Context, username string) {
	d.gw.Save(ctx, d.gw.GlobalKey(gateway.CurrentUserKey), username)
}

func find(users []core.User, username string) (core.User, bool) {
	if i, ok := index(users, username); ok {
		return users[i], true
	}
	return core.User{}, false
}

func index(users []core.User, username string) (int, bool) {
	for i, u := range users {
		if u.Username == username {
			return i, true
		}
	}
	return -1, false
}
