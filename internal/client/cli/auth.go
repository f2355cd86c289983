package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"mime"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/devlog/internal/client/client"
)

// getSimpleText, getPassword and getMultiline are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
)

// openFile is a test seam for os.Open.
var openFile = func(name string) (io.ReadCloser, int64, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, 0, err
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, err
	}
	return f, st.Size(), nil
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

func (a *App) startSession(s *client.Session) {
	a.session = s
	if err := a.store.Save(s); err != nil {
		log.Printf("session not saved: %v", err)
	}
	a.setMode(ModeOnline)
}

// Register prompts for a name, email and password and creates a new account.
// On success the user is logged in and the session is saved.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	s, err := a.api.Register(ctx, name, email, string(password))
	if err != nil {
		return err
	}

	a.startSession(s)
	fmt.Fprintf(a.out, "Welcome, %s!\n", s.User.Name)
	return nil
}

// Login prompts the user for credentials and authenticates against the server.
// Wrong credentials are reported without returning an error so the REPL
// keeps running.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	s, err := a.api.Login(ctx, email, string(password))
	if err != nil {
		if errors.Is(err, client.ErrUnavailable) {
			a.setMode(ModeOffline)
			return err
		}
		log.Printf("Login unsuccessful: %s", err.Error())
		return nil
	}

	log.Printf("Login successful")
	a.startSession(s)
	return nil
}

// Logout forgets the in-memory session and removes it from the keyring.
func (a *App) Logout(ctx context.Context) error {
	a.session = nil
	if err := a.store.Clear(); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) Me(ctx context.Context) error {
	u, err := a.api.Me(ctx, a.session)
	if err != nil {
		return err
	}
	a.session.User = *u

	fmt.Fprintf(a.out, "%s <%s>\nid: %s\n", u.Name, u.Email, u.ID)
	if u.Avatar != "" {
		fmt.Fprintf(a.out, "avatar: %s\n", u.Avatar)
	}
	return nil
}

// Avatar uploads an image file as the profile picture. The server hands out
// a presigned URL and records the final object URL before the upload.
func (a *App) Avatar(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: avatar <file>")
	}

	r, size, err := openFile(args[0])
	if err != nil {
		return err
	}
	defer r.Close()

	up, err := a.api.RequestAvatarUpload(ctx, a.session)
	if err != nil {
		return err
	}

	contentType := mime.TypeByExtension(filepath.Ext(args[0]))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if err := a.api.UploadAvatar(ctx, up.UploadURL, r, size, contentType); err != nil {
		return err
	}

	a.session.User.Avatar = up.User.Avatar
	fmt.Fprintf(a.out, "Avatar updated: %s\n", up.User.Avatar)
	return nil
}
