// Package pass keeps token material in the standard unix password
// manager when it is installed. Secret refs like
// "keycloak://session/oauth_tokens" become entries under the gpc/
// folder of the password store, so they sit next to the user's other
// secrets instead of in a state file.
package pass

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/radwane-khemisse/gestion-de-produits-et-commandes/internal/domain"
	"github.com/radwane-khemisse/gestion-de-produits-et-commandes/internal/ports"
)

var ErrUnavailable = errors.New("pass command unavailable")

const entryFolder = "gpc"

type passRunner func(ctx context.Context, stdin string, args ...string) (stdout string, stderr string, err error)

type Store struct {
	run passRunner
}

var _ ports.SecretStore = (*Store)(nil)

func NewStore() *Store {
	return &Store{run: execPass}
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, stderr, err := s.run(ctx, value+"\n", "insert", "-m", "-f", entryName(key))
	if err != nil {
		return entryError("store", key, err, stderr)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	stdout, stderr, err := s.run(ctx, "", "show", entryName(key))
	if err != nil {
		if strings.Contains(stderr, "is not in the password store") {
			return "", domain.ErrSecretNotFound
		}
		return "", entryError("read", key, err, stderr)
	}

	stdout = strings.TrimSuffix(stdout, "\n")
	stdout = strings.TrimSuffix(stdout, "\r")
	return stdout, nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, stderr, err := s.run(ctx, "", "rm", "-f", entryName(key))
	if err != nil {
		// Removing an entry that was never stored is a no-op, like
		// the file backend.
		if strings.Contains(stderr, "is not in the password store") {
			return nil
		}
		return entryError("remove", key, err, stderr)
	}
	return nil
}

// entryName maps a "provider://path" secret ref to a password-store
// entry under the gpc/ folder, so the ref scheme never leaks into the
// store layout.
func entryName(key string) string {
	name := key
	if i := strings.Index(name, "://"); i >= 0 {
		name = name[i+len("://"):]
	}
	name = strings.Trim(name, "/")
	if name == "" {
		name = "secret"
	}
	return entryFolder + "/" + name
}

func execPass(ctx context.Context, stdin string, args ...string) (string, string, error) {
	path, err := exec.LookPath("pass")
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", "", ErrUnavailable
		}
		return "", "", fmt.Errorf("locate pass command: %w", err)
	}

	cmd := exec.CommandContext(ctx, path, args...)
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	return stdout.String(), strings.TrimSpace(stderr.String()), err
}

func entryError(op string, key string, err error, stderr string) error {
	if stderr == "" {
		return fmt.Errorf("pass: %s entry for %q: %w", op, key, err)
	}
	return fmt.Errorf("pass: %s entry for %q: %w (%s)", op, key, err, stderr)
}
