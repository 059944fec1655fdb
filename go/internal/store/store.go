package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mcdev12/rosterbot/go/internal/models"
)

const (
	teamsFile   = "teams.json"
	historyFile = "trade_history.json"
)

// Store persists the team registry and trade history as whole JSON documents
// under a single data directory. There is no caching: every load re-parses the
// file and every save rewrites it completely. Writes go through a temp file and
// rename so a reader in the same process never observes a partial document.
type Store struct {
	dir string
}

// New creates a store rooted at dir.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Bootstrap creates the data directory and an empty teams document on first run.
func (s *Store) Bootstrap() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return &Error{Op: "bootstrap", Err: err}
	}
	path := filepath.Join(s.dir, teamsFile)
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := s.writeDocument(teamsFile, map[string]*models.Team{}); err != nil {
			return err
		}
	}
	return nil
}

// LoadTeams returns the full team registry keyed by team name. A missing
// document is first-run state, not an error.
func (s *Store) LoadTeams(ctx context.Context) (map[string]*models.Team, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	teams := make(map[string]*models.Team)
	if err := s.readDocument(teamsFile, &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

// SaveTeams overwrites the whole team document.
func (s *Store) SaveTeams(ctx context.Context, teams map[string]*models.Team) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.writeDocument(teamsFile, teams)
}

// LoadHistory returns the full trade history. A missing document yields an
// empty history.
func (s *Store) LoadHistory(ctx context.Context) (models.TradeHistory, error) {
	if err := ctx.Err(); err != nil {
		return models.TradeHistory{}, err
	}
	var history models.TradeHistory
	if err := s.readDocument(historyFile, &history); err != nil {
		return models.TradeHistory{}, err
	}
	return history, nil
}

// SaveHistory overwrites the whole history document.
func (s *Store) SaveHistory(ctx context.Context, history models.TradeHistory) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.writeDocument(historyFile, history)
}

func (s *Store) readDocument(name string, v interface{}) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return &Error{Op: "read " + name, Err: err}
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &Error{Op: "parse " + name, Err: err}
	}
	return nil
}

func (s *Store) writeDocument(name string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return &Error{Op: "encode " + name, Err: err}
	}

	tmp, err := os.CreateTemp(s.dir, "."+name+".tmp-*")
	if err != nil {
		return &Error{Op: "write " + name, Err: err}
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &Error{Op: "write " + name, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &Error{Op: "write " + name, Err: err}
	}
	if err := os.Rename(tmpName, filepath.Join(s.dir, name)); err != nil {
		os.Remove(tmpName)
		return &Error{Op: "write " + name, Err: err}
	}
	return nil
}

// Error wraps a persistence failure. Validation errors never produce one; a
// store error means durable storage itself is unreachable or corrupt.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
