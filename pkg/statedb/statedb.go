package statedb

// Package statedb persists small bits of client state between runs: the
// currently selected session and a history of completed saves. (The browser
// original kept the current session in localStorage.)

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cyclopcam/dbh"
	"github.com/cyclopcam/logs"
	"gorm.io/gorm"
)

type StateDB struct {
	Log logs.Log
	DB  *gorm.DB
}

func NewStateDB(logger logs.Log, dbFilename string) (*StateDB, error) {
	os.MkdirAll(filepath.Dir(dbFilename), 0777)
	db, err := dbh.OpenDB(logger, dbh.MakeSqliteConfig(dbFilename), Migrations(logger), 0)
	if err != nil {
		return nil, fmt.Errorf("Failed to open database %v: %w", dbFilename, err)
	}
	return &StateDB{
		Log: logger,
		DB:  db,
	}, nil
}

// DefaultFilename is where the state DB lives unless overridden.
func DefaultFilename() string {
	home, _ := os.UserHomeDir()
	if home == "" {
		home = "."
	}
	return filepath.Join(home, ".annotator", "state.sqlite")
}

// CurrentSession returns the last selected session name, or "default" if
// none has been stored yet.
func (s *StateDB) CurrentSession() (string, error) {
	v := Variable{}
	err := s.DB.First(&v, "key = ?", VarCurrentSession).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "default", nil
	} else if err != nil {
		return "", err
	}
	return v.Value, nil
}

func (s *StateDB) SetCurrentSession(name string) error {
	return s.setVariable(VarCurrentSession, name)
}

func (s *StateDB) setVariable(key VariableKey, value string) error {
	return s.DB.Exec("INSERT INTO variable (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		string(key), value).Error
}

// AddSaveRecord appends one completed save to the history.
func (s *StateDB) AddSaveRecord(rec *SaveRecord) error {
	return s.DB.Create(rec).Error
}

// RecentSaves returns the newest saves first, at most limit of them.
func (s *StateDB) RecentSaves(limit int) ([]SaveRecord, error) {
	recs := []SaveRecord{}
	if err := s.DB.Order("id DESC").Limit(limit).Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}
