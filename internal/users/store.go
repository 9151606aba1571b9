// Package users is the JSON-file identity store behind the login and
// registration endpoints. It is deliberately thin: the review pipeline is
// identity-agnostic and never reads from it.
package users

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

var ErrExists = errors.New("username already exists")

type User struct {
	Username string         `json:"username"`
	Password string         `json:"password"`
	Data     map[string]any `json:"data"`
}

type document struct {
	Users []User `json:"users"`
}

type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) load() (document, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return document{Users: []User{}}, nil
	}
	if err != nil {
		return document{}, fmt.Errorf("read users file: %w", err)
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return document{}, fmt.Errorf("parse users file: %w", err)
	}
	return doc, nil
}

func (s *Store) save(doc document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode users file: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write users file: %w", err)
	}
	return nil
}

// Authenticate matches the username case-insensitively and the password
// exactly.
func (s *Store) Authenticate(username, password string) (bool, error) {
	doc, err := s.load()
	if err != nil {
		return false, err
	}
	for _, u := range doc.Users {
		if strings.EqualFold(u.Username, username) && u.Password == password {
			return true, nil
		}
	}
	return false, nil
}

// Register adds a new user; ErrExists if the username is taken.
func (s *Store) Register(username, password string) error {
	doc, err := s.load()
	if err != nil {
		return err
	}
	for _, u := range doc.Users {
		if u.Username == username {
			return ErrExists
		}
	}
	doc.Users = append(doc.Users, User{Username: username, Password: password, Data: map[string]any{}})
	return s.save(doc)
}
