package models

import (
	"fmt"
	"strings"
	"time"
)

// User is a git identity. Empty fields are unknown.
type User struct {
	Name     string `json:"name,omitempty" yaml:"name,omitempty"`
	Email    string `json:"email,omitempty" yaml:"email,omitempty"`
	Username string `json:"username,omitempty" yaml:"username,omitempty"`
}

// Commit is one entry of git log output.
type Commit struct {
	Author  User   `json:"author" yaml:"author"`
	Date    string `json:"date" yaml:"date"`
	Hash    string `json:"hash" yaml:"hash"`
	Message string `json:"message" yaml:"message"`
}

// ShortHash returns the first seven characters of the hash.
func (c Commit) ShortHash() string {
	return c.Hash[:7]
}

// IsMergeCommit reports whether the subject starts with "Merge".
func (c Commit) IsMergeCommit() bool {
	return strings.HasPrefix(c.Message, "Merge")
}

// Time parses Date.
func (c Commit) Time() (time.Time, error) {
	return parseDate(c.Date)
}

// Layouts git emits for %ad / %(creatordate) under the common --date modes.
var dateLayouts = []string{
	"Mon Jan 2 15:04:05 2006 -0700",
	"2006-01-02 15:04:05 -0700",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
