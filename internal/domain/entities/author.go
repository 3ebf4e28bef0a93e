package entities

import (
	"regexp"
	"strings"
)

const (
	DefaultAuthorName  = "Renovate Bot"
	DefaultAuthorEmail = "renovate@localhost"
)

var authorPattern = regexp.MustCompile(`^(.+)\s+<([^<>]+)>$`)

// Author is the identity commits are made with.
type Author struct {
	Name  string
	Email string
}

// DefaultAuthor returns the fixed fallback identity.
func DefaultAuthor() Author {
	return Author{Name: DefaultAuthorName, Email: DefaultAuthorEmail}
}

// String renders the author as "Name <email>".
func (a Author) String() string {
	return a.Name + " <" + a.Email + ">"
}

// ResolveAuthor parses a "Name <email>" string. Anything that does not
// parse cleanly resolves to DefaultAuthor.
func ResolveAuthor(raw string) Author {
	matches := authorPattern.FindStringSubmatch(strings.TrimSpace(raw))
	if matches == nil {
		return DefaultAuthor()
	}

	name := strings.TrimSpace(matches[1])
	email := strings.TrimSpace(matches[2])
	if name == "" || email == "" {
		return DefaultAuthor()
	}
	return Author{Name: name, Email: email}
}
