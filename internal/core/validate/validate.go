// Package validate holds the pure input-validation helpers shared by the
// booking and campground endpoints. Nothing here performs I/O.
package validate

import (
	"errors"
	"regexp"
	"strconv"
)

// Mode selects how Pagination treats present-but-invalid parameters.
type Mode int

const (
	// Strict rejects invalid page/limit values with ErrBadPagination.
	// Caller-facing endpoints use this so a bad request gets a 400 instead
	// of silently reading a different page than asked for.
	Strict Mode = iota
	// Lenient falls back to the defaults {page: 1, limit: 5}. Kept for
	// internal call sites that predate strict rejection.
	Lenient
)

const (
	DefaultPage  = 1
	DefaultLimit = 5
	MaxLimit     = 100
)

// ErrBadPagination is returned by Pagination in Strict mode.
var ErrBadPagination = errors.New("invalid pagination parameters")

// Page is a validated pagination window.
type Page struct {
	Page  int
	Limit int
}

// Offset returns the number of documents to skip for this window.
func (p Page) Offset() int { return (p.Page - 1) * p.Limit }

// Pagination parses raw page/limit query values. Absent values take the
// defaults in both modes. A present value that is non-numeric, page < 1,
// limit < 1 or limit > 100 yields ErrBadPagination in Strict mode and the
// defaults in Lenient mode.
func Pagination(rawPage, rawLimit string, mode Mode) (Page, error) {
	p := Page{Page: DefaultPage, Limit: DefaultLimit}

	if rawPage != "" {
		n, err := strconv.Atoi(rawPage)
		if err != nil || n < 1 {
			if mode == Strict {
				return Page{}, ErrBadPagination
			}
			return Page{Page: DefaultPage, Limit: DefaultLimit}, nil
		}
		p.Page = n
	}

	if rawLimit != "" {
		n, err := strconv.Atoi(rawLimit)
		if err != nil || n < 1 || n > MaxLimit {
			if mode == Strict {
				return Page{}, ErrBadPagination
			}
			return Page{Page: DefaultPage, Limit: DefaultLimit}, nil
		}
		p.Limit = n
	}

	return p, nil
}

var (
	objectIDRe = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)
	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// ObjectID reports whether s is a 24-character hexadecimal identifier.
func ObjectID(s string) bool { return objectIDRe.MatchString(s) }

// Email reports whether s has a local@domain.tld shape with no whitespace.
func Email(s string) bool { return emailRe.MatchString(s) }

// Password reports whether s meets the minimum length of 6.
func Password(s string) bool { return len(s) >= 6 }

// Registration checks a registration payload. Checks run in fixed order and
// the first failure wins: required fields, then email format, then password
// strength.
func Registration(username, email, password, telephone string) error {
	if username == "" || email == "" || password == "" || telephone == "" {
		return errors.New("All fields are required")
	}
	if !Email(email) {
		return errors.New("Invalid email format")
	}
	if !Password(password) {
		return errors.New("Password must be at least 6 characters long")
	}
	return nil
}

// Login checks a login payload. Password strength is only enforced at
// registration, not here.
func Login(email, password string) error {
	if email == "" || password == "" {
		return errors.New("Email and password are required")
	}
	if !Email(email) {
		return errors.New("Invalid email format")
	}
	return nil
}
