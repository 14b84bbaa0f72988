// Package links opens the launcher's fixed web pages in the user's browser.
package links

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// MaxURLLength bounds URLs handed to the desktop opener.
const MaxURLLength = 8192

var ErrInvalidURL = errors.New("invalid URL")

// Opener is satisfied by fyne.App.
type Opener interface {
	OpenURL(u *url.URL) error
}

// Validate accepts only absolute http(s) URLs.
func Validate(raw string) (*url.URL, error) {
	if len(raw) > MaxURLLength {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrInvalidURL, len(raw), MaxURLLength)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return nil, fmt.Errorf("%w: scheme must be http or https", ErrInvalidURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: missing host", ErrInvalidURL)
	}
	return u, nil
}

// Open hands raw to the opener. Nothing is done with the result beyond
// reporting a failure to start the browser.
func Open(o Opener, raw string) error {
	u, err := Validate(raw)
	if err != nil {
		return err
	}
	if err := o.OpenURL(u); err != nil {
		return fmt.Errorf("open %s: %w", u, err)
	}
	return nil
}
