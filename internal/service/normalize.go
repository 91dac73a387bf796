package service

import (
	"errors"
	"net/url"
	"strings"
)

// parsePrice turns the literal price text into a non-negative amount with
// exactly two fraction digits, rounding the third digit half-up. The math
// runs on integer cents so "1.005" lands on 1.01, not the 1.00 a float64
// round would give.
func parsePrice(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, errors.New("price is required")
	}
	if strings.HasPrefix(s, "-") {
		return 0, errors.New("price must be at least 0")
	}
	s = strings.TrimPrefix(s, "+")

	intPart, fracPart, _ := strings.Cut(s, ".")
	if intPart == "" && fracPart == "" {
		return 0, errors.New("price must be a number")
	}
	if !digitsOnly(intPart) || !digitsOnly(fracPart) {
		return 0, errors.New("price must be a number")
	}

	var cents int64
	for _, r := range intPart {
		cents = cents*10 + int64(r-'0')
		if cents > 1<<46 {
			return 0, errors.New("price is too large")
		}
	}
	cents *= 100

	if len(fracPart) > 0 {
		cents += int64(fracPart[0]-'0') * 10
	}
	if len(fracPart) > 1 {
		cents += int64(fracPart[1] - '0')
	}
	if len(fracPart) > 2 && fracPart[2] >= '5' {
		cents++
	}

	return float64(cents) / 100, nil
}

func digitsOnly(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// normalizeImageURL validates an image reference and strips query and
// fragment decoration. Empty input means "no image" and maps to nil; a
// malformed or non-http(s) URL is rejected.
func normalizeImageURL(raw string) (*string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, nil
	}

	u, err := url.Parse(s)
	if err != nil {
		return nil, errors.New("invalid image URL format")
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, errors.New("invalid image URL format")
	}

	u.RawQuery = ""
	u.Fragment = ""
	u.RawFragment = ""

	out := u.String()
	return &out, nil
}
