// Package mailto builds RFC 6068 mailto links.
package mailto

import (
	"fmt"
	"net/mail"
	"net/url"
	"strings"

	"hejazi/internal/domain"
)

// ParseRecipients trims, validates and dedupes a list of bare addresses.
// Display names are rejected so the result can be used verbatim in a link.
func ParseRecipients(raw []string) ([]string, error) {
	out := make([]string, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for _, r := range raw {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		addr, err := mail.ParseAddress(r)
		if err != nil || addr.Name != "" || addr.Address != r {
			return nil, fmt.Errorf("%q: %w", r, domain.ErrInvalidRecipient)
		}
		key := strings.ToLower(addr.Address)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, addr.Address)
	}
	if len(out) == 0 {
		return nil, domain.ErrInvalidRecipient
	}
	return out, nil
}

// Build returns a mailto URI for the recipients with the given subject and
// body. Spaces are encoded as %20 and line breaks as %0D%0A.
func Build(to []string, subject, body string) string {
	addrs := make([]string, len(to))
	for i, a := range to {
		addrs[i] = escape(a, true)
	}

	var b strings.Builder
	b.WriteString("mailto:")
	b.WriteString(strings.Join(addrs, ","))

	sep := "?"
	if subject != "" {
		b.WriteString(sep + "subject=" + escape(subject, false))
		sep = "&"
	}
	if body != "" {
		body = strings.ReplaceAll(body, "\r\n", "\n")
		body = strings.ReplaceAll(body, "\n", "\r\n")
		b.WriteString(sep + "body=" + escape(body, false))
	}
	return b.String()
}

// escape percent-encodes s. QueryEscape turns spaces into '+', which mail
// clients do not decode in mailto headers.
func escape(s string, addr bool) string {
	e := strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
	if addr {
		e = strings.ReplaceAll(e, "%40", "@")
	}
	return e
}
