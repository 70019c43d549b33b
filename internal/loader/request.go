package loader

import (
	"fmt"
	"net/url"
	"strings"
)

// Param is one query parameter. Value is raw; it is escaped by Target.
type Param struct {
	Name  string
	Value string
}

// Request identifies one remote resource: an endpoint plus ordered query
// parameters. It is immutable once built.
type Request struct {
	endpoint string
	params   []Param
}

// NewRequest copies params so later changes to the caller's slice are not seen.
func NewRequest(endpoint string, params ...Param) Request {
	return Request{
		endpoint: endpoint,
		params:   append([]Param(nil), params...),
	}
}

func (r Request) Endpoint() string {
	return r.endpoint
}

// Target joins the endpoint with the percent-encoded parameters.
func (r Request) Target() (string, error) {
	u, err := url.Parse(r.endpoint)
	if err != nil {
		return "", fmt.Errorf("parse endpoint %q: %w", r.endpoint, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("endpoint %q: unsupported scheme %q", r.endpoint, u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("endpoint %q: missing host", r.endpoint)
	}
	if u.RawQuery != "" || u.ForceQuery || u.Fragment != "" {
		return "", fmt.Errorf("endpoint %q: query and fragment belong in params", r.endpoint)
	}

	var b strings.Builder
	b.WriteString(r.endpoint)
	for i, p := range r.params {
		if p.Name == "" {
			return "", fmt.Errorf("param %d: empty name", i)
		}
		if i == 0 {
			b.WriteByte('?')
		} else {
			b.WriteByte('&')
		}
		b.WriteString(escape(p.Name))
		b.WriteByte('=')
		b.WriteString(escape(p.Value))
	}
	return b.String(), nil
}

// escape percent-encodes s for a query component. QueryEscape already turns
// a literal '+' into %2B, so every remaining '+' came from a space.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func (r Request) String() string {
	if t, err := r.Target(); err == nil {
		return t
	}
	return r.endpoint
}
