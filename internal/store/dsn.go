package store

import (
	"fmt"
	"net/url"
	"strings"
)

// BuildDSN composes the gorm connection string from the hosted store's
// endpoint URL and access key. The endpoint may be a full postgres:// URL
// (with or without credentials) or a bare host[:port]/dbname; the access key
// becomes the password when the URL does not already carry one.
func BuildDSN(endpoint, accessKey string) (string, error) {
	s := strings.Trim(strings.TrimSpace(endpoint), "\"'")
	if s == "" {
		return "", fmt.Errorf("store endpoint is empty")
	}
	lower := strings.ToLower(s)
	if !strings.HasPrefix(lower, "postgres://") && !strings.HasPrefix(lower, "postgresql://") {
		s = "postgres://" + s
	}
	u, err := url.Parse(s)
	if err != nil {
		return "", fmt.Errorf("invalid store endpoint %q: %w", endpoint, err)
	}
	if u.Host == "" {
		return "", fmt.Errorf("store endpoint %q has no host", endpoint)
	}
	user := "postgres"
	if u.User != nil && u.User.Username() != "" {
		user = u.User.Username()
	}
	if _, hasPass := passwordOf(u); !hasPass {
		u.User = url.UserPassword(user, accessKey)
	}
	if strings.Trim(u.Path, "/") == "" {
		u.Path = "/postgres"
	}
	q := u.Query()
	if q.Get("sslmode") == "" {
		q.Set("sslmode", "require")
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func passwordOf(u *url.URL) (string, bool) {
	if u.User == nil {
		return "", false
	}
	return u.User.Password()
}

// Redact masks the password portion of a DSN for log output.
func Redact(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil || u.User == nil {
		return dsn
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "xxxxx")
	}
	return u.String()
}
