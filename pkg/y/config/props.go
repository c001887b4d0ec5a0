package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Error is a configuration error. It names the offending key and the value
// that was rejected. Configuration errors are fatal and never retried.
type Error struct {
	Key    string
	Value  string
	Reason string
}

func (e *Error) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("config: %s: %s", e.Key, e.Reason)
	}
	return fmt.Sprintf("config: %s=%s: %s", e.Key, e.Value, e.Reason)
}

// Errorf builds an *Error for key holding value.
func Errorf(key string, value any, format string, args ...any) *Error {
	return &Error{
		Key:    key,
		Value:  fmt.Sprint(value),
		Reason: fmt.Sprintf(format, args...),
	}
}

// IsConfigError reports whether err is, or wraps, a configuration error.
func IsConfigError(err error) bool {
	var ce *Error
	return errors.As(err, &ce)
}

// Props is a flat set of named settings. Generators read their settings
// under a key prefix, e.g. "datagen_startbyte".
type Props map[string]string

func (p Props) Contains(key string) bool {
	_, ok := p[key]
	return ok
}

func (p Props) GetString(key string) (string, error) {
	v, ok := p[key]
	if !ok {
		return "", &Error{Key: key, Reason: "missing"}
	}
	return strings.TrimSpace(v), nil
}

func (p Props) GetInt(key string) (int, error) {
	s, err := p.GetString(key)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, Errorf(key, s, "expected integer")
	}
	return v, nil
}

func (p Props) GetInt64(key string) (int64, error) {
	s, err := p.GetString(key)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, Errorf(key, s, "expected integer")
	}
	return v, nil
}

func (p Props) GetFloat(key string) (float64, error) {
	s, err := p.GetString(key)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, Errorf(key, s, "expected number")
	}
	return v, nil
}

func (p Props) GetDuration(key string) (time.Duration, error) {
	s, err := p.GetString(key)
	if err != nil {
		return 0, err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return 0, Errorf(key, s, "expected duration")
	}
	return v, nil
}

// IntOr returns def when key is absent. A present but malformed value is
// still an error.
func (p Props) IntOr(key string, def int) (int, error) {
	if !p.Contains(key) {
		return def, nil
	}
	return p.GetInt(key)
}

func (p Props) Int64Or(key string, def int64) (int64, error) {
	if !p.Contains(key) {
		return def, nil
	}
	return p.GetInt64(key)
}

func (p Props) DurationOr(key string, def time.Duration) (time.Duration, error) {
	if !p.Contains(key) {
		return def, nil
	}
	return p.GetDuration(key)
}

func (p Props) StringOr(key string, def string) string {
	if !p.Contains(key) {
		return def
	}
	return strings.TrimSpace(p[key])
}
