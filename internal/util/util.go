package util

import (
	"runtime"
	"strings"
	"time"

	"github.com/cenkalti/backoff"
)

var timeout = 60 * time.Second

// Contains checks whether the specified string is contained in the given string slice.
// Returns true if it does, false otherwise
func Contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// HasAnySuffix checks whether s ends with one of the given suffixes.
func HasAnySuffix(s string, suffixes ...string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(s, suffix) {
			return true
		}
	}
	return false
}

// NameOfFunction returns the unqualified name of the function identified by the given program counter,
// e.g. 'Level' for 'github.com/avatar-generator/covconv/internal/config.(*EnvConfig).Level'.
func NameOfFunction(pc uintptr) string {
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return ""
	}
	name := fn.Name()
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// ApplyWithBackoff tries to apply the specified function using an exponential backoff algorithm.
// If the function eventually succeed nil is returned, otherwise the error returned by f.
func ApplyWithBackoff(f func() error) error {
	return ApplyWithBackoffTimeout(f, timeout)
}

// ApplyWithBackoffTimeout is ApplyWithBackoff with an explicit upper bound on the total time spent retrying.
func ApplyWithBackoffTimeout(f func() error, maxElapsed time.Duration) error {
	exponentialBackOff := backoff.NewExponentialBackOff()
	exponentialBackOff.MaxElapsedTime = maxElapsed
	exponentialBackOff.Reset()
	return backoff.Retry(f, exponentialBackOff)
}
