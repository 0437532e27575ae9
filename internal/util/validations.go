package util

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// IsNotEmpty checks if value stored at given key is empty.
// if it is empty it returns an error.
func IsNotEmpty(value interface{}, key string) error {
	s, ok := value.(string)
	if !ok {
		return errors.New(fmt.Sprintf("Value for %s needs to be a string.", key))
	}

	if len(s) == 0 {
		return errors.New(fmt.Sprintf("Value for %s cannot be empty.", key))
	}
	return nil

}

// IsInt checks if values stored at a given key is an int.
func IsInt(value interface{}, key string) error {
	_, err := strconv.Atoi(value.(string))
	if err != nil {
		return errors.New(fmt.Sprintf("Value for %s needs to be an integer.", key))
	}
	return nil
}

// IsBool checks if value stored at a given key is a bool.
func IsBool(value interface{}, key string) error {
	_, err := strconv.ParseBool(value.(string))
	if err != nil {
		return errors.New(fmt.Sprintf("Value for %s needs to be an bool.", key))
	}
	return nil
}

// IsDuration checks if value stored at a given key parses as a time.Duration, e.g. '30s'.
func IsDuration(value interface{}, key string) error {
	_, err := time.ParseDuration(value.(string))
	if err != nil {
		return errors.New(fmt.Sprintf("Value for %s needs to be a duration.", key))
	}
	return nil
}

// IsHTTPURL checks if value stored at a given key is an absolute http or https URL.
func IsHTTPURL(value interface{}, key string) error {
	u, err := url.Parse(value.(string))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.New(fmt.Sprintf("Value for %s needs to be an http(s) URL.", key))
	}
	return nil
}
