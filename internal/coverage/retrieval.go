package coverage

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/avatar-generator/covconv/internal/logging"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var (
	// ErrNotFound is returned when there is no coverage data at the requested location.
	ErrNotFound = errors.New("coverage data not found")

	timeout            = time.Second * 30
	retryMax           = 3
	r        retriever = &defaultRetriever{}
	logger             = logging.AppLogger().WithFields(log.Fields{"component": "coverage"})
)

type retriever interface {
	getRawEntries(location string) ([]byte, error)
}

type defaultRetriever struct {
}

func (r *defaultRetriever) getRawEntries(location string) ([]byte, error) {
	if IsRemote(location) {
		return r.getRemote(location)
	}

	data, err := os.ReadFile(location)
	if os.IsNotExist(err) {
		return nil, errors.Wrapf(ErrNotFound, "no file at %s", location)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read %s", location)
	}
	return data, nil
}

func (r *defaultRetriever) getRemote(url string) ([]byte, error) {
	client := retryablehttp.NewClient()
	client.HTTPClient.Timeout = timeout
	client.RetryMax = retryMax
	client.RetryWaitMin = 100 * time.Millisecond
	client.RetryWaitMax = 2 * time.Second
	client.Logger = logger

	response, err := client.Get(url)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to retrieve %s", url)
	}
	defer response.Body.Close()

	if response.StatusCode == http.StatusNotFound {
		return nil, errors.Wrapf(ErrNotFound, "no coverage data at %s", url)
	}
	if response.StatusCode > 299 || response.StatusCode < 200 {
		return nil, errors.New(fmt.Sprintf("Status code: %d, error: %s", response.StatusCode, response.Status))
	}

	data, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read response from %s", url)
	}
	return data, nil
}

// IsRemote returns true if location is an http or https URL rather than a file path.
func IsRemote(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

// RetrieveEntries retrieves the browser coverage entries from the specified location which is either a
// file path or an http(s) URL. ErrNotFound is returned, wrapped, if there is nothing at the location.
func RetrieveEntries(location string) ([]Entry, error) {
	rawEntries, err := r.getRawEntries(location)
	if err != nil {
		return nil, err
	}
	logger.Infof("coverage data size: %.2f KB", float64(len(rawEntries))/1024)

	var entries []Entry
	err = json.Unmarshal(rawEntries, &entries)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to parse coverage data from %s", location)
	}
	return entries, nil
}
