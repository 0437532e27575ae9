package coverage

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// WriteFile writes the report as JSON to path, creating the parent directory if needed.
// The file is replaced in a single rename so readers never observe a partial report.
func (r Report) WriteFile(path string) error {
	if r == nil {
		r = Report{}
	}
	data, err := json.Marshal(r)
	if err != nil {
		return errors.Wrap(err, "unable to serialize coverage report")
	}

	dir := filepath.Dir(path)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, "unable to create directory %s", dir)
		}
		logger.Infof("created directory: %s", dir)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Wrapf(err, "unable to create temporary file in %s", dir)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "unable to set permissions on %s", tmp.Name())
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "unable to write %s", tmp.Name())
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "unable to close %s", tmp.Name())
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrapf(err, "unable to move report to %s", path)
	}
	return nil
}

// ReadReport reads a report previously written with WriteFile.
func ReadReport(path string) (Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read %s", path)
	}
	report := Report{}
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, errors.Wrapf(err, "unable to parse report %s", path)
	}
	return report, nil
}
