package linkstore

import (
	"encoding/json"
	"fmt"
	"regexp"
)

// Record is the persisted content of a link file.
type Record struct {
	Path    string `json:"Path"`
	Version string `json:"Version"`
}

// namePattern restricts extension names to values that are safe as a single
// path element.
var namePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// maxNameLength is the maximum allowed length for extension names.
const maxNameLength = 128

// ValidateName checks that name can be used as a link file name.
func ValidateName(name string) error {
	if name == "" || !namePattern.MatchString(name) {
		return fmt.Errorf("%w: %q must start with a letter or digit and contain only letters, digits, '.', '_' or '-'", ErrInvalidName, name)
	}
	if len(name) > maxNameLength {
		return fmt.Errorf("%w: must be %d characters or less, got %d", ErrInvalidName, maxNameLength, len(name))
	}
	return nil
}

func encodeRecord(rec Record) ([]byte, error) {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func decodeRecord(data []byte) (Record, error) {
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, err
	}
	if rec.Path == "" {
		return Record{}, fmt.Errorf("missing Path")
	}
	return rec, nil
}
