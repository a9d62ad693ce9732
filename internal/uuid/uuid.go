// Package uuid provides id generation and validation for stored records.
package uuid

import (
	"fmt"
	"regexp"

	"github.com/google/uuid"
)

// UUID v4 format: xxxxxxxx-xxxx-4xxx-yxxx-xxxxxxxxxxxx
// where y is one of [8, 9, a, b] (variant bits)
var uuidV4Regex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-4[0-9a-fA-F]{3}-[89abAB][0-9a-fA-F]{3}-[0-9a-fA-F]{12}$`)

// New generates a new record id. Ids are UUID v4: uniqueness across the
// process lifetime and across concurrent callers is a hard contract, since
// an id collision would silently overwrite an unrelated record.
func New() string {
	return uuid.New().String()
}

// IsValid checks if a string is a valid record id.
func IsValid(s string) bool {
	return uuidV4Regex.MatchString(s)
}

// Validate returns an error if the string is not a valid record id.
func Validate(s string) error {
	if !IsValid(s) {
		return fmt.Errorf("invalid id format: %q", s)
	}
	return nil
}
