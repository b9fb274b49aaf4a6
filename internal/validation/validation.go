// Package validation provides checks for user defined identifiers.
package validation

import (
	"errors"
	"fmt"
	"unicode"
)

// StrID ensures that id is not empty, does not contain leading or trailing
// white spaces ([unicode.IsSpace]) and only printable characters
// ([unicode.IsPrint]).
func StrID(id string) error {
	if id == "" {
		return errors.New("can not be empty")
	}

	for pos, r := range id {
		if (pos == 0 || pos == len(id)-1) && unicode.IsSpace(r) {
			return errors.New("contains leading or trailing white spaces")
		}

		if !unicode.IsPrint(r) {
			return fmt.Errorf("contains non-printable character: %+q", r)
		}
	}

	return nil
}
