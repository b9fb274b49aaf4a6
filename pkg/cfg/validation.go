package cfg

import (
	"fmt"
	"strings"

	"github.com/sitetask/sitetask/internal/fs"
	"github.com/sitetask/sitetask/internal/validation"
)

var forbiddenTaskNameRunes = [...]rune{
	':',
	',',
	'*',
	'#',
}

func validateName(name string) error {
	return validation.StrID(name)
}

func validateTaskName(name string) error {
	if err := validateName(name); err != nil {
		return err
	}

	for _, r := range forbiddenTaskNameRunes {
		if strings.ContainsRune(name, r) {
			return fmt.Errorf("'%c' character not allowed in task name", r)
		}
	}

	return nil
}

func validateGlobs(patterns []string, field string) error {
	for _, p := range patterns {
		if p == "" {
			return newFieldError("empty glob pattern", field)
		}

		if err := fs.ValidGlob(p); err != nil {
			return fieldErrorWrap(fmt.Errorf("%q: %w", p, err), field)
		}
	}

	return nil
}
