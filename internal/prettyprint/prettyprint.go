// Package prettyprint formats values for human readers.
package prettyprint

import (
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// AsTOML returns in encoded as TOML. If in can not be encoded, its %+v
// representation is returned.
func AsTOML(in any) string {
	res, err := toml.Marshal(in)
	if err != nil {
		return fmt.Sprintf("%+v", in)
	}

	return string(res)
}

// TruncatedStrSlice returns sl as string, joined by ", ".
// If sl has more then maxElems, only the first maxElems elements and a
// truncation marker are returned.
func TruncatedStrSlice(sl []string, maxElems int) string {
	if len(sl) <= maxElems {
		return strings.Join(sl, ", ")
	}

	return strings.Join(sl[:maxElems], ", ") + ", [...]"
}
