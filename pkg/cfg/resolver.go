package cfg

// Resolver is an interface for replacing substrings with a special meaning in strings.
type Resolver interface {
	Resolve(string) (string, error)
}

func resolveStr(resolver Resolver, s *string, field string) error {
	res, err := resolver.Resolve(*s)
	if err != nil {
		return fieldErrorWrap(err, field)
	}

	*s = res

	return nil
}

func resolveSlice(resolver Resolver, s []string, field string) error {
	for i, elem := range s {
		res, err := resolver.Resolve(elem)
		if err != nil {
			return fieldErrorWrap(err, field)
		}

		s[i] = res
	}

	return nil
}
