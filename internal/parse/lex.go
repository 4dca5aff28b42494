// Package parse contains the low-level helpers used while reading argument lists and
// struct tags.
package parse

import "github.com/google/shlex"

// Split splits a command line into arguments using shell quoting rules
func Split(s string) ([]string, error) {
	args, err := shlex.Split(s)
	if err != nil {
		return nil, err
	}

	return args, nil
}
