package errors

import "regexp"

// nameRegex matches valid node names: a letter or underscore followed by
// letters, digits, or underscores.
var nameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// reservedNames are script keywords that cannot name a node.
var reservedNames = map[string]bool{
	"input": true,
}

// ValidateName validates a node name. The script parser produces conforming
// names by construction; this guards the places where names arrive raw, such
// as --set flags and programmatic lookups.
//
// The rules match the script grammar:
//   - Not empty, at most 64 characters
//   - A letter or underscore followed by letters, digits, or underscores
//   - Not a script keyword
func ValidateName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "name cannot be empty")
	}

	if len(name) > 64 {
		return New(ErrCodeInvalidName, "name too long (max 64 characters)")
	}

	if !nameRegex.MatchString(name) {
		return New(ErrCodeInvalidName, "invalid name: %q", name)
	}

	if reservedNames[name] {
		return New(ErrCodeInvalidName, "%q is a reserved word", name)
	}

	return nil
}
