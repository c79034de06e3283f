package cli

import "fmt"

// panelError carries the user-facing message the panel set for a failed
// operation, e.g. "Failed to create project"
type panelError struct {
	message string
	cause   error
}

func (e panelError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e panelError) Unwrap() error {
	return e.cause
}

type blankNameError struct {
	kind string
}

func (e blankNameError) Error() string {
	return fmt.Sprintf("%s name must not be blank", e.kind)
}

func errBlankName(kind string) error {
	return blankNameError{kind: kind}
}

type notFoundError struct {
	kind string
	id   string
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.kind, e.id)
}

func errNotFound(kind, id string) error {
	return notFoundError{kind: kind, id: id}
}

type unknownThemeError struct {
	name string
}

func (e unknownThemeError) Error() string {
	return fmt.Sprintf("unknown theme: %s", e.name)
}

func errUnknownTheme(name string) error {
	return unknownThemeError{name: name}
}
