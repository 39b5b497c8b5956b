package ast

import "fmt"

// enumNames maps enum values to their text form; index is the value.
type enumNames []string

func (n enumNames) name(v uint8) string {
	if int(v) < len(n) {
		return n[v]
	}
	return fmt.Sprintf("<%d>", v)
}

func (n enumNames) parse(text []byte, what string) (uint8, error) {
	s := string(text)
	for i, name := range n {
		if name == s {
			return uint8(i), nil
		}
	}
	return 0, fmt.Errorf("unknown %s %q", what, s)
}
