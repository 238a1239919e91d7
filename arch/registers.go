package arch

import "fmt"

// RegisterName returns the name associated with the given register index.
// Returns "" if the index is not recognized.
func RegisterName(n int) string {
	if n < 0 || n > 0xf {
		return ""
	}
	return fmt.Sprintf("V%X", n)
}
