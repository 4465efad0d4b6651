package service

import "regexp"

// Shape validation patterns shared by the resource services.
var (
	reEmail   = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)
	rePhone   = regexp.MustCompile(`^\+?[\d -]+$`)
	reURL     = regexp.MustCompile(`https?://(www\.)?[-a-zA-Z0-9@:%._+~#=]{2,256}\.[a-z]{2,6}\b([-a-zA-Z0-9@:%_+.~#?&/=]*)`)
	reCountry = regexp.MustCompile(`^[A-Z]{2,3}$`)
)

// blank reports whether s is unusable as an identifier or name: empty or
// starting with a space.
func blank(s string) bool {
	return len(s) == 0 || s[0] == ' '
}
