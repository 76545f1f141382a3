package usecase

import (
	"net/url"
	"strings"
	"unicode"
)

// Initials returns up to two upper-case initials for name.
func Initials(name string) string {
	var initials []rune
	for _, word := range strings.FieldsFunc(name, func(r rune) bool {
		return unicode.IsSpace(r) || r == '-' || r == '_' || r == '.'
	}) {
		r := []rune(word)[0]
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		initials = append(initials, unicode.ToUpper(r))
		if len(initials) == 2 {
			break
		}
	}
	return string(initials)
}

// AvatarURL is the initials avatar served by this service for name.
func AvatarURL(baseURL, name string) string {
	return strings.TrimSuffix(baseURL, "/") + "/api/v1/avatars/initials?name=" + url.QueryEscape(name)
}
