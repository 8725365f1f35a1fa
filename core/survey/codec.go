package survey

import (
	"net/url"
	"strings"
)

// Separator joins the subject and teacher components of a token.
// Components are percent-encoded so that it never occurs inside one of them.
const Separator = "-"

var escapedSeparator = "%2D"

func escapeComponent(s string) string {
	return strings.ReplaceAll(url.PathEscape(s), Separator, escapedSeparator)
}

// EncodeSubjectTeacher builds the token of a subject/teacher pair.
// An empty teacher yields a subject only token (e.g. "School-").
func EncodeSubjectTeacher(subject, teacher string) (string, error) {
	if subject == "" {
		return "", ErrEmptySubject
	}
	return escapeComponent(subject) + Separator + escapeComponent(teacher), nil
}

// EncodeChild builds the token of a child. Plain ids (e.g. numeric ones) are left untouched.
func EncodeChild(childID ID) string {
	return escapeComponent(string(childID))
}

// Decode parses a token built by EncodeSubjectTeacher or EncodeChild.
func Decode(token string) (Selection, error) {
	if token == "" {
		return Selection{}, newDecodeError(token, "empty token")
	}

	parts := strings.Split(token, Separator)
	switch len(parts) {
	case 1:
		childID, err := url.PathUnescape(parts[0])
		if err != nil {
			return Selection{}, newDecodeError(token, "invalid child id escape")
		}
		if isSpace(childID) {
			return Selection{}, newDecodeError(token, "blank child id")
		}
		return Selection{ChildID: ID(childID)}, nil
	case 2:
		subject, err := url.PathUnescape(parts[0])
		if err != nil {
			return Selection{}, newDecodeError(token, "invalid subject escape")
		}
		teacher, err := url.PathUnescape(parts[1])
		if err != nil {
			return Selection{}, newDecodeError(token, "invalid teacher escape")
		}
		if subject == "" {
			return Selection{}, newDecodeError(token, "empty subject")
		}
		return Selection{Subject: subject, Teacher: teacher}, nil
	default:
		return Selection{}, newDecodeError(token, "too many separators")
	}
}
