package importer

import (
	"fmt"
	"regexp"
	"strings"
)

var documentIDPattern = regexp.MustCompile(`[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`)

// ExtractDocumentID accepts either a bare document identifier or any text
// (typically a URL) containing a UUID, and returns the identifier.
func ExtractDocumentID(input string) (string, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return "", fmt.Errorf("document id is required")
	}
	if m := documentIDPattern.FindString(s); m != "" {
		return strings.ToLower(m), nil
	}
	if strings.ContainsAny(s, " \t\n/?#") {
		return "", fmt.Errorf("no document id found in %q", s)
	}
	return s, nil
}
