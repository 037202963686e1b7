package helper

import (
	"fmt"
	"regexp"
	"strings"
)

var unsafeNameRe = regexp.MustCompile(`[^\w.\- ]+`)

// SanitizeFileName keeps letters, digits, underscore, dot, dash and space;
// everything else collapses to "_". Empty names become "file".
func SanitizeFileName(name string) string {
	safe := unsafeNameRe.ReplaceAllString(strings.TrimSpace(name), "_")
	if safe == "" {
		return "file"
	}
	return safe
}

// MediaObjectKey builds the storage key for a certification media object:
// <id_certification>/<hash>-<sanitized name>. The hash prefix makes the key
// content-addressed, so re-uploading identical bytes hits the same object.
func MediaObjectKey(idCertification, hash, name string) string {
	return fmt.Sprintf("%s/%s-%s", idCertification, hash, SanitizeFileName(name))
}
