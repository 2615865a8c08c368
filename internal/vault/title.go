package vault

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DocumentExt is the extension of files treated as documents.
const DocumentExt = ".md"

// BreadcrumbSeparator joins the segments returned by FormatLocation.
const BreadcrumbSeparator = " > "

var wordSeparators = strings.NewReplacer("-", " ", "_", " ")

// IsDocument reports whether a file name denotes a markdown document.
func IsDocument(name string) bool {
	return strings.HasSuffix(name, DocumentExt)
}

// FormatTitle turns a file or directory name into a display title:
// "my-notes-file.md" becomes "My Notes File".
func FormatTitle(name string) string {
	name = strings.TrimSuffix(name, DocumentExt)
	words := strings.Fields(wordSeparators.Replace(name))
	for i, word := range words {
		words[i] = capitalize(word)
	}
	return strings.Join(words, " ")
}

// FormatLocation turns a location into a breadcrumb:
// "/work/project-a/notes.md" becomes "Work > Project A > Notes".
func FormatLocation(location string) string {
	var parts []string
	for _, segment := range strings.Split(location, "/") {
		if segment == "" {
			continue
		}
		if title := FormatTitle(segment); title != "" {
			parts = append(parts, title)
		}
	}
	return strings.Join(parts, BreadcrumbSeparator)
}

// capitalize upper-cases the first letter of word and lower-cases the rest.
func capitalize(word string) string {
	first, size := utf8.DecodeRuneInString(word)
	if first == utf8.RuneError {
		return word
	}
	return string(unicode.ToUpper(first)) + strings.ToLower(word[size:])
}
