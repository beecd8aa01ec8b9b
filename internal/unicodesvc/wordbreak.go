package unicodesvc

import "unicode"

// IsWordChar classifies r the way the literal match engine's word-bounded
// mode needs: letters, digits, and underscore count as "inside a word",
// everything else is a boundary. golang.org/x/text ships no public
// ICU-style word BreakIterator, so this simplified letter/digit/
// underscore-vs-other classifier stands in for it (see DESIGN.md).
func IsWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// WordBoundaryBefore reports whether a word boundary falls between runes
// before and after (either may be an out-of-range sentinel rune; callers
// pass -1 to mean "no rune", i.e. start/end of subject).
func WordBoundaryBefore(before, after rune) bool {
	return IsWordChar(before) != IsWordChar(after)
}
