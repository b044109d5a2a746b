package gutenberg

import (
	"bytes"
)

const (
	commentOpen     = "<!--"
	commentClose    = "-->"
	openingKeyword  = "wp:"
	closingKeyword  = "/wp:"
	namespaceMarker = '/'
	selfCloseMarker = '/'
)

func isWhiteSpace(c byte) bool {
	return c == ' ' || c == '\n' || c == '\r' || c == '\t'
}

// skipWhiteSpace returns the index of the first non-whitespace byte of src
// at or after pos, or end if there is none.
func skipWhiteSpace(src []byte, pos int, end int) int {
	for pos < end && isWhiteSpace(src[pos]) {
		pos++
	}
	return pos
}

// trimRightWhiteSpace returns the largest end such that src[start:end] does
// not finish with whitespace.
func trimRightWhiteSpace(src []byte, start int, end int) int {
	for end > start && isWhiteSpace(src[end-1]) {
		end--
	}
	return end
}

// readWord splits line at the first whitespace. The rest has its leading
// whitespace removed.
func readWord(line []byte) (word []byte, rest []byte) {
	for i, c := range line {
		if isWhiteSpace(c) {
			rest = line[i:]
			for len(rest) > 0 && isWhiteSpace(rest[0]) {
				rest = rest[1:]
			}
			return line[:i], rest
		}
	}
	return line, nil
}

// isNamePart reports whether part matches [a-z][a-z0-9_-]*.
func isNamePart(part []byte) bool {
	if len(part) == 0 {
		return false
	}
	if part[0] < 'a' || part[0] > 'z' {
		return false
	}
	for _, c := range part[1:] {
		if !isNameByte(c) {
			return false
		}
	}
	return true
}

func isNameByte(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '_' || c == '-'
}

// position returns the 1-based line and column of offset in src.
func position(src []byte, offset int) (line int, column int) {
	if offset > len(src) {
		offset = len(src)
	}
	before := src[:offset]
	line = bytes.Count(before, []byte{'\n'}) + 1
	column = offset - bytes.LastIndexByte(before, '\n')
	return line, column
}
