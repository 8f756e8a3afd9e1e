// Package digest parses the raw text artifact produced by the external
// ingestion tool into a per-file lookup map.
//
// The digest is a line-oriented framed format:
//
//	digest   := preamble section*
//	section  := MARKER pathline sepline content*
//	MARKER   := a line consisting only of '=' characters
//	pathline := "File: " <path> | <path>
//
// The preamble (everything before the first marker, normally the
// directory tree block) is committed under the synthetic key
// "directory_tree". The separator line after each pathline is skipped
// unconditionally. The final in-progress section is flushed at EOF if a
// key was ever assigned; a digest with no markers at all therefore
// parses to an empty map.
package digest

import (
	"bufio"
	"io"
	"strings"
)

// DirectoryTreeKey is the synthetic lookup key for the digest preamble.
const DirectoryTreeKey = "directory_tree"

// FilePrefix introduces a section path line.
const FilePrefix = "File: "

// minMarkerLen guards against treating short runs of '=' inside file
// content (e.g. comparison operators on their own line) as frame markers.
const minMarkerLen = 8

// IsMarker reports whether a line is a section frame marker.
func IsMarker(line string) bool {
	if len(line) < minMarkerLen {
		return false
	}
	for i := 0; i < len(line); i++ {
		if line[i] != '=' {
			return false
		}
	}
	return true
}

// Parse reads a digest and returns the mapping from file path to raw
// content. The map is empty, never nil, when the input holds no sections.
func Parse(r io.Reader) (map[string]string, error) {
	files := make(map[string]string)

	var (
		path     string
		buf      strings.Builder
		skipNext bool
		wantPath bool
	)

	commit := func() {
		key := path
		if key == "" {
			// Everything before the first marker is the preamble.
			key = DirectoryTreeKey
		}
		files[key] = buf.String()
		buf.Reset()
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for sc.Scan() {
		line := sc.Text()

		if wantPath {
			// Path line for the next section. Tolerate a bare path
			// without the "File: " prefix.
			if rest, ok := strings.CutPrefix(line, FilePrefix); ok {
				path = rest
			} else {
				path = strings.TrimSpace(line)
			}
			wantPath = false
			skipNext = true
			continue
		}

		if skipNext {
			// Separator line after the path line.
			skipNext = false
			continue
		}

		if IsMarker(line) {
			commit()
			wantPath = true
			continue
		}

		if buf.Len() > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	// Flush the trailing unterminated section, but only if a path was
	// ever assigned: input without any marker yields an empty map.
	if path != "" {
		commit()
	}

	return files, nil
}

// ParseString parses a digest held in memory. Mostly useful in tests.
func ParseString(s string) map[string]string {
	files, _ := Parse(strings.NewReader(s)) // string reads cannot fail
	return files
}
