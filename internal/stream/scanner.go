// Package stream turns the orchestration loop's incremental output feed
// into discrete typed events: visible tokens, hidden reasoning blocks, tool
// lifecycle events, and the final suggestions block.
package stream

import "strings"

// Segment is one classified piece of scanned text. Hidden segments are
// whole reasoning blocks; visible segments are token text.
type Segment struct {
	Hidden bool
	Text   string
}

// Scanner splits an incremental text stream on an inline start/end marker
// pair. Markers may straddle fragment boundaries: the scanner holds back
// the longest buffer suffix that is a prefix of the pending marker, so no
// fragment of a marker ever leaks as visible text.
type Scanner struct {
	start  string
	end    string
	buf    string
	hidden bool
	acc    strings.Builder
}

// NewScanner returns a Scanner for the given marker pair.
func NewScanner(start, end string) *Scanner {
	return &Scanner{start: start, end: end}
}

// Write feeds one fragment and returns the segments it completed. A hidden
// segment is only returned once its end marker has been seen; its text
// accumulates across fragments until then.
func (s *Scanner) Write(fragment string) []Segment {
	s.buf += fragment

	var out []Segment
	for {
		marker := s.start
		if s.hidden {
			marker = s.end
		}

		idx := strings.Index(s.buf, marker)
		if idx < 0 {
			hold := overlap(s.buf, marker)
			emit := s.buf[:len(s.buf)-hold]
			s.buf = s.buf[len(s.buf)-hold:]
			if emit != "" {
				if s.hidden {
					s.acc.WriteString(emit)
				} else {
					out = append(out, Segment{Text: emit})
				}
			}
			return out
		}

		pre := s.buf[:idx]
		s.buf = s.buf[idx+len(marker):]
		if s.hidden {
			s.acc.WriteString(pre)
			out = append(out, Segment{Hidden: true, Text: s.acc.String()})
			s.acc.Reset()
		} else if pre != "" {
			out = append(out, Segment{Text: pre})
		}
		s.hidden = !s.hidden
	}
}

// Flush returns any pending visible text at stream end. An unterminated
// hidden block is discarded: hidden content must never reach the visible
// channel.
func (s *Scanner) Flush() []Segment {
	defer func() {
		s.buf = ""
		s.acc.Reset()
	}()
	if s.hidden || s.buf == "" {
		return nil
	}
	return []Segment{{Text: s.buf}}
}

// overlap returns the length of the longest suffix of buf that is a proper
// prefix of marker.
func overlap(buf, marker string) int {
	max := len(marker) - 1
	if max > len(buf) {
		max = len(buf)
	}
	for l := max; l > 0; l-- {
		if strings.HasSuffix(buf, marker[:l]) {
			return l
		}
	}
	return 0
}
