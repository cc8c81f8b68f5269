package convert

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"
	"unicode"
)

// Dialect describes how one line of delimited text is split. It is a
// plain value handed to the row reader; nothing is registered globally.
type Dialect struct {
	// Delimiter separates fields.
	Delimiter rune

	// SkipInitialSpace drops whitespace that follows a delimiter.
	SkipInitialSpace bool
}

// preferredDelimiters break ties when more than one candidate appears.
var preferredDelimiters = []rune{',', '\t', ';', ' ', ':'}

// Sniff infers the Dialect of a single line.
//
// Quoted fields are looked at first: the characters found right next to
// a "..." field vote for the delimiter. Without quotes, the candidates
// are the punctuation and whitespace characters present in the line;
// the first of preferredDelimiters present wins, else the most frequent
// candidate. Letters, digits, underscores, quotes and decimal points
// never delimit, and a sign directly before a digit is only counted
// when the line has no other candidate.
// ErrSniff is returned when the line offers no candidate at all.
func Sniff(line string) (Dialect, error) {
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return Dialect{}, ErrSniff
	}

	delim, ok := guessQuotedDelimiter(line)
	if !ok {
		delim, ok = guessDelimiter(line)
	}
	if !ok {
		return Dialect{}, ErrSniff
	}

	count := strings.Count(line, string(delim))
	spaced := strings.Count(line, string(delim)+" ")
	return Dialect{
		Delimiter:        delim,
		SkipInitialSpace: delim != ' ' && count == spaced,
	}, nil
}

func isDelimiterCandidate(r rune) bool {
	if r == '"' || r == '\'' || r == '_' || r == '.' || r == '\n' || r == '\r' {
		return false
	}
	if r > unicode.MaxASCII || unicode.IsLetter(r) || unicode.IsDigit(r) {
		return false
	}
	return unicode.IsPunct(r) || unicode.IsSymbol(r) || r == ' ' || r == '\t'
}

// guessQuotedDelimiter votes for the characters adjacent to "..." fields.
func guessQuotedDelimiter(line string) (rune, bool) {
	rs := []rune(line)
	votes := map[rune]int{}
	for i := 0; i < len(rs); i++ {
		if rs[i] != '"' {
			continue
		}
		j := i + 1
		for j < len(rs) && rs[j] != '"' {
			j++
		}
		if j >= len(rs) {
			break
		}
		if d, ok := neighbour(rs, i-1, -1); ok {
			votes[d]++
		}
		if d, ok := neighbour(rs, j+1, 1); ok {
			votes[d]++
		}
		i = j
	}
	return pickDelimiter(votes)
}

// neighbour returns the delimiter candidate at rs[k], looking one step
// further in direction step when rs[k] is a single space.
func neighbour(rs []rune, k, step int) (rune, bool) {
	if k < 0 || k >= len(rs) || !isDelimiterCandidate(rs[k]) {
		return 0, false
	}
	if rs[k] == ' ' {
		if n := k + step; n >= 0 && n < len(rs) && rs[n] != ' ' && isDelimiterCandidate(rs[n]) {
			return rs[n], true
		}
	}
	return rs[k], true
}

// guessDelimiter counts candidates outside quotes. A sign before a digit
// only counts when nothing else is found and it does not open the line,
// so "-1, -2" splits on ',' while "1-2-3" splits on '-'.
func guessDelimiter(line string) (rune, bool) {
	rs := []rune(line)
	freq := map[rune]int{}
	signs := map[rune]int{}
	for i, r := range rs {
		if !isDelimiterCandidate(r) {
			continue
		}
		if (r == '-' || r == '+') && i+1 < len(rs) && unicode.IsDigit(rs[i+1]) {
			if i > 0 {
				signs[r]++
			}
			continue
		}
		freq[r]++
	}
	if len(freq) == 0 {
		return pickDelimiter(signs)
	}
	return pickDelimiter(freq)
}

// pickDelimiter chooses from counted candidates: preferred delimiters
// first, then the highest count, then the lowest rune.
func pickDelimiter(counts map[rune]int) (rune, bool) {
	if len(counts) == 0 {
		return 0, false
	}
	for _, d := range preferredDelimiters {
		if counts[d] > 0 {
			return d, true
		}
	}
	var best rune
	bestCount := 0
	for r, c := range counts {
		if c > bestCount || (c == bestCount && r < best) {
			best, bestCount = r, c
		}
	}
	return best, true
}

// readRow parses exactly one row of line with dialect d. Quoting is
// minimal with '"' as the quote character and doubled quotes as escapes.
// An empty line is a row holding one empty field.
func readRow(line string, d Dialect) ([]string, error) {
	r := csv.NewReader(strings.NewReader(line))
	r.Comma = d.Delimiter
	r.TrimLeadingSpace = d.SkipInitialSpace
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	rec, err := r.Read()
	if errors.Is(err, io.EOF) {
		return []string{""}, nil
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}
