// Package conll reads dependency parses in the CoNLL-U and CoNLL-X formats.
//
// Both formats have ten tab separated columns per word and a blank line
// between sentences. The columns used are ID, FORM, LEMMA, the coarse POS
// (UPOS or CPOSTAG), the fine POS (XPOS or POSTAG), HEAD and DEPREL.
// Comment lines, multiword token ranges (1-2) and empty nodes (1.1) are
// skipped. HEAD 0 marks the root, which becomes its own head.
package conll

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	sent "github.com/revelaction/relex/sentence"
)

const (
	colID = iota
	colForm
	colLemma
	colPos
	colTag
	colFeats
	colHead
	colDeprel
	colDeps
	colMisc

	numColumns
)

// empty is the placeholder of an unset field.
const empty = "_"

// Extensions lists the file extensions recognized as CoNLL files.
var Extensions = []string{".conllu", ".conll"}

// IsConll reports whether path has a CoNLL file extension.
func IsConll(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

type row struct {
	id     int
	form   string
	lemma  string
	pos    string
	tag    string
	head   int
	deprel string
	space  bool
}

// Read parses all sentences of r. Token Ids are running numbers over the
// whole input; Idx is the rune offset of the token in the detokenized text.
func Read(r io.Reader) ([]sent.Sentence, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var (
		sentences []sent.Sentence
		rows      []row
		line      int
		tokenId   int
		offset    int
	)

	flush := func() error {
		if len(rows) == 0 {
			return nil
		}

		s := sent.Sentence{Id: len(sentences)}
		for i, rw := range rows {
			if rw.id != i+1 {
				return fmt.Errorf("sentence %d: word id %d out of sequence", s.Id, rw.id)
			}

			head := rw.head - 1
			if rw.head == 0 {
				head = i
			}
			if head < 0 || head >= len(rows) {
				return fmt.Errorf("sentence %d: word %d has head %d out of range", s.Id, rw.id, rw.head)
			}

			s.Tokens = append(s.Tokens, sent.Token{
				Id:         tokenId,
				Head:       head,
				SentenceId: s.Id,
				Pos:        rw.pos,
				Dep:        rw.deprel,
				Tag:        rw.tag,
				Idx:        offset,
				Text:       rw.form,
				Lemma:      rw.lemma,
				Index:      i,
			})

			tokenId++
			offset += len([]rune(rw.form))
			if rw.space {
				offset++
			}
		}

		sentences = append(sentences, s)
		rows = rows[:0]
		return nil
	}

	for scanner.Scan() {
		line++
		text := strings.TrimRight(scanner.Text(), "\r")

		if strings.TrimSpace(text) == "" {
			if err := flush(); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			continue
		}

		if strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.Split(text, "\t")
		if len(fields) < numColumns {
			return nil, fmt.Errorf("line %d: expected %d columns, got %d", line, numColumns, len(fields))
		}

		if strings.ContainsAny(fields[colID], "-.") {
			continue
		}

		rw, err := parseRow(fields)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rows = append(rows, rw)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if err := flush(); err != nil {
		return nil, fmt.Errorf("line %d: %w", line, err)
	}

	return sentences, nil
}

func parseRow(fields []string) (row, error) {
	id, err := strconv.Atoi(fields[colID])
	if err != nil {
		return row{}, fmt.Errorf("error parsing ID field (%s): %w", fields[colID], err)
	}

	head, err := strconv.Atoi(fields[colHead])
	if err != nil {
		return row{}, fmt.Errorf("error parsing HEAD field (%s): %w", fields[colHead], err)
	}

	return row{
		id:     id,
		form:   fields[colForm],
		lemma:  value(fields[colLemma]),
		pos:    value(fields[colPos]),
		tag:    value(fields[colTag]),
		head:   head,
		deprel: value(fields[colDeprel]),
		space:  !strings.Contains(fields[colMisc], "SpaceAfter=No"),
	}, nil
}

func value(field string) string {
	if field == empty {
		return ""
	}
	return field
}

// ReadFile reads a CoNLL file as a Doc titled with the file name.
func ReadFile(path string) (sent.Doc, error) {
	f, err := os.Open(path)
	if err != nil {
		return sent.Doc{}, fmt.Errorf("IO error: %w", err)
	}
	defer f.Close()

	sentences, err := Read(f)
	if err != nil {
		return sent.Doc{}, fmt.Errorf("CoNLL decoding error in %s: %w", filepath.Base(path), err)
	}

	return sent.Doc{
		Title:     filepath.Base(path),
		Sentences: sentences,
	}, nil
}
