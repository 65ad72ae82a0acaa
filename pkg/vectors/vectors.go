// Package vectors reads stemmer reference vectors.
//
// Two formats are understood. Text files hold one "word stem" pair per line,
// blank lines and lines starting with '#' are skipped. XML files hold
// <vector><word/><stem/></vector> elements and are streamed, so arbitrarily
// large vocabularies can be checked. Either may be gzip-compressed, in which
// case the file name ends in ".gz".
package vectors

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
	xmlparser "github.com/tamerh/xml-stream-parser"
)

const XmlStreamBufferSize = 1024 * 1024 * 1 // 1MB

type Vector struct {
	Word string `json:"word"`
	Stem string `json:"stem"`
}

type Mismatch struct {
	Vector
	Got string `json:"got"`
}

type Format int

const (
	Text Format = iota
	XML
)

// FormatOf derives the format of a vector file from its name, ignoring a
// trailing ".gz".
func FormatOf(path string) Format {
	name := strings.TrimSuffix(strings.ToLower(path), ".gz")
	if filepath.Ext(name) == ".xml" {
		return XML
	}
	return Text
}

// Open reads every vector of the file at path.
func Open(path string) ([]Vector, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(f)

	var r io.Reader = f
	if strings.HasSuffix(strings.ToLower(path), ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, errors.Wrapf(err, "uncompressing %s", path)
		}
		defer func(gz *gzip.Reader) {
			_ = gz.Close()
		}(gz)
		r = gz
	}

	var vs []Vector
	switch FormatOf(path) {
	case XML:
		vs, err = ReadXML(r)
	default:
		vs, err = ReadText(r)
	}
	return vs, errors.Wrapf(err, "reading %s", path)
}

func ReadText(r io.Reader) ([]Vector, error) {
	var vs []Vector
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) != 2 {
			return nil, errors.Errorf("line %d: want \"word stem\", got %q", line, text)
		}
		vs = append(vs, Vector{Word: fields[0], Stem: fields[1]})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return vs, nil
}

func ReadXML(r io.Reader) ([]Vector, error) {
	var vs []Vector
	parser := xmlparser.NewXMLParser(bufio.NewReaderSize(r, XmlStreamBufferSize), "vector")
	for xmlElement := range parser.Stream() {
		if xmlElement.Err != nil {
			return nil, xmlElement.Err
		}
		if xmlElement.Name != "vector" {
			continue
		}
		word, wok := xmlElement.Childs["word"]
		stem, sok := xmlElement.Childs["stem"]
		if !wok || !sok || len(word) == 0 || len(stem) == 0 {
			return nil, errors.Errorf("vector %d: missing word or stem", len(vs)+1)
		}
		vs = append(vs, Vector{
			Word: strings.TrimSpace(word[0].InnerText),
			Stem: strings.TrimSpace(stem[0].InnerText),
		})
	}
	return vs, nil
}

// Verify stems every vector word and returns the vectors whose stem differs.
func Verify(vs []Vector, stem func(string) string) []Mismatch {
	var mismatches []Mismatch
	for _, v := range vs {
		if got := stem(v.Word); got != v.Stem {
			mismatches = append(mismatches, Mismatch{Vector: v, Got: got})
		}
	}
	return mismatches
}
