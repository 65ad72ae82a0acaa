package tcpserver

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// Commands. A request is the command byte followed by two length prefixed
// fields, the language code and the payload:
//
//	command(1) | len(4, big endian) | language | len(4, big endian) | payload
//
// STEM payloads are words separated by newlines, ANALYZE payloads are free
// text, LANGUAGES has an empty language and payload. The response is one JSON
// document followed by a newline, after which the server closes the
// connection.
const (
	STEM      = byte(0)
	LANGUAGES = byte(1)
	ANALYZE   = byte(2)
)

const (
	MaxLanguageLength = 64
	MaxPayloadLength  = 8 << 20
)

type Request struct {
	Command  byte
	Language string
	Payload  []byte
}

// Words splits a STEM payload into its non-empty lines.
func (r *Request) Words() []string {
	lines := strings.Split(string(r.Payload), "\n")
	words := make([]string, 0, len(lines))
	for _, l := range lines {
		if w := strings.TrimSpace(l); w != "" {
			words = append(words, w)
		}
	}
	return words
}

func EncodeRequest(r Request) []byte {
	buf := make([]byte, 0, 9+len(r.Language)+len(r.Payload))
	buf = append(buf, r.Command)
	buf = append(buf, Uint32ToBytes(uint32(len(r.Language)))...)
	buf = append(buf, r.Language...)
	buf = append(buf, Uint32ToBytes(uint32(len(r.Payload)))...)
	buf = append(buf, r.Payload...)
	return buf
}

func ReadRequest(reader io.Reader) (*Request, error) {
	br := bufio.NewReader(reader)
	command, err := br.ReadByte()
	if err != nil {
		return nil, errors.Wrap(err, "reading command")
	}
	switch command {
	case STEM, LANGUAGES, ANALYZE:
	default:
		return nil, errors.Errorf("invalid header byte %b", command)
	}
	language, err := readField(br, MaxLanguageLength)
	if err != nil {
		return nil, errors.Wrap(err, "reading language")
	}
	payload, err := readField(br, MaxPayloadLength)
	if err != nil {
		return nil, errors.Wrap(err, "reading payload")
	}
	return &Request{Command: command, Language: string(language), Payload: payload}, nil
}

func readField(r io.Reader, max uint32) ([]byte, error) {
	var size [4]byte
	if _, err := io.ReadFull(r, size[:]); err != nil {
		return nil, err
	}
	n := BytesToUint32(size[:])
	if n > max {
		return nil, errors.Errorf("invalid length: %d, at most %d bytes are allowed", n, max)
	}
	field := make([]byte, n)
	if _, err := io.ReadFull(r, field); err != nil {
		return nil, err
	}
	return field, nil
}

func ToJSONString(v interface{}) (string, error) {
	if bytes, err := json.Marshal(v); err != nil {
		return "", err
	} else {
		return string(bytes), nil
	}
}

func BytesToUint32(bytes []byte) uint32 {
	return binary.BigEndian.Uint32(bytes)
}

func Uint32ToBytes(a uint32) []byte {
	bs := make([]byte, 4)
	binary.BigEndian.PutUint32(bs, a)
	return bs
}
