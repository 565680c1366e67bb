package ingest

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
)

// DefaultEncodings is the candidate order used by InBody exports on
// Traditional Chinese Windows installs.
var DefaultEncodings = []string{"utf-8-sig", "big5", "cp950"}

// ErrUnknownEncoding is returned when a candidate name cannot be resolved to a codec.
var ErrUnknownEncoding = errors.New("unknown encoding")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// codec decodes a whole byte slice or reports why it could not.
type codec func(data []byte) (string, error)

var codecAliases = map[string]encoding.Encoding{
	"big5":       traditionalchinese.Big5,
	"big5-hkscs": traditionalchinese.Big5,
	"cp950":      traditionalchinese.Big5,
	"ms950":      traditionalchinese.Big5,
	"gbk":        simplifiedchinese.GBK,
	"cp936":      simplifiedchinese.GBK,
	"gb18030":    simplifiedchinese.GB18030,
	"shift-jis":  japanese.ShiftJIS,
	"sjis":       japanese.ShiftJIS,
	"cp932":      japanese.ShiftJIS,
	"cp1252":     charmap.Windows1252,
	"latin1":     charmap.ISO8859_1,
	"iso-8859-1": charmap.ISO8859_1,
}

// lookupCodec resolves an encoding name as written by users (python-style
// names such as "utf-8-sig" or "cp950" included).
func lookupCodec(name string) (codec, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.ReplaceAll(n, "_", "-")
	switch n {
	case "utf-8-sig", "utf8-sig":
		return decodeUTF8(true), nil
	case "utf-8", "utf8":
		return decodeUTF8(false), nil
	}
	if enc, ok := codecAliases[n]; ok {
		return decodeWith(enc), nil
	}
	enc, err := htmlindex.Get(n)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEncoding, name)
	}
	return decodeWith(enc), nil
}

func decodeUTF8(stripBOM bool) codec {
	return func(data []byte) (string, error) {
		if stripBOM {
			data = bytes.TrimPrefix(data, utf8BOM)
		}
		if !utf8.Valid(data) {
			return "", errors.New("invalid utf-8 byte sequence")
		}
		return string(data), nil
	}
}

// decodeWith runs an x/text decoder. Those decoders substitute U+FFFD for
// bytes they cannot map instead of failing, so a replacement rune in the
// output counts as a decode error.
func decodeWith(enc encoding.Encoding) codec {
	return func(data []byte) (string, error) {
		out, err := enc.NewDecoder().Bytes(data)
		if err != nil {
			return "", err
		}
		if i := bytes.IndexRune(out, utf8.RuneError); i >= 0 {
			return "", fmt.Errorf("undecodable bytes near offset %d", i)
		}
		return string(out), nil
	}
}
