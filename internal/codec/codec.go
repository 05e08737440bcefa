// Package codec converts the application document to and from the text form
// kept in the blob store: base64 over the UTF-8 bytes of the JSON document.
//
// The base64 layer only keeps stores that mishandle multi-byte characters
// (accented category names, descriptions) from corrupting the document.
// It is not encryption.
package codec

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"unicode/utf8"

	"fjacquet/mes-comptes/internal/models"
	"fjacquet/mes-comptes/internal/persistenceerror"
)

var errInvalidUTF8 = errors.New("decoded bytes are not valid UTF-8")

// Marshal returns the canonical JSON form of data.
//
// HTML characters are not escaped and no trailing newline is written, which
// matches the documents produced by earlier versions of the application.
// A nil transaction list is written as an empty array.
func Marshal(data models.AppData) ([]byte, error) {
	if data.Transactions == nil {
		data.Transactions = []models.Transaction{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(data); err != nil {
		return nil, &persistenceerror.EncodeError{Err: err}
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Encode returns the storage text for data.
func Encode(data models.AppData) (string, error) {
	payload, err := Marshal(data)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(payload), nil
}

// Decode inverts Encode and returns the JSON document, not yet normalized.
// Failures are reported as *persistenceerror.DecodeError.
func Decode(text string) (json.RawMessage, error) {
	payload, err := decodeBase64(strings.TrimSpace(text))
	if err != nil {
		return nil, &persistenceerror.DecodeError{Stage: persistenceerror.StageBase64, Err: err}
	}
	if !utf8.Valid(payload) {
		return nil, &persistenceerror.DecodeError{Stage: persistenceerror.StageUTF8, Err: errInvalidUTF8}
	}
	return parseJSON(payload)
}

// ParsePlain accepts text that was stored as plain JSON, before the base64
// layer existed.
func ParsePlain(text string) (json.RawMessage, error) {
	return parseJSON([]byte(strings.TrimSpace(text)))
}

// decodeBase64 accepts padded and unpadded input.
func decodeBase64(s string) ([]byte, error) {
	payload, err := base64.StdEncoding.DecodeString(s)
	if err == nil {
		return payload, nil
	}
	if raw, rawErr := base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "=")); rawErr == nil {
		return raw, nil
	}
	return nil, err
}

func parseJSON(payload []byte) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, &persistenceerror.DecodeError{Stage: persistenceerror.StageJSON, Err: err}
	}
	return raw, nil
}
