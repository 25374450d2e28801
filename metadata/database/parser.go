package database

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/viant/parsly"
)

//ErrNoVersion indicates an empty version result, i.e. NULL SERVERPROPERTY('ProductVersion')
var ErrNoVersion = errors.New("version string was empty")

//Parse parses product version string i.e. "PostgreSQL 16.1 (Debian 16.1-1) on x86_64" or "15.0.2000.5".
//The version is the first digits run followed by a separator and digits, otherwise the first digits run.
func Parse(input []byte) (*Product, error) {
	input = bytes.TrimSpace(input)
	if len(input) == 0 {
		return nil, ErrNoVersion
	}
	cursor := parsly.NewCursor("", input, 0)
	var first *Product
	for cursor.HasMore() {
		product, ok := matchVersion(cursor)
		if !ok {
			break
		}
		if product.dotted {
			return &product.Product, nil
		}
		if first == nil {
			first = &product.Product
		}
	}
	if first == nil {
		return nil, fmt.Errorf("no version number in: %q", input)
	}
	return first, nil
}

type candidate struct {
	Product
	dotted bool
}

func matchVersion(cursor *parsly.Cursor) (*candidate, bool) {
	matched := cursor.FindMatch(digits)
	if matched.Code != digitsCode {
		return nil, false
	}
	offset := matched.Offset
	major, _ := matched.Int(cursor)
	result := &candidate{Product: Product{Name: productName(cursor.Input[:offset]), Major: int(major)}}
	parts := []*int{&result.Minor, &result.Release}
	for _, part := range parts {
		if cursor.MatchOne(separator).Code != separatorCode {
			break
		}
		matched = cursor.MatchOne(digits)
		if matched.Code != digitsCode {
			break
		}
		value, _ := matched.Int(cursor)
		*part = int(value)
		result.dotted = true
	}
	return result, true
}

//productName returns text preceding version without trailing separators and a 'v' version prefix
func productName(prefix []byte) string {
	if size := len(prefix); size > 0 && (prefix[size-1] == 'v' || prefix[size-1] == 'V') {
		if size == 1 || prefix[size-2] == ' ' {
			prefix = prefix[:size-1]
		}
	}
	return strings.Trim(string(prefix), " -\t\n")
}
