package database

import (
	"github.com/viant/parsly"
	"github.com/viant/parsly/matcher"
)

const (
	digitsCode = iota + 1
	separatorCode
)

var (
	digits    = parsly.NewToken(digitsCode, "digits", matcher.NewDigits())
	separator = parsly.NewToken(separatorCode, "separator", matcher.NewCharset(".:-"))
)
