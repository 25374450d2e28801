package builder

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/viant/dbio/dataset"
	"github.com/viant/dbio/io/errx"
	"github.com/viant/dbio/metadata/info"
	"github.com/viant/toolbox"
)

//Quoting represents string literal quoting mode
type Quoting int

const (
	//EscapeQuotes doubles embedded single quotes
	EscapeQuotes = Quoting(iota)
	//Verbatim wraps text in single quotes without escaping embedded ones
	Verbatim
)

//TimeLayout is used for time literals
const TimeLayout = "2006-01-02 15:04:05.999999999"

var numeric = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

//LiteralPolicy renders values as SQL literals
type LiteralPolicy struct {
	Dialect *info.Dialect
	Quoting Quoting
}

//NewLiteralPolicy creates literal policy
func NewLiteralPolicy(dialect *info.Dialect, verbatim bool) *LiteralPolicy {
	result := &LiteralPolicy{Dialect: dialect}
	if verbatim {
		result.Quoting = Verbatim
	}
	return result
}

//Render renders value as literal: NULL for missing values, numbers and numeric text unquoted, other text single quoted
func (p *LiteralPolicy) Render(value interface{}) (string, error) {
	value = dataset.Normalize(value)
	switch actual := value.(type) {
	case nil:
		return p.Dialect.Null(), nil
	case string:
		return p.text(actual)
	case []byte:
		return p.text(string(actual))
	case bool:
		return p.Dialect.Bool(actual), nil
	case int:
		return strconv.Itoa(actual), nil
	case int64:
		return strconv.FormatInt(actual, 10), nil
	case float64:
		return p.float(actual, 64)
	case float32:
		return p.float(float64(actual), 32)
	case time.Time:
		return "'" + actual.Format(TimeLayout) + "'", nil
	}
	rValue := reflect.ValueOf(value)
	switch rValue.Kind() {
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return toolbox.AsString(value), nil
	case reflect.Float32, reflect.Float64:
		return p.float(rValue.Float(), rValue.Type().Bits())
	case reflect.Bool:
		return p.Dialect.Bool(rValue.Bool()), nil
	case reflect.String:
		return p.text(rValue.String())
	}
	return "", fmt.Errorf("unsupported literal type: %T", value)
}

func (p *LiteralPolicy) float(value float64, bits int) (string, error) {
	if math.IsInf(value, 0) {
		return "", fmt.Errorf("infinite number: %v", value)
	}
	return strconv.FormatFloat(value, 'g', -1, bits), nil
}

func (p *LiteralPolicy) text(value string) (string, error) {
	if numeric.MatchString(value) {
		return value, nil
	}
	if strings.IndexByte(value, 0) != -1 {
		return "", fmt.Errorf("text contains NUL byte")
	}
	if p.Quoting == EscapeQuotes {
		value = strings.ReplaceAll(value, "'", "''")
	}
	return "'" + value + "'", nil
}

//IsNumeric returns true if text is rendered as unquoted numeric literal
func IsNumeric(text string) bool {
	return numeric.MatchString(text)
}

//LiteralRows renders statement for every row, it fails without partial output if any row cannot be rendered
func LiteralRows(stmt *Statement, policy *LiteralPolicy, rows [][]interface{}) ([]string, error) {
	var result = make([]string, 0, len(rows))
	for i, row := range rows {
		SQL, err := stmt.Literal(policy, row)
		if err != nil {
			var renderErr *errx.Error
			if errors.As(err, &renderErr) {
				renderErr.Row = i + 1
			}
			return nil, err
		}
		result = append(result, SQL)
	}
	return result, nil
}
