package errx

import (
	"errors"
	"fmt"
	"strings"
)

var (
	//ErrConnection indicates a session could not be established (bad credentials,
	//unreachable host, missing driver).
	ErrConnection = errors.New("connection failed")

	//ErrInvalidKeySpec indicates an empty key set or a key column absent from the dataset.
	ErrInvalidKeySpec = errors.New("invalid key spec")

	//ErrEmptyDataset indicates a dataset without columns.
	ErrEmptyDataset = errors.New("empty dataset")

	//ErrInvalidDataset indicates duplicated/blank column names or ragged rows.
	ErrInvalidDataset = errors.New("invalid dataset")

	//ErrExecution indicates the driver rejected or failed a statement. It is always
	//reported after an attempted rollback.
	ErrExecution = errors.New("execution failed")

	//ErrLiteralRender indicates a value could not be rendered as a SQL literal.
	ErrLiteralRender = errors.New("literal render failed")

	//ErrPartial indicates a best-effort per-row operation stopped part way:
	//rows before the failing one stay committed.
	ErrPartial = errors.New("partial success")
)

//Error carries structured context while remaining compatible with errors.Is().
type Error struct {
	Kind    error
	Op      string
	Table   string
	Columns []string
	//Row is the 1-based dataset row the error relates to, 0 when not applicable.
	Row int
	//Committed is the number of rows committed before a partial failure.
	Committed int
	Cause     error
}

func (e *Error) Error() string {
	sb := &strings.Builder{}
	sb.WriteString("dbio")
	if e.Op != "" {
		sb.WriteString(" ")
		sb.WriteString(e.Op)
	}
	sb.WriteString(": ")
	if e.Kind != nil {
		sb.WriteString(e.Kind.Error())
	} else {
		sb.WriteString("error")
	}
	if e.Table != "" {
		sb.WriteString(" table=")
		sb.WriteString(e.Table)
	}
	if e.Row != 0 {
		sb.WriteString(fmt.Sprintf(" row=%d", e.Row))
	}
	if e.Kind == ErrPartial {
		sb.WriteString(fmt.Sprintf(" committed=%d", e.Committed))
	}
	if len(e.Columns) > 0 {
		sb.WriteString(" columns=[")
		sb.WriteString(strings.Join(e.Columns, ","))
		sb.WriteString("]")
	}
	if e.Cause != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Cause.Error())
	}
	return sb.String()
}

func (e *Error) Unwrap() error { return e.Cause }

func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}
	if e.Kind != nil && target == e.Kind {
		return true
	}
	if e.Cause != nil {
		return errors.Is(e.Cause, target)
	}
	return false
}

//Connection wraps a session acquisition failure
func Connection(op string, cause error) error {
	return &Error{Kind: ErrConnection, Op: op, Cause: cause}
}

//InvalidKeySpec reports an empty key set or keys missing from columns
func InvalidKeySpec(op, table string, keys []string, cause error) error {
	return &Error{Kind: ErrInvalidKeySpec, Op: op, Table: table, Columns: keys, Cause: cause}
}

//EmptyDataset reports a dataset without columns
func EmptyDataset(op, table string) error {
	return &Error{Kind: ErrEmptyDataset, Op: op, Table: table}
}

//InvalidDataset reports a malformed dataset
func InvalidDataset(op, table string, cause error) error {
	return &Error{Kind: ErrInvalidDataset, Op: op, Table: table, Cause: cause}
}

//Execution wraps a driver failure with operation context
func Execution(op, table string, cause error) error {
	return &Error{Kind: ErrExecution, Op: op, Table: table, Cause: cause}
}

//LiteralRender reports a value that could not be rendered for the column at the 1-based row
func LiteralRender(op, table, column string, row int, cause error) error {
	return &Error{Kind: ErrLiteralRender, Op: op, Table: table, Columns: []string{column}, Row: row, Cause: cause}
}

//Partial reports a best-effort operation that committed some rows before failing at the 1-based row
func Partial(op, table string, committed, row int, cause error) error {
	return &Error{Kind: ErrPartial, Op: op, Table: table, Committed: committed, Row: row, Cause: cause}
}

//Annotate fills in missing operation and table context on an *Error
func Annotate(err error, op, table string) error {
	var target *Error
	if !errors.As(err, &target) {
		return err
	}
	if target.Op == "" {
		target.Op = op
	}
	if target.Table == "" {
		target.Table = table
	}
	return err
}

//Committed returns number of committed rows for partial error
func Committed(err error) (int, bool) {
	var target *Error
	if errors.As(err, &target) && target.Kind == ErrPartial {
		return target.Committed, true
	}
	return 0, false
}

func IsConnection(err error) bool { return errors.Is(err, ErrConnection) }

func IsInvalidKeySpec(err error) bool { return errors.Is(err, ErrInvalidKeySpec) }

func IsEmptyDataset(err error) bool { return errors.Is(err, ErrEmptyDataset) }

func IsInvalidDataset(err error) bool { return errors.Is(err, ErrInvalidDataset) }

func IsExecution(err error) bool { return errors.Is(err, ErrExecution) }

func IsLiteralRender(err error) bool { return errors.Is(err, ErrLiteralRender) }

func IsPartial(err error) bool { return errors.Is(err, ErrPartial) }

//IsDuplicateKey reports whether driver error looks like unique constraint violation
func IsDuplicateKey(err error) bool {
	msg := strings.ToLower(errString(err))
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "duplicate entry")
}

//IsConstraint reports whether driver error looks like a generic constraint violation (FK/CK/NOT NULL)
func IsConstraint(err error) bool {
	msg := strings.ToLower(errString(err))
	return strings.Contains(msg, "constraint failed") ||
		strings.Contains(msg, "violates") ||
		strings.Contains(msg, "cannot insert the value null") ||
		strings.Contains(msg, "foreign key constraint") ||
		strings.Contains(msg, "check constraint")
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
