package dataset

import (
	"database/sql"
	"fmt"
	"github.com/viant/xreflect"
	"reflect"
	"strconv"
	"strings"
	"time"
)

//FromRows materialises all remaining rows into a dataset; the whole result set is held in memory
func FromRows(rows *sql.Rows) (*Dataset, error) {
	columnTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, err
	}
	result := &Dataset{Columns: make([]string, len(columnTypes)), Rows: [][]interface{}{}}
	types := make([]reflect.Type, len(columnTypes))
	for i, columnType := range columnTypes {
		result.Columns[i] = columnType.Name()
		types[i] = ScanType(columnType.DatabaseTypeName())
	}
	for rows.Next() {
		values := make([]interface{}, len(columnTypes))
		pointers := make([]interface{}, len(columnTypes))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err = rows.Scan(pointers...); err != nil {
			return nil, err
		}
		for i, value := range values {
			values[i] = convert(value, types[i])
		}
		result.Rows = append(result.Rows, values)
	}
	return result, rows.Err()
}

//ScanType returns go type for database type name or nil when unknown
func ScanType(databaseTypeName string) reflect.Type {
	dbType := strings.TrimSpace(strings.Replace(strings.ToLower(databaseTypeName), "unsigned", "", 1))
	if index := strings.Index(dbType, "("); index != -1 {
		dbType = strings.TrimSpace(dbType[:index])
	}
	return scanTypes[dbType]
}

//goTypes maps database type names to go type expressions
var goTypes = map[string]string{
	"int64":     "int, integer, bigint, smallint, tinyint, mediumint, int2, int4, int8, serial, bigserial",
	"float64":   "float, float4, float8, real, double, double precision, numeric, decimal, money, smallmoney",
	"bool":      "bool, boolean, bit",
	"string":    "char, nchar, varchar, nvarchar, text, ntext, longtext, mediumtext, tinytext, string, uniqueidentifier, json, xml",
	"time.Time": "date, time, timestamp, datetime, datetime2, smalldatetime, datetimeoffset, timestamptz",
	"[]byte":    "binary, varbinary, blob, longblob, mediumblob, tinyblob, bytea, image",
}

var scanTypes = parseScanTypes()

func parseScanTypes() map[string]reflect.Type {
	var result = map[string]reflect.Type{}
	for goType, dbTypes := range goTypes {
		rType, err := xreflect.Parse(goType)
		if err != nil {
			panic(fmt.Sprintf("failed to parse scan type %v: %v", goType, err))
		}
		for _, dbType := range strings.Split(dbTypes, ",") {
			result[strings.TrimSpace(dbType)] = rType
		}
	}
	return result
}

func convert(value interface{}, rType reflect.Type) interface{} {
	raw, ok := value.([]byte)
	if !ok {
		return value
	}
	text := string(raw)
	if rType == nil {
		if isBinary(raw) {
			return raw
		}
		return text
	}
	switch rType.Kind() {
	case reflect.Int64:
		if v, err := strconv.ParseInt(text, 10, 64); err == nil {
			return v
		}
	case reflect.Float64:
		if v, err := strconv.ParseFloat(text, 64); err == nil {
			return v
		}
	case reflect.Bool:
		if v, err := strconv.ParseBool(text); err == nil {
			return v
		}
	case reflect.Slice:
		return raw
	case reflect.Struct:
		for _, layout := range timeLayouts {
			if v, err := time.Parse(layout, text); err == nil {
				return v
			}
		}
	}
	return text
}

var timeLayouts = []string{time.RFC3339Nano, "2006-01-02 15:04:05.999999999", "2006-01-02 15:04:05", "2006-01-02"}

func isBinary(raw []byte) bool {
	for _, b := range raw {
		if b == 0 {
			return true
		}
	}
	return false
}
