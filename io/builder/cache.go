package builder

import (
	"strconv"
	"strings"
	"sync"

	"github.com/viant/dbio/metadata/info"
)

//Cache represents statements cache keyed by table, keys, columns and dialect
type Cache struct {
	mux        sync.RWMutex
	statements map[string]*Statement
	plans      map[string]*Plan
}

//NewCache creates statements cache
func NewCache() *Cache {
	return &Cache{statements: map[string]*Statement{}, plans: map[string]*Plan{}}
}

//Insert returns cached insert statement
func (c *Cache) Insert(table string, columns []string, dialect *info.Dialect, rows int) (*Statement, error) {
	key := cacheKey("insert", table, nil, columns, dialect, rows)
	c.mux.RLock()
	stmt, ok := c.statements[key]
	c.mux.RUnlock()
	if ok {
		return stmt, nil
	}
	stmt, err := InsertBatch(table, columns, dialect, rows)
	if err != nil {
		return nil, err
	}
	c.mux.Lock()
	c.statements[key] = stmt
	c.mux.Unlock()
	return stmt, nil
}

//Upsert returns cached upsert plan
func (c *Cache) Upsert(table string, keys, columns []string, dialect *info.Dialect, rows int) (*Plan, error) {
	key := cacheKey("upsert", table, keys, columns, dialect, rows)
	c.mux.RLock()
	plan, ok := c.plans[key]
	c.mux.RUnlock()
	if ok {
		return plan, nil
	}
	plan, err := UpsertBatch(table, keys, columns, dialect, rows)
	if err != nil {
		return nil, err
	}
	c.mux.Lock()
	c.plans[key] = plan
	c.mux.Unlock()
	return plan, nil
}

//Len returns number of cached entries
func (c *Cache) Len() int {
	c.mux.RLock()
	defer c.mux.RUnlock()
	return len(c.statements) + len(c.plans)
}

func cacheKey(kind, table string, keys, columns []string, dialect *info.Dialect, rows int) string {
	builder := strings.Builder{}
	builder.WriteString(kind)
	builder.WriteByte('/')
	builder.WriteString(dialect.Name)
	builder.WriteByte(':')
	builder.WriteString(strconv.Itoa(int(dialect.Upsert)))
	builder.WriteByte(':')
	builder.WriteString(strconv.Itoa(int(dialect.Insert)))
	builder.WriteByte(':')
	builder.WriteString(dialect.PlaceholderStyle())
	builder.WriteByte('/')
	builder.WriteString(table)
	builder.WriteByte('/')
	builder.WriteString(strings.Join(keys, ","))
	builder.WriteByte('/')
	builder.WriteString(strings.Join(columns, ","))
	builder.WriteByte('/')
	builder.WriteString(strconv.Itoa(rows))
	return builder.String()
}
