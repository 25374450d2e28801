package connector

import (
	"fmt"
	"github.com/viant/dbio/metadata/info"
	"sort"
	"strings"
	"sync"
)

//Flavor represents connection flavor
type Flavor int

const (
	//Cursor represents row-cursor connection: explicit transactions, prepared execute-many
	Cursor = Flavor(iota)
	//Transactional represents higher level connection used for scoped transactions and bulk reads
	Transactional
)

func (f Flavor) String() string {
	if f == Cursor {
		return "cursor"
	}
	return "transactional"
}

type (
	//DSNBuilder builds driver data source name from config
	DSNBuilder func(config *Config) (string, error)

	//Driver represents database/sql driver used by a connection flavor
	Driver struct {
		Name string
		DSN  DSNBuilder
	}

	//Product represents database product connection definition
	Product struct {
		Name          string
		Aliases       []string
		Cursor        Driver
		Transactional Driver
		// VersionQuery returns product version string, empty skips version detection
		VersionQuery string
		Dialect      *info.Dialect
	}
)

//Driver returns driver for flavor
func (p *Product) Driver(flavor Flavor) *Driver {
	if flavor == Cursor {
		return &p.Cursor
	}
	return &p.Transactional
}

var _registry = &registry{products: map[string]*Product{}}

type registry struct {
	mux      sync.RWMutex
	products map[string]*Product
}

//Register registers product under its name and aliases
func Register(product *Product) {
	_registry.mux.Lock()
	defer _registry.mux.Unlock()
	_registry.products[strings.ToLower(product.Name)] = product
	for _, alias := range product.Aliases {
		_registry.products[strings.ToLower(alias)] = product
	}
}

//Lookup returns product registered for dialect name
func Lookup(name string) (*Product, error) {
	_registry.mux.RLock()
	defer _registry.mux.RUnlock()
	product, ok := _registry.products[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unsupported dialect: %v, registered: %v", name, strings.Join(names(_registry.products), ","))
	}
	return product, nil
}

func names(products map[string]*Product) []string {
	var result = make([]string, 0, len(products))
	for name := range products {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}
