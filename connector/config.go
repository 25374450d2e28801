package connector

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

//DefaultDialect is used when config does not specify dialect
const DefaultDialect = "mssql"

//Config represents static connection configuration
type Config struct {
	Dialect  string `yaml:"dialect,omitempty" json:"dialect,omitempty" env:"DBIO_DIALECT"`
	Driver   string `yaml:"driver" json:"driver" env:"DBIO_DRIVER"`
	Server   string `yaml:"server" json:"server" env:"DBIO_SERVER"`
	Port     int    `yaml:"port,omitempty" json:"port,omitempty" env:"DBIO_PORT"`
	Database string `yaml:"database" json:"database" env:"DBIO_DATABASE"`
	Username string `yaml:"username" json:"username" env:"DBIO_USERNAME"`
	Password string `yaml:"password" json:"-" env:"DBIO_PASSWORD"`
}

//DialectName returns configured dialect or default one
func (c *Config) DialectName() string {
	if c.Dialect == "" {
		return DefaultDialect
	}
	return strings.ToLower(c.Dialect)
}

//Validate checks that all connection fields are set
func (c *Config) Validate() error {
	var missing []string
	for _, field := range []struct {
		name  string
		value string
	}{
		{"driver", c.Driver},
		{"server", c.Server},
		{"database", c.Database},
		{"username", c.Username},
		{"password", c.Password},
	} {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("invalid connection config, missing: %v", strings.Join(missing, ","))
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid connection config, port out of range: %v", c.Port)
	}
	return nil
}

//ConnectionString returns cursor style connection string: Driver=<d>;Server=<s>;Database=<db>;UID=<u>;PWD=<p>;[PORT=<n>;]
func (c *Config) ConnectionString() string {
	builder := strings.Builder{}
	appendAttribute(&builder, "Driver", c.Driver)
	appendAttribute(&builder, "Server", c.Server)
	appendAttribute(&builder, "Database", c.Database)
	appendAttribute(&builder, "UID", c.Username)
	appendAttribute(&builder, "PWD", c.Password)
	if c.Port > 0 {
		appendAttribute(&builder, "PORT", strconv.Itoa(c.Port))
	}
	return builder.String()
}

//appendAttribute writes name=value; values with ';', '{' or '}' or surrounding spaces are wrapped in braces
func appendAttribute(builder *strings.Builder, name, value string) {
	builder.WriteString(name)
	builder.WriteByte('=')
	if strings.ContainsAny(value, ";{}") || strings.TrimSpace(value) != value {
		builder.WriteByte('{')
		builder.WriteString(strings.ReplaceAll(value, "}", "}}"))
		builder.WriteByte('}')
	} else {
		builder.WriteString(value)
	}
	builder.WriteByte(';')
}

//ConnectionURI returns transactional style URI: <dialect>://<user>:<encoded password>@<host>/<database>?driver=<driver>
func (c *Config) ConnectionURI() string {
	URL := c.URL(c.DialectName())
	URL.Path = "/" + c.Database
	URL.RawQuery = "driver=" + url.QueryEscape(c.Driver)
	return URL.String()
}

//URL returns base URL with credentials and host for supplied scheme
func (c *Config) URL(scheme string) *url.URL {
	return &url.URL{
		Scheme: scheme,
		User:   url.UserPassword(c.Username, c.Password),
		Host:   c.Host(),
	}
}

//Host returns server with optional port
func (c *Config) Host() string {
	if c.Port > 0 {
		return c.Server + ":" + strconv.Itoa(c.Port)
	}
	return c.Server
}

//String returns config description without password
func (c *Config) String() string {
	return fmt.Sprintf("%v://%v@%v/%v", c.DialectName(), c.Username, c.Host(), c.Database)
}
