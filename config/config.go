package config

import (
	"fmt"
	"time"
)

type Configs struct {
	Env string

	Database  DatabaseConfigs
	ApiServer APIServerConfigs
	Auth      AuthConfigs
	Session   SessionConfigs
	Snowflake SnowflakeConfigs
}

type DatabaseConfigs struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type APIServerConfigs struct {
	Host string
	Port string
	Cert string
	Key  string

	// MaxLimit caps the limit parameter of list endpoints. DefaultLimit is
	// used when the client omits it.
	MaxLimit     int
	DefaultLimit int
}

func (c *APIServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

type AuthConfigs struct {
	AccessToken TokenConfigs
}

type TokenConfigs struct {
	Name       string
	Secret     string
	Expiration time.Duration
}

type SessionConfigs struct {
	Secret string
	Name   string
}

// SnowflakeConfigs identifies this instance in generated build ids.
type SnowflakeConfigs struct {
	Node int64
}
