package shared

import (
	"fmt"

	"github.com/relloyd/hptransform/constants"
	"github.com/relloyd/hptransform/helper"
)

// ConnectionDetails holds the credentials of the database that scripts are executed against.
type ConnectionDetails struct {
	Type     string
	Host     string `errorTxt:"host" mandatory:"yes"`
	Port     string `errorTxt:"port" mandatory:"yes"`
	Database string `errorTxt:"database" mandatory:"yes"`
	Schema   string
	User     string `errorTxt:"user" mandatory:"yes"`
	Password string `errorTxt:"#password" mandatory:"yes"`
	Params   string // param1=value1&param2=value2
}

// String redacts the password.
func (c ConnectionDetails) String() string {
	return fmt.Sprintf("type = %v, user = %v, password = %v, connect string = %v, schema = %v",
		c.GetType(), c.User, helper.Obfuscate(c.Password), c.ConnectString(), c.Schema)
}

// ConnectString returns the easy connect string of the database, //host:port/database.
func (c ConnectionDetails) ConnectString() string {
	return fmt.Sprintf("//%v:%v/%v", c.Host, c.Port, c.Database)
}

// GetType returns the connection type, defaulting to Oracle.
func (c ConnectionDetails) GetType() string {
	if c.Type == "" {
		return constants.ConnectionTypeOracle
	}
	return c.Type
}

// GetOracleConnectionDetails converts c into the struct used to build an Oracle DSN.
func (c ConnectionDetails) GetOracleConnectionDetails() *OracleConnectionDetails {
	return &OracleConnectionDetails{
		DBName:   c.Database,
		DBUser:   c.User,
		DBPass:   c.Password,
		DBHost:   c.Host,
		DBPort:   c.Port,
		DBParams: c.Params,
	}
}

// DsnConnectionDetails is a simple struct to hold a DSN only.
type DsnConnectionDetails struct {
	Dsn string `errorTxt:"data source name i.e. connect string" mandatory:"yes"`
}
