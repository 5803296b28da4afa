package shared

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"github.com/relloyd/hptransform/constants"
	"github.com/relloyd/hptransform/helper"
)

var oracleDsnRegexp = regexp.MustCompile(`^oracle://.+?/.+?@//.+:[0-9]+/.+$`)

// OracleConnectionDetails is a helper type to build connection details with.
// oracle://user/password@//host:port/service?param1=value1&param2=value2
type OracleConnectionDetails struct {
	DBName   string `errorTxt:"Oracle database name" mandatory:"yes"`
	DBUser   string `errorTxt:"Oracle username" mandatory:"yes"`
	DBPass   string `errorTxt:"Oracle password" mandatory:"yes"`
	DBHost   string `errorTxt:"Oracle hostname" mandatory:"yes"`
	DBPort   string `errorTxt:"Oracle port" mandatory:"yes"`
	DBParams string
}

func (d OracleConnectionDetails) String() string {
	return fmt.Sprintf("oracle://%v/%v@//%v:%v/%v?%v",
		d.DBUser,
		helper.Obfuscate(d.DBPass),
		d.DBHost,
		d.DBPort,
		d.DBName,
		d.DBParams)
}

// OracleConnectionDetailsToDSN builds the connect string used by the OCI driver.
// DBParams is optional and falls back to the default parameters.
func OracleConnectionDetailsToDSN(d *OracleConnectionDetails) (string, error) {
	if err := helper.ValidateStructIsPopulated(d); err != nil {
		return "", errors.Wrap(err, "unable to build Oracle connection string")
	}
	params := d.DBParams
	if params == "" {
		params = constants.OracleConnectionDefaultParams
	}
	return fmt.Sprintf("oracle://%v/%v@//%v:%v/%v?%v",
		d.DBUser,
		d.DBPass,
		d.DBHost,
		d.DBPort,
		d.DBName,
		params), nil
}

func OracleDsnToOracleConnectionDetails(d string) (*OracleConnectionDetails, error) {
	if !oracleDsnRegexp.MatchString(d) {
		return nil, errors.New("unsupported Oracle DSN format")
	}
	d = strings.TrimPrefix(d, "oracle://")
	userPwd, theRest := helper.SplitRight(d, `@//`)
	user, pass := helper.Split(userPwd, `/`)
	hostPort, dbNameParams := helper.Split(theRest, `/`)
	host, port := helper.SplitRight(hostPort, `:`)
	dbName, params := helper.Split(dbNameParams, `?`)
	if params == "" { // if the user did not override the default params...
		params = constants.OracleConnectionDefaultParams
	}
	return &OracleConnectionDetails{
		DBUser:   user,
		DBPass:   pass,
		DBHost:   host,
		DBPort:   port,
		DBName:   dbName,
		DBParams: params,
	}, nil
}
