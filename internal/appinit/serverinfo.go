package appinit

import (
	"io/ioutil"

	errors "github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"
)

// ServerInfo is the Go struct for contents in serve.yaml.
type ServerInfo struct {
	User           *OperatingIdentity   `yaml:"user"`
	Channel        string               `yaml:"channel"`
	ChaincodeID    string               `yaml:"chaincodeID"`
	Port           int                  `yaml:"port"`
	Session        *SessionInfo         `yaml:"session"`
	Sweeper        *SweeperInfo         `yaml:"sweeper"`
	JobKeys        map[string]string    `yaml:"jobKeys"`
	IPFSAPI        string               `yaml:"ipfsAPI"`
	Meeting        *MeetingProviderInfo `yaml:"meeting"`
	AccountKeys    map[string]string    `yaml:"accountKeys"` // The account identities -> the paths to their SM2 public key PEM files
	ShowTimingLogs bool                 `yaml:"showTimingLogs"`
}

// OperatingIdentity represents the client / user that performs the operation.
type OperatingIdentity struct {
	OrgName string `yaml:"orgName"` // The name of the organization to which the user that performs the operation belongs
	UserID  string `yaml:"userID"`  // The ID of the user
}

// SessionInfo contains the session lifecycle settings.
type SessionInfo struct {
	TTLMinutes int    `yaml:"ttlMinutes"` // The session TTL in minutes. Defaults to 30 if unset.
	HMACSecret string `yaml:"hmacSecret"` // The secret used to make session tokens tamper-evident
	Store      string `yaml:"store"`      // The session store backend. Either "memory" (default) or "mysql".
	MySQLDSN   string `yaml:"mysqlDSN"`   // The MySQL DSN. Required when `store` is "mysql".
}

// SweeperInfo contains the optional expired-session sweeper settings.
type SweeperInfo struct {
	Enabled         bool `yaml:"enabled"`         // Whether the background sweeper should run
	IntervalMinutes int  `yaml:"intervalMinutes"` // The sweep interval in minutes. Defaults to 10 if unset.
}

// MeetingProviderInfo contains the info needed to reach the third-party meeting provider.
type MeetingProviderInfo struct {
	BaseURL  string `yaml:"baseURL"`  // The base URL of the provider's REST API
	APIToken string `yaml:"apiToken"` // The bearer token used on provider calls
}

// LoadServerInfo loads the server config file (in YAML) which contains info needed to start a server.
//
// Parameters:
//   the path to the config file
//
// Returns:
//   the `ServerInfo` struct containing the info needed to start a server
func LoadServerInfo(configFilePath string) (ret ServerInfo, err error) {
	yamlStr, err := ioutil.ReadFile(configFilePath)
	if err != nil {
		err = errors.Wrap(err, "读取服务器配置文件失败")
		return
	}

	err = yaml.Unmarshal(yamlStr, &ret)
	if err != nil {
		err = errors.Wrap(err, "解析 YAML 文件时出现错误")
		return
	}

	return
}
