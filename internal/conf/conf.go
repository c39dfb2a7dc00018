package conf

import (
	"fmt"
	"sync"

	"github.com/blobgate/blobgate/pkg/conf"
	httpx "github.com/blobgate/blobgate/pkg/http"
	"github.com/blobgate/blobgate/pkg/log"
)

// ProviderConf is one named backend in the configuration file. At most one
// entry should be marked active; when several are, the first wins.
type ProviderConf struct {
	Name      string
	Type      string
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseTLS    bool
	BasePath  string
	Active    bool
}

type AppConfig struct {
	Log       log.Conf
	Http      httpx.Http
	Providers []ProviderConf
}

var (
	cfg  AppConfig
	once sync.Once
)

// NewConf loads the application configuration once per process.
func NewConf(confFile string) AppConfig {
	once.Do(func() {
		if err := conf.LoadConfigFile(confFile, &cfg); err != nil {
			panic(fmt.Sprintf("load conf file error: %s", err))
		}
	})
	return cfg
}
