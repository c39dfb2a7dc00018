package main

import (
	"flag"

	"github.com/blobgate/blobgate/internal/bootstrap"
)

var configFile string

func init() {
	flag.StringVar(&configFile, "conf", "conf.d/config.toml", "conf file path, e.g. -conf ./conf.d/config.toml")
}

func main() {
	flag.Parse()

	app, cleanup, err := bootstrap.Bootstrap(configFile)
	if err != nil {
		panic(err)
	}

	bootstrap.Run(app, cleanup)
}
