// Command uci is the UCI front-end binary: it wires an optional engine.toml
// config, a core.Position/Search/TranspositionTable-backed Engine, and the
// Protocol command loop together over stdin/stdout. It is the external
// collaborator spec.md section 6 says the core package deliberately knows
// nothing about.
package main

import (
	"flag"
	"os"

	"github.com/op/go-logging"
)

var configPath = flag.String("config", "engine.toml", "path to an optional engine.toml config file")

func main() {
	flag.Parse()

	backend := logging.NewLogBackend(os.Stderr, "", 0)
	formatter := logging.MustStringFormatter(`%{time:15:04:05.000} %{level:.4s} %{module}: %{message}`)
	logging.SetBackend(logging.NewBackendFormatter(backend, formatter))

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("loading %s: %v", *configPath, err)
	}

	engine := NewEngine(cfg)
	protocol := NewProtocol(engine)
	protocol.Run(os.Stdin, os.Stdout)
}
