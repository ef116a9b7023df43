package main

import (
	"flag"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/Aehsan4004/hashmap/config"
	"github.com/Aehsan4004/hashmap/demo"
	"github.com/Aehsan4004/hashmap/server"
	"github.com/Aehsan4004/hashmap/storage"
)

func main() {
	configPath := flag.String("config", "", "path to config file, defaults to ./hashmap.yml or /etc/hashmap/hashmap.yml")
	host := flag.String("host", "", "host name to bind to, overrides the config file")
	port := flag.Int("port", 0, "port to listen on, overrides the config file")
	logLevel := flag.String("log-level", "", "log level, overrides the config file")
	runDemo := flag.Bool("demo", false, "print the map and set walkthrough and exit")
	flag.Parse()

	if *runDemo {
		if err := demo.Run(os.Stdout); err != nil {
			log.Fatal(err)
		}
		return
	}

	cfg, err := config.Load(afero.NewOsFs(), *configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *host != "" {
		cfg.Host = *host
	}
	if *port != 0 {
		cfg.Port = *port
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	log.SetLevel(level)

	store := storage.New()
	if err := store.Seed(cfg.Seed); err != nil {
		log.Fatal(err)
	}

	s, err := server.New(store)
	if err != nil {
		log.Fatal(err)
	}
	log.Fatal(s.ListenAndServe(cfg.ListenOn()))
}
