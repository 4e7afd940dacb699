package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"github.com/hackhitchin/hh-wp-energy-graph/service"
)

var (
	port       = flag.Int("port", 0, "Port to serve energy charts on; overrides the config file")
	configPath = flag.String("config", "", "Path to a YAML service config")
	dataRoot   = flag.String("data_root", "", "The root path for meter sample files; overrides the config file")
)

func main() {
	flag.Parse()

	cfg := service.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = service.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %s", err)
		}
	}
	if *port != 0 {
		cfg.ListenPort = *port
	}
	if *dataRoot != "" {
		cfg.DataRoot = *dataRoot
	}

	svc, err := service.New(cfg, 10)
	if err != nil {
		log.Fatalf("Failed to create energy chart service: %s", err)
	}
	defer svc.Close()

	router := mux.NewRouter()
	svc.RegisterHandlers(router)
	hostname, err := os.Hostname()
	if err != nil {
		log.Fatalf("Failed to get hostname: %s", err)
	}

	// Provide OSC 8 (https://en.wikipedia.org/wiki/ANSI_escape_code#OSC) link for
	// compatible terminals.
	fmt.Printf("Serving energy charts at \x1B]8;;http://%[1]s:%[2]d\x07http://%[1]s:%[2]d\x1B]8;;\x07", hostname, cfg.ListenPort)
	http.ListenAndServe(
		fmt.Sprintf(":%d", cfg.ListenPort),
		router,
	)
}
