/*
	Copyright 2023 Google Inc.
	Licensed under the Apache License, Version 2.0 (the "License");
	you may not use this file except in compliance with the License.
	You may obtain a copy of the License at
		https://www.apache.org/licenses/LICENSE-2.0
	Unless required by applicable law or agreed to in writing, software
	distributed under the License is distributed on an "AS IS" BASIS,
	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
	See the License for the specific language governing permissions and
	limitations under the License.
*/

// Package service assembles the energy chart server: a file-backed sample
// fetcher, a caching data source, a render dispatcher, and the HTTP
// handlers, with a filesystem watcher keeping the caches fresh.
package service

import (
	"log"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/gorilla/mux"

	"github.com/hackhitchin/hh-wp-energy-graph/handlers"
	renderdispatcher "github.com/hackhitchin/hh-wp-energy-graph/render_dispatcher"
)

// Service serves rendered energy charts for the sample files under a data
// root directory.
type Service struct {
	chartHandler *handlers.ChartHandler
	dataSource   *DataSource
	watcher      *fsnotify.Watcher
}

// New returns a Service for the provided configuration, with the specified
// cache capacity.  The returned Service watches the data root and must be
// released with Close.
func New(cfg Config, cap int) (*Service, error) {
	ds, err := NewDataSource(cfg, newFileFetcher(cfg.DataRoot), cap)
	if err != nil {
		return nil, err
	}
	rd, err := renderdispatcher.New(ds)
	if err != nil {
		return nil, err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(cfg.DataRoot); err != nil {
		watcher.Close()
		return nil, err
	}
	s := &Service{
		chartHandler: handlers.NewChartHandler(rd),
		dataSource:   ds,
		watcher:      watcher,
	}
	go s.watch()
	return s, nil
}

// watch evicts cached charts as their backing sample files change.  It runs
// until the watcher is closed.
func (s *Service) watch() {
	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if filepath.Ext(event.Name) != sampleExtension {
				continue
			}
			chartName := strings.TrimSuffix(filepath.Base(event.Name), sampleExtension)
			s.dataSource.Evict(chartName)
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("Sample watcher error: %s", err)
		}
	}
}

// RegisterHandlers installs the service's routes on the provided router.
func (s *Service) RegisterHandlers(r *mux.Router) {
	s.chartHandler.Register(r)
}

// Close releases the service's filesystem watcher.
func (s *Service) Close() error {
	return s.watcher.Close()
}
