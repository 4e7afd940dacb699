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

// Package handlers provides the HTTP surface serving rendered energy
// charts, both as raw SVG documents and embedded in a minimal HTML page.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/google/safehtml"
	"github.com/google/safehtml/template"
	"github.com/google/safehtml/uncheckedconversions"
	"github.com/gorilla/mux"

	renderdispatcher "github.com/hackhitchin/hh-wp-energy-graph/render_dispatcher"
)

// chartRenderer describes types capable of rendering named charts to SVG
// markup.
type chartRenderer interface {
	RenderCharts(ctx context.Context, names ...string) (map[string]string, error)
}

// ChartHandler serves rendered charts.
type ChartHandler struct {
	renderer chartRenderer
}

// NewChartHandler returns a ChartHandler rendering via the provided
// renderer.
func NewChartHandler(renderer chartRenderer) *ChartHandler {
	return &ChartHandler{
		renderer: renderer,
	}
}

// Register installs the chart routes on the provided router.
func (ch *ChartHandler) Register(r *mux.Router) {
	r.HandleFunc("/chart/{name}.svg", ch.serveChart).Methods(http.MethodGet)
	r.HandleFunc("/view/{name}", ch.servePage).Methods(http.MethodGet)
}

// statusOf maps a render failure to its HTTP status: unknown or unbacked
// charts are the client's mistake, anything else is ours.
func statusOf(err error) int {
	var uce *renderdispatcher.UnsupportedChartError
	if errors.As(err, &uce) || errors.Is(err, fs.ErrNotExist) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func (ch *ChartHandler) render(req *http.Request) (string, error) {
	name := mux.Vars(req)["name"]
	rendered, err := ch.renderer.RenderCharts(req.Context(), name)
	if err != nil {
		return "", err
	}
	return rendered[name], nil
}

func (ch *ChartHandler) serveChart(w http.ResponseWriter, req *http.Request) {
	markup, err := ch.render(req)
	if err != nil {
		http.Error(w, "Failed to render chart: "+err.Error(), statusOf(err))
		return
	}
	w.Header().Add("Content-Type", "image/svg+xml")
	fmt.Fprint(w, markup)
}

var viewTemplate = template.Must(template.New("view").ParseFromTrustedTemplate(
	template.MakeTrustedTemplate(`<!DOCTYPE html>
<html>
<head><title>Energy consumption: {{.Name}}</title></head>
<body>
<h1>{{.Name}}</h1>
{{if .Fallback}}<p class="chart-fallback">{{.Fallback}}</p>{{else}}{{.Chart}}{{end}}
</body>
</html>
`)))

type viewData struct {
	Name     string
	Chart    safehtml.HTML
	Fallback string
}

func (ch *ChartHandler) servePage(w http.ResponseWriter, req *http.Request) {
	data := viewData{
		Name: mux.Vars(req)["name"],
	}
	markup, err := ch.render(req)
	w.Header().Add("Content-Type", "text/html; charset=utf-8")
	if err != nil {
		// The page is still served; the chart's spot carries a fallback
		// message instead of markup.
		w.WriteHeader(statusOf(err))
		data.Fallback = "This chart is not available right now."
	} else {
		// The serializer only ever emits well-formed SVG with escaped text
		// content.
		data.Chart = uncheckedconversions.HTMLFromStringKnownToSatisfyTypeContract(markup)
	}
	if err := viewTemplate.Execute(w, data); err != nil {
		http.Error(w, "Failed to render page: "+err.Error(), http.StatusInternalServerError)
	}
}
