// Copyright (c) 2026 Rustam Gilyazov and Contributors.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package mcp

// In this file: MCP tool definitions and handler implementations.

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpsrv "github.com/mark3labs/mcp-go/server"

	"github.com/rusq/datax/internal/chart"
	"github.com/rusq/datax/internal/dataset"
)

// errNoStore is returned by data tool handlers when the server was started
// without an analytical store.
var errNoStore = errors.New("no analytical store is attached to this server")

const (
	defLimit = 100
	minLimit = 1
	maxLimit = 1000

	previewRows = 5
)

// ─── add ──────────────────────────────────────────────────────────────────────

func (s *Server) toolAdd() mcpsrv.ServerTool {
	tool := mcplib.NewTool("add",
		mcplib.WithDescription("Add two integers and return their sum."),
		mcplib.WithNumber("a", mcplib.Description("First addend."), mcplib.Required()),
		mcplib.WithNumber("b", mcplib.Description("Second addend."), mcplib.Required()),
		mcplib.WithReadOnlyHintAnnotation(true),
		mcplib.WithIdempotentHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleAdd}
}

func (s *Server) handleAdd(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	a, ok := reqIntArg(req, "a")
	if !ok {
		return resultErr(errors.New("add: a is required and must be a number")), nil
	}
	b, ok := reqIntArg(req, "b")
	if !ok {
		return resultErr(errors.New("add: b is required and must be a number")), nil
	}
	s.logger.DebugContext(ctx, "mcp: add", "a", a, "b", b)
	return resultText(fmt.Sprintf("%d", a+b)), nil
}

// ─── get_secret_word ──────────────────────────────────────────────────────────

var secretWords = []string{"apple", "banana", "cherry"}

func (s *Server) toolSecretWord() mcpsrv.ServerTool {
	tool := mcplib.NewTool("get_secret_word",
		mcplib.WithDescription("Return a randomly chosen secret word."),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleSecretWord}
}

func (s *Server) handleSecretWord(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	word := secretWords[rand.IntN(len(secretWords))]
	s.logger.DebugContext(ctx, "mcp: get_secret_word", "word", word)
	return resultText(word), nil
}

// ─── get_current_weather ──────────────────────────────────────────────────────

func (s *Server) toolWeather() mcpsrv.ServerTool {
	tool := mcplib.NewTool("get_current_weather",
		mcplib.WithDescription("Fetch the current weather report for a city from wttr.in. Returns a plain text console-style report."),
		mcplib.WithString("city",
			mcplib.Description("City name, e.g. \"Dunedin\" or \"Palmerston North\"."),
			mcplib.Required(),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleWeather}
}

func (s *Server) handleWeather(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	city, ok := stringArg(req, "city")
	if !ok || city == "" {
		return resultErr(errors.New("get_current_weather: city is required")), nil
	}
	s.logger.DebugContext(ctx, "mcp: get_current_weather", "city", city)

	report, err := s.wx.Current(ctx, city)
	if err != nil {
		return resultErr(fmt.Errorf("get_current_weather: %w", err)), nil
	}
	return resultText(report), nil
}

// ─── load_dataset ─────────────────────────────────────────────────────────────

func (s *Server) toolLoadDataset() mcpsrv.ServerTool {
	tool := mcplib.NewTool("load_dataset",
		mcplib.WithDescription(`Load a CSV or Parquet file into the analytical store as a named dataset.

The format is detected from the file extension unless given explicitly.
Loading under an existing dataset name replaces the previous dataset.  The
response contains the dataset schema and, unless preview is false, the
first 5 rows.  Set to_parquet to also convert the source file to Parquet
(default target: the source path with the extension replaced by ".parquet").`),
		mcplib.WithString("path",
			mcplib.Description("Filesystem path of the file to load."),
			mcplib.Required(),
		),
		mcplib.WithString("name",
			mcplib.Description("Dataset name (identifier). Defaults to the file name without extension, sanitised."),
		),
		mcplib.WithString("format",
			mcplib.Description(`File format: "csv" or "parquet". Detected from the extension when empty.`),
		),
		mcplib.WithBoolean("preview",
			mcplib.Description("Include the first 5 rows in the response (default true)."),
		),
		mcplib.WithBoolean("to_parquet",
			mcplib.Description("Also convert the loaded data to a Parquet file (default false)."),
		),
		mcplib.WithString("parquet_path",
			mcplib.Description("Target path for the Parquet conversion. Defaults to the source path with a .parquet extension."),
		),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleLoadDataset}
}

// loadResult is the JSON response of the load_dataset tool.
type loadResult struct {
	Dataset     *dataset.Metadata `json:"dataset"`
	Preview     *dataset.Frame    `json:"preview,omitempty"`
	ParquetPath string            `json:"parquet_path,omitempty"`
}

func (s *Server) handleLoadDataset(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	if s.store == nil {
		return resultErr(errNoStore), nil
	}

	path, ok := stringArg(req, "path")
	if !ok || path == "" {
		return resultErr(errors.New("load_dataset: path is required")), nil
	}
	name, _ := stringArg(req, "name")
	if name == "" {
		name = dataset.DeriveName(path)
	}
	formatStr, _ := stringArg(req, "format")
	format, err := dataset.ParseFormat(formatStr)
	if err != nil {
		return resultErr(fmt.Errorf("load_dataset: format %q: %w", formatStr, err)), nil
	}

	s.logger.InfoContext(ctx, "mcp: load_dataset", "path", path, "name", name)

	md, err := s.store.Load(ctx, path, name, format)
	if err != nil {
		return resultErr(fmt.Errorf("load_dataset: %w", err)), nil
	}

	res := loadResult{Dataset: md}

	if boolArg(req, "preview", true) {
		head, err := s.store.Head(ctx, name, previewRows)
		if err != nil {
			return resultErr(fmt.Errorf("load_dataset: preview: %w", err)), nil
		}
		res.Preview = head
	}

	if boolArg(req, "to_parquet", false) {
		pqPath, _ := stringArg(req, "parquet_path")
		if pqPath == "" {
			pqPath = dataset.ParquetSibling(path)
		}
		if err := s.store.Export(ctx, name, pqPath, dataset.FParquet); err != nil {
			return resultErr(fmt.Errorf("load_dataset: convert to parquet: %w", err)), nil
		}
		res.ParquetPath = pqPath
	}

	result, err := resultJSON(res)
	if err != nil {
		return resultErr(fmt.Errorf("load_dataset: serialise: %w", err)), nil
	}
	return result, nil
}

// ─── list_datasets ────────────────────────────────────────────────────────────

func (s *Server) toolListDatasets() mcpsrv.ServerTool {
	tool := mcplib.NewTool("list_datasets",
		mcplib.WithDescription("List all datasets loaded into the analytical store. Returns names, source paths, formats, column counts and row counts."),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleListDatasets}
}

func (s *Server) handleListDatasets(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	if s.store == nil {
		return resultErr(errNoStore), nil
	}

	infos, err := s.store.List(ctx)
	if err != nil {
		return resultErr(fmt.Errorf("list_datasets: %w", err)), nil
	}
	if len(infos) == 0 {
		return resultText("No datasets are loaded. Use load_dataset to load a CSV or Parquet file."), nil
	}

	result, err := resultJSON(infos)
	if err != nil {
		return resultErr(fmt.Errorf("list_datasets: serialise: %w", err)), nil
	}
	return result, nil
}

// ─── describe_dataset ─────────────────────────────────────────────────────────

func (s *Server) toolDescribeDataset() mcpsrv.ServerTool {
	tool := mcplib.NewTool("describe_dataset",
		mcplib.WithDescription("Return the schema (column names, types, nullability) and row count of a loaded dataset."),
		mcplib.WithString("name",
			mcplib.Description("Dataset name as registered by load_dataset."),
			mcplib.Required(),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleDescribeDataset}
}

func (s *Server) handleDescribeDataset(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	if s.store == nil {
		return resultErr(errNoStore), nil
	}

	name, ok := stringArg(req, "name")
	if !ok || name == "" {
		return resultErr(errors.New("describe_dataset: name is required")), nil
	}

	md, err := s.store.Describe(ctx, name)
	if err != nil {
		if errors.Is(err, dataset.ErrNotFound) {
			return resultText(fmt.Sprintf("Dataset %q is not loaded. Use list_datasets to see what is available.", name)), nil
		}
		return resultErr(fmt.Errorf("describe_dataset: %w", err)), nil
	}

	result, err := resultJSON(md)
	if err != nil {
		return resultErr(fmt.Errorf("describe_dataset: serialise: %w", err)), nil
	}
	return result, nil
}

// ─── filter_dataset ───────────────────────────────────────────────────────────

func (s *Server) toolFilterDataset() mcpsrv.ServerTool {
	tool := mcplib.NewTool("filter_dataset",
		mcplib.WithDescription(`Filter the rows of a loaded dataset with a SQL boolean expression.

The expression is evaluated as a WHERE clause against the dataset, e.g.:
age > 30 AND country = 'China'.  Returns the matching rows as JSON (column
names plus row values), up to the requested limit.`),
		mcplib.WithString("name",
			mcplib.Description("Dataset name as registered by load_dataset."),
			mcplib.Required(),
		),
		mcplib.WithString("expr",
			mcplib.Description("SQL boolean expression, e.g. \"age > 30 AND country = 'China'\"."),
			mcplib.Required(),
		),
		mcplib.WithNumber("limit",
			mcplib.Description("Maximum number of rows to return (1–1000, default 100)."),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleFilterDataset}
}

func (s *Server) handleFilterDataset(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	if s.store == nil {
		return resultErr(errNoStore), nil
	}

	name, ok := stringArg(req, "name")
	if !ok || name == "" {
		return resultErr(errors.New("filter_dataset: name is required")), nil
	}
	expr, ok := stringArg(req, "expr")
	if !ok || expr == "" {
		return resultErr(errors.New("filter_dataset: expr is required")), nil
	}

	limit := intArg(req, "limit", defLimit)
	limit = max(min(limit, maxLimit), minLimit) // ensure within bounds

	s.logger.DebugContext(ctx, "mcp: filter_dataset", "name", name, "expr", expr, "limit", limit)

	frame, err := s.store.Filter(ctx, name, expr, limit)
	if err != nil {
		if errors.Is(err, dataset.ErrNotFound) {
			return resultText(fmt.Sprintf("Dataset %q is not loaded. Use list_datasets to see what is available.", name)), nil
		}
		return resultErr(fmt.Errorf("filter_dataset: %w", err)), nil
	}
	if frame.Empty() {
		return resultText(fmt.Sprintf("No rows of %q match the expression %q.", name, expr)), nil
	}

	result, err := resultJSON(frame)
	if err != nil {
		return resultErr(fmt.Errorf("filter_dataset: serialise: %w", err)), nil
	}
	return result, nil
}

// ─── export_dataset ───────────────────────────────────────────────────────────

func (s *Server) toolExportDataset() mcpsrv.ServerTool {
	tool := mcplib.NewTool("export_dataset",
		mcplib.WithDescription(`Write a loaded dataset to a CSV or Parquet file.

The output format is detected from the target file extension unless given
explicitly.  CSV output includes a header row.`),
		mcplib.WithString("name",
			mcplib.Description("Dataset name as registered by load_dataset."),
			mcplib.Required(),
		),
		mcplib.WithString("path",
			mcplib.Description("Target file path."),
			mcplib.Required(),
		),
		mcplib.WithString("format",
			mcplib.Description(`Output format: "csv" or "parquet". Detected from the extension when empty.`),
		),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleExportDataset}
}

func (s *Server) handleExportDataset(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	if s.store == nil {
		return resultErr(errNoStore), nil
	}

	name, ok := stringArg(req, "name")
	if !ok || name == "" {
		return resultErr(errors.New("export_dataset: name is required")), nil
	}
	path, ok := stringArg(req, "path")
	if !ok || path == "" {
		return resultErr(errors.New("export_dataset: path is required")), nil
	}
	formatStr, _ := stringArg(req, "format")
	format, err := dataset.ParseFormat(formatStr)
	if err != nil {
		return resultErr(fmt.Errorf("export_dataset: format %q: %w", formatStr, err)), nil
	}

	if err := s.store.Export(ctx, name, path, format); err != nil {
		if errors.Is(err, dataset.ErrNotFound) {
			return resultText(fmt.Sprintf("Dataset %q is not loaded. Use list_datasets to see what is available.", name)), nil
		}
		return resultErr(fmt.Errorf("export_dataset: %w", err)), nil
	}
	return resultText(fmt.Sprintf("Dataset %q written to %q.", name, path)), nil
}

// ─── plot_bar ─────────────────────────────────────────────────────────────────

func (s *Server) toolPlotBar() mcpsrv.ServerTool {
	tool := mcplib.NewTool("plot_bar",
		mcplib.WithDescription(`Render a label-to-value mapping as a bar chart and save it as a PNG file.

Bars are ordered alphabetically by label.  Missing directories of the
target path are created.`),
		mcplib.WithObject("data",
			mcplib.Description(`Data to plot: an object mapping labels to numeric values, e.g. {"apples": 3, "pears": 5}.`),
			mcplib.Required(),
		),
		mcplib.WithString("save_path",
			mcplib.Description("Target PNG file path."),
			mcplib.Required(),
		),
		mcplib.WithString("title",
			mcplib.Description(`Chart title (default "Dict Plot").`),
		),
		mcplib.WithString("ylabel",
			mcplib.Description(`Y axis label (default "Values").`),
		),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handlePlotBar}
}

func (s *Server) handlePlotBar(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	data, err := numberMapArg(req, "data")
	if err != nil {
		return resultErr(fmt.Errorf("plot_bar: %w", err)), nil
	}
	savePath, ok := stringArg(req, "save_path")
	if !ok || savePath == "" {
		return resultErr(errors.New("plot_bar: save_path is required")), nil
	}
	title, _ := stringArg(req, "title")
	ylabel, _ := stringArg(req, "ylabel")

	s.logger.InfoContext(ctx, "mcp: plot_bar", "bars", len(data), "path", savePath)

	if err := chart.Save(savePath, chart.FromMap(data), chart.Options{
		Title:  title,
		YLabel: ylabel,
	}); err != nil {
		return resultErr(fmt.Errorf("plot_bar: %w", err)), nil
	}
	return resultText(fmt.Sprintf("Chart with %d bars saved to %q.", len(data), savePath)), nil
}
