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

import (
	"context"
	"errors"
	"testing"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpsrv "github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/rusq/datax/internal/dataset"
	"github.com/rusq/datax/internal/dataset/mock_dataset"
)

// newTestServer creates a *Server backed by a MockStorer with a minimum
// Name expectation set.
func newTestServer(t *testing.T, ctrl *gomock.Controller) (*Server, *mock_dataset.MockStorer) {
	t.Helper()
	m := mock_dataset.NewMockStorer(ctrl)
	m.EXPECT().Name().Return(dataset.InMemory).AnyTimes()
	srv := New(WithStore(m), WithLogger(nil))
	require.NotNil(t, srv)
	return srv, m
}

// toolReq builds a CallToolRequest with the given argument map.
func toolReq(args map[string]any) mcplib.CallToolRequest {
	req := mcplib.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

// ─── New / options ────────────────────────────────────────────────────────────

func TestNew_noOptions(t *testing.T) {
	srv := New()
	require.NotNil(t, srv)
	assert.NotNil(t, srv.mcp)
	assert.Nil(t, srv.store) // no store by default
	assert.NotNil(t, srv.wx)
	assert.NotNil(t, srv.logger)
}

func TestNew_withLogger_nil(t *testing.T) {
	// A nil logger must not panic and must fall back to slog.Default().
	assert.NotPanics(t, func() {
		srv := New(WithLogger(nil))
		assert.NotNil(t, srv.logger)
	})
}

func TestNew_withStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	srv, _ := newTestServer(t, ctrl)
	assert.NotNil(t, srv.mcp)
	assert.NotNil(t, srv.store)
}

func TestAddTool(t *testing.T) {
	ctrl := gomock.NewController(t)
	srv, _ := newTestServer(t, ctrl)

	extra := mcpsrv.ServerTool{
		Tool: mcplib.NewTool("extra_tool", mcplib.WithDescription("extra")),
		Handler: func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
			return resultText("ok"), nil
		},
	}
	assert.NotPanics(t, func() {
		srv.AddTool(extra)
	})
}

func TestInstructions_withStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mock_dataset.NewMockStorer(ctrl)
	m.EXPECT().Name().Return("analytics.duckdb").AnyTimes()

	got := instructions(m)
	assert.Contains(t, got, "analytics.duckdb")
	assert.Contains(t, got, "load_dataset")
}

func TestInstructions_nilStore(t *testing.T) {
	got := instructions(nil)
	assert.Contains(t, got, "load_dataset")
	assert.NotContains(t, got, "nil")
}

// ─── result helpers ───────────────────────────────────────────────────────────

func TestResultText(t *testing.T) {
	r := resultText("hello")
	require.NotNil(t, r)
	assert.False(t, r.IsError)
	require.Len(t, r.Content, 1)
	txt, ok := r.Content[0].(mcplib.TextContent)
	require.True(t, ok)
	assert.Equal(t, "hello", txt.Text)
}

func TestResultErr(t *testing.T) {
	r := resultErr(errors.New("boom"))
	require.NotNil(t, r)
	assert.True(t, r.IsError)
	require.Len(t, r.Content, 1)
	txt, ok := r.Content[0].(mcplib.TextContent)
	require.True(t, ok)
	assert.Equal(t, "boom", txt.Text)
}

// ─── argument helpers ─────────────────────────────────────────────────────────

func TestStringArg(t *testing.T) {
	tests := []struct {
		name   string
		args   map[string]any
		want   string
		wantOK bool
	}{
		{"present", map[string]any{"k": "v"}, "v", true},
		{"absent", map[string]any{"x": "v"}, "", false},
		{"nil args", nil, "", false},
		{"wrong type", map[string]any{"k": 42}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := stringArg(toolReq(tt.args), "k")
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIntArg(t *testing.T) {
	tests := []struct {
		name string
		args map[string]any
		want int
	}{
		{"float64", map[string]any{"k": float64(7)}, 7},
		{"int", map[string]any{"k": 7}, 7},
		{"absent", map[string]any{}, 42},
		{"nil args", nil, 42},
		{"wrong type", map[string]any{"k": "x"}, 42},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, intArg(toolReq(tt.args), "k", 42))
		})
	}
}

func TestReqIntArg(t *testing.T) {
	got, ok := reqIntArg(toolReq(map[string]any{"k": float64(3)}), "k")
	assert.True(t, ok)
	assert.Equal(t, 3, got)

	_, ok = reqIntArg(toolReq(nil), "k")
	assert.False(t, ok)

	_, ok = reqIntArg(toolReq(map[string]any{"k": "nope"}), "k")
	assert.False(t, ok)
}

func TestBoolArg(t *testing.T) {
	assert.True(t, boolArg(toolReq(map[string]any{"k": true}), "k", false))
	assert.False(t, boolArg(toolReq(map[string]any{"k": false}), "k", true))
	assert.True(t, boolArg(toolReq(nil), "k", true))
	assert.True(t, boolArg(toolReq(map[string]any{"k": "yes"}), "k", true))
}

func TestNumberMapArg(t *testing.T) {
	tests := []struct {
		name    string
		args    map[string]any
		want    map[string]float64
		wantErr bool
	}{
		{
			name: "numbers",
			args: map[string]any{"data": map[string]any{"a": float64(1), "b": 2}},
			want: map[string]float64{"a": 1, "b": 2},
		},
		{name: "absent", args: map[string]any{}, wantErr: true},
		{name: "nil args", args: nil, wantErr: true},
		{name: "not an object", args: map[string]any{"data": "x"}, wantErr: true},
		{name: "non numeric value", args: map[string]any{"data": map[string]any{"a": "x"}}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := numberMapArg(toolReq(tt.args), "data")
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
