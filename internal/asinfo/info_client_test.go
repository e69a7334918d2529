// Copyright 2024 Aerospike, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package asinfo

import (
	"encoding/base64"
	"testing"

	a "github.com/aerospike/aerospike-client-go/v7"
	"github.com/aerospike/aslua/internal/asinfo/mocks"
	"github.com/aerospike/aslua/models"
	"github.com/stretchr/testify/require"
)

const testUDFSource = "function hello(rec) return 'hello' end"

type fakeNode struct {
	infoGetter
	host *a.Host
}

func (n *fakeNode) GetHost() *a.Host {
	return n.host
}

func Test_parseInfoResponse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		resp    string
		want    []infoMap
		wantErr bool
	}{
		{
			name: "empty",
			resp: "",
		},
		{
			name: "only separator",
			resp: ";",
		},
		{
			name: "two objects",
			resp: "foo=bar:baz=qux;FOO=1:b64=YQ==;",
			want: []infoMap{
				{"foo": "bar", "baz": "qux"},
				{"foo": "1", "b64": "YQ=="},
			},
		},
		{
			name:    "missing separator",
			resp:    "foo=bar:baz",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseInfoResponse(tt.resp, ";", ":", "=")
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.Equal(t, len(tt.want), len(got))

			for i := range tt.want {
				require.Equal(t, tt.want[i], got[i])
			}
		})
	}
}

func Test_parseResultResponse(t *testing.T) {
	t.Parallel()

	v, err := parseResultResponse("cmd", map[string]string{"cmd": "ok"})
	require.NoError(t, err)
	require.Equal(t, "ok", v)

	_, err = parseResultResponse("cmd", map[string]string{"cmd": "ERROR:4:bad"})
	require.ErrorContains(t, err, "command cmd failed")

	_, err = parseResultResponse("cmd", map[string]string{})
	require.ErrorContains(t, err, "no response")
}

func Test_parseJobStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status string
		want   models.JobStatus
	}{
		{"active(ok)", models.JobInProgress},
		{"IN-PROGRESS", models.JobInProgress},
		{"done(ok)", models.JobCompleted},
		{"done", models.JobCompleted},
		{"done(abandoned-unknown)", models.JobAborted},
		{"done(user-aborted)", models.JobAborted},
		{"", models.JobUndefined},
		{"weird", models.JobUndefined},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, parseJobStatus(tt.status), tt.status)
	}
}

func Test_mergeJobStatus(t *testing.T) {
	t.Parallel()

	require.Equal(t, models.JobInProgress, mergeJobStatus(models.JobAborted, models.JobInProgress))
	require.Equal(t, models.JobAborted, mergeJobStatus(models.JobCompleted, models.JobAborted))
	require.Equal(t, models.JobAborted, mergeJobStatus(models.JobAborted, models.JobCompleted))
	require.Equal(t, models.JobUndefined, mergeJobStatus(models.JobCompleted, models.JobUndefined))
	require.Equal(t, models.JobCompleted, mergeJobStatus(models.JobCompleted, models.JobCompleted))
}

func Test_getJobStatus(t *testing.T) {
	t.Parallel()

	const queryShow = "query-show:trid=42"

	newNode := func(build, cmd, resp string) infoGetter {
		m := mocks.NewMockinfoGetter(t)
		m.EXPECT().RequestInfo((*a.InfoPolicy)(nil), "build").Return(map[string]string{"build": build}, nil)
		m.EXPECT().RequestInfo((*a.InfoPolicy)(nil), cmd).Return(map[string]string{cmd: resp}, nil)

		return m
	}

	tests := []struct {
		name    string
		nodes   func() []infoGetter
		want    models.JobStatus
		wantErr bool
	}{
		{
			name: "all done",
			nodes: func() []infoGetter {
				return []infoGetter{
					newNode("7.0.0.1", queryShow, "trid=42:job-type=background-ops:status=done(ok):recs-succeeded=10"),
					newNode("7.0.0.1", queryShow, "trid=42:status=done(ok)"),
				}
			},
			want: models.JobCompleted,
		},
		{
			name: "one node still running",
			nodes: func() []infoGetter {
				return []infoGetter{
					newNode("7.0.0.1", queryShow, "trid=42:status=done(ok)"),
					newNode("7.0.0.1", queryShow, "trid=42:status=active(ok)"),
				}
			},
			want: models.JobInProgress,
		},
		{
			name: "aborted",
			nodes: func() []infoGetter {
				return []infoGetter{newNode("7.0.0.1", queryShow, "trid=42:status=done(user-aborted)")}
			},
			want: models.JobAborted,
		},
		{
			name: "unknown on node",
			nodes: func() []infoGetter {
				return []infoGetter{newNode("7.0.0.1", queryShow, "ERROR:2:job not found")}
			},
			want: models.JobCompleted,
		},
		{
			name: "old server",
			nodes: func() []infoGetter {
				return []infoGetter{
					newNode("5.7.0.0", "jobs:module=scan;cmd=get-job;trid=42", "module=scan:trid=42:status=active(ok)"),
				}
			},
			want: models.JobInProgress,
		},
		{
			name: "node error",
			nodes: func() []infoGetter {
				return []infoGetter{newNode("7.0.0.1", queryShow, "ERROR:4:bad trid")}
			},
			wantErr: true,
		},
		{
			name: "build failed",
			nodes: func() []infoGetter {
				return []infoGetter{newMockInfoGetter(t, "build", nil, a.ErrNetTimeout)}
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := getJobStatus(tt.nodes(), nil, 42)
			if tt.wantErr {
				require.Error(t, err)
				require.Equal(t, models.JobUndefined, got)

				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func Test_requestNodesInfo(t *testing.T) {
	t.Parallel()

	nodes := []infoNode{
		&fakeNode{
			infoGetter: newMockInfoGetter(t, "build", map[string]string{"build": "7.0.0.1"}, nil),
			host:       a.NewHost("10.0.0.1", 3000),
		},
		&fakeNode{
			infoGetter: newMockInfoGetter(t, "build", nil, a.ErrNetTimeout),
			host:       a.NewHost("10.0.0.2", 3100),
		},
		&fakeNode{
			infoGetter: newMockInfoGetter(t, "build", map[string]string{}, nil),
			host:       a.NewHost("10.0.0.3", 3000),
		},
	}

	entries := requestNodesInfo(nodes, nil, "build")
	require.Len(t, entries, 3)

	require.Equal(t, models.InfoEntry{Host: "10.0.0.1", Port: 3000, Request: "build", Response: "7.0.0.1"}, entries[0])

	require.Equal(t, "10.0.0.2", entries[1].Host)
	require.Equal(t, 3100, entries[1].Port)
	require.Error(t, entries[1].Err)

	require.ErrorContains(t, entries[2].Err, "no response")
}

func Test_getUDF(t *testing.T) {
	t.Parallel()

	content := base64.StdEncoding.EncodeToString([]byte(testUDFSource))
	cmd := "udf-get:filename=test.lua"

	udf, err := getUDF(newMockInfoGetter(t, cmd, map[string]string{
		cmd: "gen=qvnT/c3DvYt7ZMFGAi6fUWu/BGE=;type=LUA;content=" + content,
	}, nil), "test.lua", nil)
	require.NoError(t, err)
	require.Equal(t, "test.lua", udf.Name)
	require.Equal(t, "LUA", udf.Type)
	require.Equal(t, []byte(testUDFSource), udf.Content)
	require.Equal(t, len(testUDFSource), udf.Size)
	require.Len(t, udf.Hash, 40)

	_, err = getUDF(newMockInfoGetter(t, cmd, map[string]string{cmd: "error=not_found"}, nil), "test.lua", nil)
	require.ErrorIs(t, err, ErrUDFNotFound)

	_, err = getUDF(newMockInfoGetter(t, cmd, map[string]string{cmd: "type=PYTHON;content=" + content}, nil),
		"test.lua", nil)
	require.ErrorContains(t, err, "invalid udf language type")

	_, err = getUDF(newMockInfoGetter(t, cmd, map[string]string{cmd: "type=LUA;content=%%%"}, nil), "test.lua", nil)
	require.ErrorContains(t, err, "failed to decode udf content")

	_, err = getUDF(newMockInfoGetter(t, cmd, nil, a.ErrConnectionPoolEmpty), "test.lua", nil)
	require.Error(t, err)
}

func Test_getUDFs(t *testing.T) {
	t.Parallel()

	udfs, err := getUDFs(newMockInfoGetter(t, "udf-list", map[string]string{
		"udf-list": "filename=a.lua,hash=706c57cb29e027221560a3cb4b693573ada98bf2,type=LUA;" +
			"filename=b.lua,hash=0000000000000000000000000000000000000000,type=LUA;",
	}, nil), nil)
	require.NoError(t, err)
	require.Equal(t, []*models.UDFFile{
		{Name: "a.lua", Hash: "706c57cb29e027221560a3cb4b693573ada98bf2", Type: "LUA"},
		{Name: "b.lua", Hash: "0000000000000000000000000000000000000000", Type: "LUA"},
	}, udfs)

	udfs, err = getUDFs(newMockInfoGetter(t, "udf-list", map[string]string{"udf-list": ""}, nil), nil)
	require.NoError(t, err)
	require.Empty(t, udfs)

	_, err = getUDFs(newMockInfoGetter(t, "udf-list", map[string]string{"udf-list": "hash=1,type=LUA"}, nil), nil)
	require.ErrorContains(t, err, "missing filename")

	_, err = getUDFs(newMockInfoGetter(t, "udf-list", nil, a.ErrNetTimeout), nil)
	require.Error(t, err)
}
