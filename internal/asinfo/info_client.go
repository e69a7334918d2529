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
	"crypto/sha1" //nolint:gosec // matches the hash the server reports in udf-list
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	a "github.com/aerospike/aerospike-client-go/v7"
	"github.com/aerospike/aslua/models"
)

const (
	cmdBuild     = "build"
	cmdUDFList   = "udf-list"
	cmdUDFGet    = "udf-get:filename=%s"
	cmdQueryShow = "query-show:trid=%d"
	cmdScanJob   = "jobs:module=scan;cmd=get-job;trid=%d"

	cmdRespErrPrefix = "ERROR"
	// Returned by a node that does not know the job.
	cmdRespNotFoundPrefix = "ERROR:2"
)

// ErrUDFNotFound is returned when the requested module is not registered.
var ErrUDFNotFound = errors.New("udf not found")

type aerospikeClient interface {
	Cluster() *a.Cluster
}

// InfoClient issues info commands against the nodes of a cluster.
type InfoClient struct {
	policy  *a.InfoPolicy
	cluster *a.Cluster
}

func NewInfoClientFromAerospike(aeroClient aerospikeClient, policy *a.InfoPolicy) *InfoClient {
	return &InfoClient{
		cluster: aeroClient.Cluster(),
		policy:  policy,
	}
}

// Request runs a single command on a random node and returns its raw answer.
func (ic *InfoClient) Request(cmd string) (string, error) {
	node, err := ic.cluster.GetRandomNode()
	if err != nil {
		return "", err
	}

	return requestRaw(node, ic.policy, cmd)
}

// GetUDF fetches a registered module with its content.
func (ic *InfoClient) GetUDF(name string) (*models.UDFFile, error) {
	node, err := ic.cluster.GetRandomNode()
	if err != nil {
		return nil, err
	}

	return getUDF(node, name, ic.policy)
}

// GetUDFs lists registered modules without their content.
func (ic *InfoClient) GetUDFs() ([]*models.UDFFile, error) {
	node, err := ic.cluster.GetRandomNode()
	if err != nil {
		return nil, err
	}

	return getUDFs(node, ic.policy)
}

// GetNodesInfo runs the command on every active node. A failed node is
// reported in its entry and does not fail the call.
func (ic *InfoClient) GetNodesInfo(cmd string) ([]models.InfoEntry, error) {
	nodes := ic.activeNodes()
	if len(nodes) == 0 {
		return nil, a.ErrClusterIsEmpty
	}

	infoNodes := make([]infoNode, len(nodes))
	for i := range nodes {
		infoNodes[i] = nodes[i]
	}

	return requestNodesInfo(infoNodes, ic.policy, cmd), nil
}

// GetJobStatus reports the cluster wide state of a background scan.
func (ic *InfoClient) GetJobStatus(taskID uint64) (models.JobStatus, error) {
	nodes := ic.activeNodes()
	if len(nodes) == 0 {
		return models.JobUndefined, a.ErrClusterIsEmpty
	}

	getters := make([]infoGetter, len(nodes))
	for i := range nodes {
		getters[i] = nodes[i]
	}

	return getJobStatus(getters, ic.policy, taskID)
}

func (ic *InfoClient) activeNodes() []*a.Node {
	nodes := ic.cluster.GetNodes()
	active := make([]*a.Node, 0, len(nodes))

	for _, node := range nodes {
		if node.IsActive() {
			active = append(active, node)
		}
	}

	return active
}

// ***** Utility functions *****

func requestRaw(node infoGetter, policy *a.InfoPolicy, cmd string) (string, error) {
	resp, aerr := node.RequestInfo(policy, cmd)
	if aerr != nil {
		return "", aerr
	}

	v, ok := resp[cmd]
	if !ok {
		return "", fmt.Errorf("no response for command %s", cmd)
	}

	return v, nil
}

func requestNodesInfo(nodes []infoNode, policy *a.InfoPolicy, cmd string) []models.InfoEntry {
	entries := make([]models.InfoEntry, 0, len(nodes))

	for _, node := range nodes {
		entry := models.InfoEntry{Request: cmd}

		if host := node.GetHost(); host != nil {
			entry.Host = host.Name
			entry.Port = host.Port
		}

		entry.Response, entry.Err = requestRaw(node, policy, cmd)
		entries = append(entries, entry)
	}

	return entries
}

func parseResultResponse(cmd string, result map[string]string) (string, error) {
	v, ok := result[cmd]
	if !ok {
		return "", fmt.Errorf("no response for command %s", cmd)
	}

	if strings.Contains(v, cmdRespErrPrefix) {
		return "", fmt.Errorf("command %s failed: %s", cmd, v)
	}

	return v, nil
}

func jobCommand(version AerospikeVersion, taskID uint64) string {
	if version.IsGreaterOrEqual(AerospikeVersionSupportsQueryShow) {
		return fmt.Sprintf(cmdQueryShow, taskID)
	}

	return fmt.Sprintf(cmdScanJob, taskID)
}

// getJobStatus merges the job state reported by every node.
func getJobStatus(nodes []infoGetter, policy *a.InfoPolicy, taskID uint64) (models.JobStatus, error) {
	status := models.JobCompleted

	for _, node := range nodes {
		version, err := getAerospikeVersion(node, policy)
		if err != nil {
			return models.JobUndefined, fmt.Errorf("failed to get aerospike version: %w", err)
		}

		cmd := jobCommand(version, taskID)

		resp, err := node.RequestInfo(policy, cmd)
		if err != nil {
			return models.JobUndefined, fmt.Errorf("failed to get job %d status: %w", taskID, err)
		}

		nodeStatus, err := parseJobResponse(cmd, resp)
		if err != nil {
			return models.JobUndefined, err
		}

		status = mergeJobStatus(status, nodeStatus)
	}

	return status, nil
}

func parseJobResponse(cmd string, resp map[string]string) (models.JobStatus, error) {
	if strings.HasPrefix(resp[cmd], cmdRespNotFoundPrefix) {
		// Finished jobs are eventually dropped from the node's job list.
		return models.JobCompleted, nil
	}

	result, err := parseResultResponse(cmd, resp)
	if err != nil {
		return models.JobUndefined, err
	}

	job, err := parseInfoObject(result, ":", "=")
	if err != nil {
		return models.JobUndefined, fmt.Errorf("failed to parse job response: %w", err)
	}

	return parseJobStatus(job["status"]), nil
}

func parseJobStatus(status string) models.JobStatus {
	status = strings.ToLower(status)

	switch {
	case strings.HasPrefix(status, "active"), strings.HasPrefix(status, "in-progress"):
		return models.JobInProgress
	case status == "done(ok)" || status == "done":
		return models.JobCompleted
	case strings.HasPrefix(status, "done"):
		return models.JobAborted
	default:
		return models.JobUndefined
	}
}

// mergeJobStatus keeps the state that matters most: a job running on any
// node is running, a job aborted on any node is aborted.
func mergeJobStatus(current, next models.JobStatus) models.JobStatus {
	if jobStatusWeight(next) > jobStatusWeight(current) {
		return next
	}

	return current
}

func jobStatusWeight(s models.JobStatus) int {
	switch s {
	case models.JobInProgress:
		return 3
	case models.JobAborted:
		return 2
	case models.JobUndefined:
		return 1
	default:
		return 0
	}
}

func getUDFs(node infoGetter, policy *a.InfoPolicy) ([]*models.UDFFile, error) {
	response, aerr := node.RequestInfo(policy, cmdUDFList)
	if aerr != nil {
		return nil, fmt.Errorf("failed to list UDFs: %w", aerr)
	}

	udfList, err := parseUDFListResponse(response[cmdUDFList])
	if err != nil {
		return nil, fmt.Errorf("failed to parse udf-list info response: %w", err)
	}

	udfs := make([]*models.UDFFile, 0, len(udfList))

	for _, udfMap := range udfList {
		name, ok := udfMap["filename"]
		if !ok {
			return nil, fmt.Errorf("udf-list response missing filename")
		}

		udfs = append(udfs, &models.UDFFile{
			Name: name,
			Hash: udfMap["hash"],
			Type: udfMap["type"],
		})
	}

	return udfs, nil
}

func getUDF(node infoGetter, name string, policy *a.InfoPolicy) (*models.UDFFile, error) {
	cmd := fmt.Sprintf(cmdUDFGet, name)

	response, aerr := node.RequestInfo(policy, cmd)
	if aerr != nil {
		return nil, fmt.Errorf("udf-get info command failed: %w", aerr)
	}

	udfInfo, ok := response[cmd]
	if !ok {
		return nil, fmt.Errorf("command %s info response missing", cmd)
	}

	udf, err := parseUDFResponse(udfInfo)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	udf.Name = name

	return udf, nil
}

func parseUDFResponse(udfGetInfoResp string) (*models.UDFFile, error) {
	udfInfo, err := parseUDFGetResponse(udfGetInfoResp)
	if err != nil {
		return nil, fmt.Errorf("failed to parse udf response: %w", err)
	}

	udf, err := parseUDF(udfInfo)
	if err != nil {
		return nil, fmt.Errorf("failed to parse udf: %w", err)
	}

	return udf, nil
}

func parseUDF(udfMap infoMap) (*models.UDFFile, error) {
	if val, ok := udfMap["error"]; ok {
		return nil, fmt.Errorf("%w: %s", ErrUDFNotFound, val)
	}

	udfLang, ok := udfMap["type"]
	if !ok {
		return nil, fmt.Errorf("udf info response missing language type")
	}

	if !strings.EqualFold(udfLang, "lua") {
		return nil, fmt.Errorf("invalid udf language type: %s", udfLang)
	}

	val, ok := udfMap["content"]
	if !ok {
		return nil, fmt.Errorf("udf info response missing content")
	}

	// the udf content field is base64 encoded in info responses
	content, err := base64.StdEncoding.DecodeString(val)
	if err != nil {
		return nil, fmt.Errorf("failed to decode udf content: %w", err)
	}

	sum := sha1.Sum(content) //nolint:gosec // see import

	return &models.UDFFile{
		Type:    strings.ToUpper(udfLang),
		Content: content,
		Size:    len(content),
		Hash:    hex.EncodeToString(sum[:]),
	}, nil
}

type infoMap map[string]string

// parseInfoResponse parses a single info response format string.
// the string may contain multiple response objects each separated by a semicolon
// each key-value pair is separated by a colon and the key is separated from the value by an equals sign
// e.g. "foo=bar:baz=qux;foo=bar:baz=qux"
// if the passed in info response is empty nil, nil is returned
func parseInfoResponse(resp, objSep, pairSep, kvSep string) ([]infoMap, error) {
	resp = strings.TrimSuffix(resp, objSep)
	if resp == "" {
		return nil, nil
	}

	objects := strings.Split(resp, objSep)
	info := make([]infoMap, 0, len(objects))

	for _, object := range objects {
		data, err := parseInfoObject(object, pairSep, kvSep)
		if err != nil {
			return nil, err
		}

		if data != nil {
			info = append(info, data)
		}
	}

	return info, nil
}

func parseInfoObject(obj, pairSep, kvSep string) (infoMap, error) {
	obj = strings.TrimSuffix(obj, pairSep)
	if obj == "" {
		return nil, nil
	}

	data := infoMap{}

	for _, pair := range strings.Split(obj, pairSep) {
		key, val, err := parseInfoKVPair(pair, kvSep)
		if err != nil {
			return nil, err
		}

		data[key] = val
	}

	return data, nil
}

func parseInfoKVPair(pair, kvSep string) (key, val string, err error) {
	// values may contain kvSep (base64 content for example),
	// so split on the first separator only
	kv := strings.SplitN(pair, kvSep, 2)
	if len(kv) != 2 {
		return "", "", fmt.Errorf("invalid key-value pair: %s", pair)
	}

	// make keys case-insensitive
	// to help with different version compatibility
	return strings.ToLower(kv[0]), kv[1], nil
}

// parseUDFListResponse parses a udf-list info response
// example resp: filename=basic_udf.lua,hash=706c57cb29e027221560a3cb4b693573ada98bf2,type=LUA;...
func parseUDFListResponse(resp string) ([]infoMap, error) {
	return parseInfoResponse(resp, ";", ",", "=")
}

// parseUDFGetResponse parses a udf-get info response
// example resp: gen=qvnT/c3DvYt7ZMFGAi6fUWu/BGE=;type=LUA;content=LS0gQSB2ZXJ5IHNpbXBsZSBhcml0
func parseUDFGetResponse(resp string) (infoMap, error) {
	return parseInfoObject(resp, ";", "=")
}
