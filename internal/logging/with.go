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

package logging

import "log/slog"

func WithClient(logger *slog.Logger, id string) *slog.Logger {
	group := slog.Group("client", "id", id)
	return logger.With(group)
}

func WithContext(logger *slog.Logger, id, namespace, set string) *slog.Logger {
	group := slog.Group("context", "id", id, "namespace", namespace, "set", set)
	return logger.With(group)
}

type OperationType string

const (
	OperationTypeUnknown        OperationType = "unknown"
	OperationTypePut            OperationType = "put"
	OperationTypeGet            OperationType = "get"
	OperationTypeSelect         OperationType = "select"
	OperationTypeExists         OperationType = "exists"
	OperationTypeRemove         OperationType = "remove"
	OperationTypeOperate        OperationType = "operate"
	OperationTypeApply          OperationType = "apply"
	OperationTypeBatchGet       OperationType = "batch_get"
	OperationTypeBatchExists    OperationType = "batch_exists"
	OperationTypeScan           OperationType = "scan"
	OperationTypeScanBackground OperationType = "scan_background"
	OperationTypeQuery          OperationType = "query"
	OperationTypeInfo           OperationType = "info"
	OperationTypeInfoEach       OperationType = "info_each"
	OperationTypeIndexCreate    OperationType = "index_create"
	OperationTypeIndexRemove    OperationType = "index_remove"
	OperationTypeUDFPut         OperationType = "udf_put"
	OperationTypeUDFGet         OperationType = "udf_get"
	OperationTypeUDFList        OperationType = "udf_list"
	OperationTypeUDFRemove      OperationType = "udf_remove"
)

func WithOperation(logger *slog.Logger, id string, operationType OperationType) *slog.Logger {
	group := slog.Group("operation", "id", id, "type", operationType)
	return logger.With(group)
}

func WithScript(logger *slog.Logger, id, path string) *slog.Logger {
	group := slog.Group("script", "id", id, "path", path)
	return logger.With(group)
}
