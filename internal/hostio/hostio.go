// Package hostio documents the contract shape a transport would dispatch
// through, without implementing the wire framing itself. The JSON-RPC
// stdio transport, tool registration, and config precedence beyond what
// the coordinator needs are external collaborators per the module's own
// scope (see SPEC_FULL.md §1) — this package exists only so the contract
// has a named, importable shape, mirroring how internal/rpc/protocol.go
// defines the wire envelope independent of internal/daemon's socket
// transport in the teacher.
package hostio

import "encoding/json"

// Dispatch is the shape a transport calls into: an operation name (one of
// the memory_* tool names) plus its raw JSON arguments, returning raw JSON.
// Expected business errors travel inside that payload as isError data; the
// error return is left for unexpected failures.
type Dispatch func(op string, raw json.RawMessage) (json.RawMessage, error)
