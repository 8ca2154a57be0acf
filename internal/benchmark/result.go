package benchmark

import "time"

// Result is the measurement of one operation invocation. Records are
// immutable after the Runner appends them; their position in the
// accumulated sequence is execution order.
type Result struct {
	Operation       string    `json:"operation"`
	Vendor          string    `json:"vendor"`
	DurationMS      float64   `json:"duration_ms"`
	Success         bool      `json:"success"`
	RecordsAffected int64     `json:"records_affected"`
	Error           string    `json:"error,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
}

// Operation tags for the relational suite.
const (
	OpInsertSingle   = "insert_single"
	OpInsertBatch    = "insert_batch"
	OpSelectByID     = "select_by_id"
	OpSelectByEmail  = "select_by_email"
	OpSelectWithJoin = "select_with_join"
	OpUpdate         = "update"
	OpDelete         = "delete"
	OpAggregate      = "aggregate_query"
	OpComplexQuery   = "complex_query"
)

// Operation tags for the graph suite.
const (
	OpCreateNode         = "create_node"
	OpCreateRelationship = "create_relationship"
	OpFindNodeByID       = "find_node_by_id"
	OpTraverse           = "traverse_relationships"
	OpShortestPath       = "shortest_path"
	OpPatternMatching    = "pattern_matching"
)
