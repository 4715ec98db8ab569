package dagset

import "fmt"

// ErrShortBatch indicates an IdConvert implementation violated its contract
// by returning a different number of results than ids requested. This is a
// bug in the converter, not a plain resolution failure.
type ErrShortBatch struct {
	Requested int
	Received  int
}

func (e *ErrShortBatch) Error() string {
	return fmt.Sprintf("id map bug: %d results returned for %d requested ids", e.Received, e.Requested)
}
