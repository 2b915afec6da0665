// Package paging maps the small pages shown to the user onto the larger
// batches fetched from the corpus provider.
//
// A search fetches requestBatchSize records per provider call but displays
// displayPageSize records at a time, so several display pages share one
// fetched batch. The mapping is pure arithmetic.
package paging

import "fmt"

// Pager converts 0-based display pages into batch indexes and offsets.
type Pager struct {
	displayPageSize  int
	requestBatchSize int
}

// NewPager creates a pager. The batch size must be a positive integer
// multiple of the display page size; anything else is caller misuse and
// fails immediately.
func NewPager(displayPageSize, requestBatchSize int) (*Pager, error) {
	if displayPageSize <= 0 {
		return nil, fmt.Errorf("display page size must be positive, got %d", displayPageSize)
	}
	if requestBatchSize < displayPageSize {
		return nil, fmt.Errorf("request batch size %d must not be smaller than display page size %d",
			requestBatchSize, displayPageSize)
	}
	if requestBatchSize%displayPageSize != 0 {
		return nil, fmt.Errorf("request batch size %d must be a multiple of display page size %d",
			requestBatchSize, displayPageSize)
	}
	return &Pager{
		displayPageSize:  displayPageSize,
		requestBatchSize: requestBatchSize,
	}, nil
}

// DisplayPageSize returns the number of records shown per display page.
func (p *Pager) DisplayPageSize() int {
	return p.displayPageSize
}

// RequestBatchSize returns the number of records fetched per provider call.
func (p *Pager) RequestBatchSize() int {
	return p.requestBatchSize
}

// Map returns the 0-based batch index holding displayPage and the record
// offset of the page within that batch.
func (p *Pager) Map(displayPage int) (batchIndex, offset int) {
	first := displayPage * p.displayPageSize
	batchIndex = first / p.requestBatchSize
	offset = first - batchIndex*p.requestBatchSize
	return batchIndex, offset
}

// LastDisplayPage returns the 0-based index of the final display page for a
// result set of totalCount records. A set with no records still has page 0.
func (p *Pager) LastDisplayPage(totalCount int) int {
	if totalCount <= 0 {
		return 0
	}
	return (totalCount + p.displayPageSize - 1) / p.displayPageSize - 1
}
