package benchmark

import (
	"log"
	"slices"
	"strconv"
	"sync"
	"time"
)

type RequestTimeLogger interface {
	LogStartRequest(identifier string)
	LogEndRequest(identifier string, statusCode int)
}

// RequestTimeLoggerImpl measures request latencies in memory. It is safe for concurrent use.
type RequestTimeLoggerImpl struct {
	mu              sync.Mutex
	volatileRecords map[string]time.Time
	records         []Record
}

type Record struct {
	Identifier       string
	StatusCode       int
	StartRequestTime time.Time
	EndRequestTime   time.Time
}

func (r Record) Latency() time.Duration {
	return r.EndRequestTime.Sub(r.StartRequestTime)
}

func NewRequestTimeLoggerImpl() *RequestTimeLoggerImpl {
	return &RequestTimeLoggerImpl{volatileRecords: make(map[string]time.Time)}
}

func (tl *RequestTimeLoggerImpl) LogStartRequest(identifier string) {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	tl.volatileRecords[identifier] = time.Now()
}

func (tl *RequestTimeLoggerImpl) LogEndRequest(identifier string, statusCode int) {
	endTime := time.Now()
	tl.mu.Lock()
	defer tl.mu.Unlock()

	startTime, ok := tl.volatileRecords[identifier]
	if !ok {
		log.Printf("Could not find the start request for '%v'\n", identifier)
		return
	}
	delete(tl.volatileRecords, identifier)
	tl.records = append(tl.records, Record{
		Identifier:       identifier,
		StatusCode:       statusCode,
		StartRequestTime: startTime,
		EndRequestTime:   endTime,
	})
}

func (tl *RequestTimeLoggerImpl) Records() []Record {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	return slices.Clone(tl.records)
}

// CsvRows renders the completed requests with a header row, ready for utils.ExportToCsv.
func (tl *RequestTimeLoggerImpl) CsvRows() [][]string {
	rows := [][]string{{"id", "statusCode", "startMillis", "endMillis", "latencyMillis"}}
	for _, record := range tl.Records() {
		rows = append(rows, []string{
			record.Identifier,
			strconv.Itoa(record.StatusCode),
			strconv.FormatInt(record.StartRequestTime.UnixMilli(), 10),
			strconv.FormatInt(record.EndRequestTime.UnixMilli(), 10),
			strconv.FormatInt(record.Latency().Milliseconds(), 10),
		})
	}
	return rows
}

type Summary struct {
	RequestsCount  int
	CountPerStatus map[int]int
	AverageLatency time.Duration
	MaxLatency     time.Duration
}

func (tl *RequestTimeLoggerImpl) Summarize() Summary {
	summary := Summary{CountPerStatus: make(map[int]int)}
	var totalLatency time.Duration
	for _, record := range tl.Records() {
		summary.RequestsCount++
		summary.CountPerStatus[record.StatusCode]++
		totalLatency += record.Latency()
		summary.MaxLatency = max(summary.MaxLatency, record.Latency())
	}
	if summary.RequestsCount > 0 {
		summary.AverageLatency = totalLatency / time.Duration(summary.RequestsCount)
	}
	return summary
}
