package pipeline

import "time"

// ConvertStats accumulates the outcome of the conversion phase. Only
// files that actually produced an output contribute to Converted,
// SourceBytes and TargetBytes; failures are tracked separately.
type ConvertStats struct {
	TotalImages int
	Converted   int
	Failed      int
	SourceBytes int64
	TargetBytes int64
}

func (s *ConvertStats) recordSuccess(sourceSize, targetSize int64) {
	s.Converted++
	s.SourceBytes += sourceSize
	s.TargetBytes += targetSize
}

func (s *ConvertStats) recordFailure() {
	s.Failed++
}

// ReductionPercent reports how much smaller the converted output is,
// over successfully converted files only.
func (s *ConvertStats) ReductionPercent() float64 {
	if s.SourceBytes == 0 {
		return 0
	}
	return (1 - float64(s.TargetBytes)/float64(s.SourceBytes)) * 100
}

// CopyStats accumulates the outcome of the copy phase.
type CopyStats struct {
	Copied int
	Bytes  int64
}

// Report is the combined result of one run.
type Report struct {
	RunID     string
	Convert   ConvertStats
	Copy      CopyStats
	Elapsed   time.Duration
	TargetDir string
}
