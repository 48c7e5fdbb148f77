package pipeline

// ProgressReporter receives run lifecycle events. Implementations must be
// cheap; they are called once per file on the hot path.
type ProgressReporter interface {
	OnDiscoveryStart()
	OnDiscoveryComplete(fileCount int)
	OnFileProcessingStart(totalFiles int)
	OnFileProcessed(fileName string)
	OnFileFailed(fileName string, err error)
	OnWritingCorpus()
	OnComplete(stats *Stats)
}

// NopReporter discards all events.
type NopReporter struct{}

func (NopReporter) OnDiscoveryStart()          {}
func (NopReporter) OnDiscoveryComplete(int)    {}
func (NopReporter) OnFileProcessingStart(int)  {}
func (NopReporter) OnFileProcessed(string)     {}
func (NopReporter) OnFileFailed(string, error) {}
func (NopReporter) OnWritingCorpus()           {}
func (NopReporter) OnComplete(*Stats)          {}
