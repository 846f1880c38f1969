package ports

type WorkflowMetrics interface {
	RecordCompleted(classification string)
	RecordConflict()
	RecordFailed(stage string)
}
