package models

// TaskStatus is the state of an upload task.
//
// Queued → Encrypting → Uploading → Completed | Failed.
// The only externally triggered transition is Failed → Queued (retry).
type TaskStatus string

const (
	TaskQueued     TaskStatus = "queued"
	TaskEncrypting TaskStatus = "encrypting"
	TaskUploading  TaskStatus = "uploading"
	TaskCompleted  TaskStatus = "completed"
	TaskFailed     TaskStatus = "failed"
)

// UploadTask is a process-lifetime unit of work for the upload pipeline.
// It is never persisted; a successfully completed task yields exactly one
// FileRecord, a failed one yields none.
type UploadTask struct {
	ID             string
	Name           string
	Data           []byte
	ContentType    string
	Status         TaskStatus
	Progress       int // 0..100, advisory
	Error          string
	ParentID       string
	Classification Classification
}
