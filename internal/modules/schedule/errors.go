package schedule

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrNotAssigned     = errors.New("no facilitator assigned")
	ErrExternalService = errors.New("external service failure")
)

// Messages returned to callers; kept byte-for-byte stable because the
// mobile client matches on them.
const (
	MsgTaskNotFound     = "Task not found!"
	MsgProjectNotFound  = "Project not found!"
	MsgReportNotFound   = "Task report not found!"
	MsgInvalidProgress  = "Invalid inputted progress!"
	MsgNoFacilitator    = "No facilitator assigned to this project!"
	MsgTaskStarted      = "Task started successfully!"
	MsgTaskFinished     = "Task finished successfully!"
	MsgReportSubmitted  = "Task report submitted successfully!"
	MsgProgressRecorded = "Task progress updated successfully!"
)
