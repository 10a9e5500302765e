package msgs

const (
	MsgOperationSuccessful     = "Operation was successful"
	MsgOperationFailed         = "Operation failed"
	MsgUserCreatedSuccessfully = "User created successfully"
	MsgYouMustLoginFirst       = "You must login first"
	MsgWhiteboardDeleted       = "Whiteboard deleted"
	MsgExecutionFinished       = "Execution finished"
	MsgExecutionStopped        = "Execution stopped before finishing"
	MsgTooManyRequests         = "Too many requests, slow down"
)
