package errs

type Error string

func (e Error) Error() string { return string(e) }

const (
	ErrInvalidRequestBody = Error("invalid request body")
	ErrUserAlreadyExists  = Error("user already exists")
	ErrUserNotFound       = Error("user not found")
	ErrWrongPassword      = Error("wrong password")
	ErrInvalidToken       = Error("invalid token")
	ErrInvalidEmail       = Error("invalid email")
	ErrInvalidPassword    = Error("invalid password")
	ErrInvalidUser        = Error("invalid user")
	ErrInvalidRequest     = Error("invalid request")
	ErrInvalidParams      = Error("invalid params")
	ErrInvalidPageOrSize  = Error("invalid page or size")
	ErrFirstName          = Error("first name is empty or too short")
	ErrLastName           = Error("last name is empty or too short")
	ErrUnauthorized       = Error("unauthorized")
	ErrTooManyRequests    = Error("too many requests")

	ErrWhiteboardNotFound       = Error("whiteboard not found")
	ErrWhiteboardCreationFailed = Error("whiteboard creation failed")
	ErrInvalidWhiteboardId      = Error("invalid whiteboard id")
	ErrWhiteboardTitleTooLong   = Error("whiteboard title is too long")
	ErrEmptyNodeId              = Error("node id is empty")
	ErrDuplicateNodeId          = Error("duplicate node id")
	ErrUnknownNodeType          = Error("unknown node type")
	ErrEdgeUnknownNode          = Error("edge references an unknown node")
	ErrSelfLoopEdge             = Error("edge connects a node to itself")
	ErrDuplicateEdge            = Error("duplicate edge")
	ErrNodeNotFound             = Error("node not found")

	ErrExecutionInProgress = Error("whiteboard is already executing")
	ErrNothingToGenerate   = Error("node has no input to generate from")

	ErrUnknownCreditType   = Error("unknown credit type")
	ErrInvalidCreditAmount = Error("credit amount must be positive")
	ErrInsufficientCredits = Error("insufficient credits")

	ErrSubscriptionNotFound  = Error("subscription not found")
	ErrPaymentsNotConfigured = Error("payments are not configured")
	ErrProviderNotConfigured = Error("ai provider is not configured")
	ErrUnableToUploadFile    = Error("unable to upload file")
	ErrUnableToDeleteFile    = Error("unable to delete file")
)
