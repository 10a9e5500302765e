package enums

const (
	NODE_TYPE_TEXT        = "text"
	NODE_TYPE_IMAGE       = "image"
	NODE_TYPE_SPEECH      = "speech"
	NODE_TYPE_INSTRUCTION = "instruction"
	NODE_TYPE_COMMENT     = "comment"
	NODE_TYPE_WEBSITE     = "website"
)

var NodeTypes = []string{
	NODE_TYPE_TEXT,
	NODE_TYPE_IMAGE,
	NODE_TYPE_SPEECH,
	NODE_TYPE_INSTRUCTION,
	NODE_TYPE_COMMENT,
	NODE_TYPE_WEBSITE,
}

const (
	NODE_STATUS_IDLE    = "idle"
	NODE_STATUS_RUNNING = "running"
	NODE_STATUS_DONE    = "done"
	NODE_STATUS_FAILED  = "failed"
	NODE_STATUS_SKIPPED = "skipped"
)
