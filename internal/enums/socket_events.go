package enums

const (
	SOCKET_EVENT_NODE_UPDATED       = "node_updated"
	SOCKET_EVENT_EXECUTION_STARTED  = "execution_started"
	SOCKET_EVENT_EXECUTION_FINISHED = "execution_finished"
	SOCKET_EVENT_WHITEBOARD_UPDATED = "whiteboard_updated"
	SOCKET_EVENT_WHITEBOARD_DELETED = "whiteboard_deleted"
)

const REDIS_CHANNEL_WHITEBOARD = "whiteboard_channel"
