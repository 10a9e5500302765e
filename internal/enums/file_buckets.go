package enums

const (
	FILE_PREFIX_IMAGES   = "images"
	FILE_PREFIX_SPEECH   = "speech"
	FILE_PREFIX_WEBSITES = "websites"
)
