package dto

type RecordingOutput struct {
	State     string
	AssetRef  string
	AssetPath string
	MIMEType  string
	Size      int64
	Reported  bool
	Error     string
}
