package errors

// ErrorCode identifies an application error in API responses
type ErrorCode int

const (
	ErrorCode_HTTP_OK ErrorCode = 200

	ErrorCode_INTERNAL         ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT ErrorCode = 1001
	ErrorCode_NOT_FOUND        ErrorCode = 1002
	ErrorCode_INVALID_PAYLOAD  ErrorCode = 1003

	ErrorCode_NOTES_NOT_FOUND      ErrorCode = 2000
	ErrorCode_NOTES_STORE_DISABLED ErrorCode = 2001

	ErrorCode_MISSING_AUDIO_FILE       ErrorCode = 3000
	ErrorCode_UNSUPPORTED_AUDIO_FORMAT ErrorCode = 3001
	ErrorCode_AUDIO_TOO_LARGE          ErrorCode = 3002

	ErrorCode_AI_TRANSCRIPTION_FAILED ErrorCode = 4000
	ErrorCode_AI_SUMMARY_FAILED       ErrorCode = 4001
	ErrorCode_AI_SERVICE_UNAVAILABLE  ErrorCode = 4002

	ErrorCode_INTEGRATION_STORAGE_FAILED ErrorCode = 5000

	ErrorCode_DB_QUERY_FAILED ErrorCode = 6000
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                    "HTTP_OK",
	ErrorCode_INTERNAL:                   "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:           "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                  "NOT_FOUND",
	ErrorCode_INVALID_PAYLOAD:            "INVALID_PAYLOAD",
	ErrorCode_NOTES_NOT_FOUND:            "NOTES_NOT_FOUND",
	ErrorCode_NOTES_STORE_DISABLED:       "NOTES_STORE_DISABLED",
	ErrorCode_MISSING_AUDIO_FILE:         "MISSING_AUDIO_FILE",
	ErrorCode_UNSUPPORTED_AUDIO_FORMAT:   "UNSUPPORTED_AUDIO_FORMAT",
	ErrorCode_AUDIO_TOO_LARGE:            "AUDIO_TOO_LARGE",
	ErrorCode_AI_TRANSCRIPTION_FAILED:    "AI_TRANSCRIPTION_FAILED",
	ErrorCode_AI_SUMMARY_FAILED:          "AI_SUMMARY_FAILED",
	ErrorCode_AI_SERVICE_UNAVAILABLE:     "AI_SERVICE_UNAVAILABLE",
	ErrorCode_INTEGRATION_STORAGE_FAILED: "INTEGRATION_STORAGE_FAILED",
	ErrorCode_DB_QUERY_FAILED:            "DB_QUERY_FAILED",
}

// String returns the symbolic name of the code
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
