// Package docs registers the OpenAPI description served at /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/transcribe": {
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["Notes"],
                "summary": "Transcribe audio",
                "parameters": [
                    {"type": "file", "description": "Audio file (.mp3, .wav, .m4a, .ogg, .webm, .flac)", "name": "file", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/notes.TranscribeResponse"}},
                    "400": {"description": "Missing audio file"},
                    "413": {"description": "Audio file too large"},
                    "415": {"description": "Unsupported audio format"},
                    "502": {"description": "Transcription provider failed"}
                }
            }
        },
        "/summarize": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Notes"],
                "summary": "Summarize transcript",
                "parameters": [
                    {"description": "Transcript and target language", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/notes.SummarizeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/notes.SummarizeResponse"}},
                    "400": {"description": "Invalid payload"},
                    "502": {"description": "Summary provider failed"}
                }
            }
        },
        "/actions": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Notes"],
                "summary": "Extract action items",
                "parameters": [
                    {"description": "Transcript", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/notes.ActionsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/notes.ActionsResponse"}},
                    "400": {"description": "Missing transcript"}
                }
            }
        },
        "/notes": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Notes"],
                "summary": "List meeting notes",
                "parameters": [
                    {"type": "integer", "description": "Page number (default 1)", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Page size (default 20, max 100)", "name": "page_size", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "503": {"description": "Persistence not configured"}
                }
            },
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["Notes"],
                "summary": "Generate meeting notes",
                "parameters": [
                    {"type": "file", "description": "Audio file", "name": "file", "in": "formData", "required": true},
                    {"type": "string", "description": "Summary language (ISO 639-1, default en)", "name": "target_lang", "in": "formData"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/entities.MeetingNotes"}},
                    "400": {"description": "Missing audio file or invalid language"},
                    "502": {"description": "AI provider failed"}
                }
            }
        },
        "/notes/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Notes"],
                "summary": "Get meeting notes",
                "parameters": [{"type": "string", "description": "Notes ID (UUID)", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/entities.MeetingNotes"}},
                    "404": {"description": "Notes not found"}
                }
            }
        },
        "/notes/{id}/download": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Notes"],
                "summary": "Download meeting notes",
                "parameters": [{"type": "string", "description": "Notes ID (UUID)", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "meeting_notes.json", "schema": {"type": "file"}},
                    "404": {"description": "Notes not found"}
                }
            }
        },
        "/notes/{id}/minutes": {
            "get": {
                "produces": ["text/markdown"],
                "tags": ["Notes"],
                "summary": "Meeting minutes",
                "parameters": [{"type": "string", "description": "Notes ID (UUID)", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "string"}},
                    "404": {"description": "Notes not found"}
                }
            }
        },
        "/notes/{id}/audio": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Archive"],
                "summary": "Recording download URL",
                "parameters": [{"type": "string", "description": "Notes ID (UUID)", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Download URL"},
                    "404": {"description": "Notes or recording not found"}
                }
            }
        },
        "/storage/info": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Archive"],
                "summary": "Archive bucket info",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/storage.BucketInfo"}}
                }
            }
        }
    },
    "definitions": {
        "entities.ActionItem": {
            "type": "object",
            "properties": {
                "item": {"type": "string"},
                "priority": {"type": "string", "enum": ["High", "Medium", "Low"]}
            }
        },
        "entities.Segment": {
            "type": "object",
            "properties": {
                "start": {"type": "number"},
                "end": {"type": "number"},
                "text": {"type": "string"},
                "speaker": {"type": "string"}
            }
        },
        "entities.MeetingNotes": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "filename": {"type": "string"},
                "language": {"type": "string"},
                "target_lang": {"type": "string"},
                "transcript": {"type": "string"},
                "segments": {"type": "array", "items": {"$ref": "#/definitions/entities.Segment"}},
                "summary_short": {"type": "array", "items": {"type": "string"}},
                "summary_detailed": {"type": "string"},
                "actions": {"type": "array", "items": {"$ref": "#/definitions/entities.ActionItem"}},
                "audio_object": {"type": "string"},
                "model_used": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "notes.ActionsRequest": {
            "type": "object",
            "required": ["transcript"],
            "properties": {"transcript": {"type": "string"}}
        },
        "notes.ActionsResponse": {
            "type": "object",
            "properties": {"actions": {"type": "array", "items": {"$ref": "#/definitions/entities.ActionItem"}}}
        },
        "notes.SummarizeRequest": {
            "type": "object",
            "required": ["transcript"],
            "properties": {
                "transcript": {"type": "string"},
                "target_lang": {"type": "string"}
            }
        },
        "notes.SummarizeResponse": {
            "type": "object",
            "properties": {
                "summary_short": {"type": "array", "items": {"type": "string"}},
                "summary_detailed": {"type": "string"}
            }
        },
        "notes.TranscribeResponse": {
            "type": "object",
            "properties": {
                "transcript": {"type": "string"},
                "language": {"type": "string"},
                "segments": {"type": "array", "items": {"$ref": "#/definitions/entities.Segment"}}
            }
        },
        "storage.BucketInfo": {
            "type": "object",
            "properties": {
                "bucket": {"type": "string"},
                "bucket_exists": {"type": "boolean"},
                "endpoint": {"type": "string"},
                "audio_files": {"type": "integer"},
                "notes_files": {"type": "integer"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "Polyglot Minutes API",
	Description:      "Transcribes meeting recordings, summarizes them and extracts prioritized action items.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
