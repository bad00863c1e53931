// Package docs registers the OpenAPI document of the channelhub HTTP API
// with swag. Regenerate with `swag init -g cmd/channelhubd/docs.go`.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "channelhub maintainers"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/definitions": {
            "get": {
                "produces": ["application/json"],
                "tags": ["definitions"],
                "summary": "List module definitions",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.DefinitionsResponse"}}
                }
            }
        },
        "/instances": {
            "get": {
                "produces": ["application/json"],
                "tags": ["instances"],
                "summary": "List module instances",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.InstancesResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["instances"],
                "summary": "Create a module instance",
                "parameters": [
                    {"description": "Module kind", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/types.CreateInstanceRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/types.InstanceSummary"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "415": {"description": "Unsupported Media Type", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/instances/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["instances"],
                "summary": "Describe an instance",
                "parameters": [
                    {"type": "string", "description": "Instance id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.InstanceDetail"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            },
            "delete": {
                "description": "Unregisters receivers then channels; subscribers of its channels are detached.",
                "tags": ["instances"],
                "summary": "Tear down an instance",
                "parameters": [
                    {"type": "string", "description": "Instance id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/instances/{id}/channels/{channelID}/contents": {
            "put": {
                "consumes": ["application/json"],
                "tags": ["channels"],
                "summary": "Replace the contents of a channel",
                "parameters": [
                    {"type": "string", "description": "Publisher instance id", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "Channel id", "name": "channelID", "in": "path", "required": true},
                    {"description": "New contents", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/types.ReplaceContentsRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/instances/{id}/channels/{channelID}/contents/{contentID}": {
            "put": {
                "consumes": ["application/json"],
                "tags": ["channels"],
                "summary": "Republish one content",
                "parameters": [
                    {"type": "string", "description": "Publisher instance id", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "Channel id", "name": "channelID", "in": "path", "required": true},
                    {"type": "string", "description": "Content id", "name": "contentID", "in": "path", "required": true},
                    {"description": "New data", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/types.ContentPayload"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/instances/{id}/receivers/{receiverID}": {
            "get": {
                "description": "On a read failure the snapshot is still returned, with error set and a 4xx/5xx status.",
                "produces": ["application/json"],
                "tags": ["receivers"],
                "summary": "Read what a receiver currently sees",
                "parameters": [
                    {"type": "string", "description": "Subscriber instance id", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "Receiver id", "name": "receiverID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.ReceiverSnapshot"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/types.ReceiverSnapshot"}}
                }
            }
        },
        "/instances/{id}/receivers/{receiverID}/subscription": {
            "post": {
                "consumes": ["application/json"],
                "tags": ["receivers"],
                "summary": "Subscribe a receiver to a channel",
                "parameters": [
                    {"type": "string", "description": "Subscriber instance id", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "Receiver id", "name": "receiverID", "in": "path", "required": true},
                    {"description": "Channel and selection", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/types.SubscribeRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["receivers"],
                "summary": "Release a receiver's subscription",
                "parameters": [
                    {"type": "string", "description": "Subscriber instance id", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "Receiver id", "name": "receiverID", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "types.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "integer", "example": 404},
                "error": {"type": "string", "example": "instance not found: 1234"}
            }
        },
        "types.CreateInstanceRequest": {
            "type": "object",
            "properties": {
                "kind": {"type": "string", "example": "distribution-plot"},
                "name": {"type": "string", "example": "Left plot"}
            }
        },
        "types.InstanceSummary": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "kind": {"type": "string"},
                "name": {"type": "string"},
                "channels": {"type": "integer"},
                "receivers": {"type": "integer"},
                "created_unix": {"type": "integer"}
            }
        },
        "types.InstancesResponse": {
            "type": "object",
            "properties": {
                "instances": {"type": "array", "items": {"$ref": "#/definitions/types.InstanceSummary"}}
            }
        },
        "types.DefinitionsResponse": {
            "type": "object",
            "properties": {
                "definitions": {"type": "array", "items": {"type": "object"}}
            }
        },
        "types.InstanceDetail": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "kind": {"type": "string"},
                "channel_list": {"type": "array", "items": {"type": "object"}},
                "receiver_list": {"type": "array", "items": {"type": "object"}}
            }
        },
        "types.Point": {
            "type": "object",
            "properties": {
                "key": {"type": "array", "items": {"type": "number"}},
                "value": {"type": "number"}
            }
        },
        "types.ContentPayload": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "example": "PORO"},
                "display_name": {"type": "string", "example": "Porosity"},
                "points": {"type": "array", "items": {"$ref": "#/definitions/types.Point"}},
                "metadata": {"type": "object"}
            }
        },
        "types.ReplaceContentsRequest": {
            "type": "object",
            "properties": {
                "contents": {"type": "array", "items": {"$ref": "#/definitions/types.ContentPayload"}}
            }
        },
        "types.SubscribeRequest": {
            "type": "object",
            "properties": {
                "publisher_id": {"type": "string"},
                "channel_id": {"type": "string", "example": "realization-values"},
                "all": {"type": "boolean", "example": true},
                "content_ids": {"type": "array", "items": {"type": "string"}}
            }
        },
        "types.ReceiverSnapshot": {
            "type": "object",
            "properties": {
                "receiver_id": {"type": "string"},
                "revision": {"type": "integer"},
                "subscribed": {"type": "boolean"},
                "publisher_id": {"type": "string"},
                "channel_id": {"type": "string"},
                "channel_name": {"type": "string"},
                "key_kind": {"type": "string"},
                "content_ids": {"type": "array", "items": {"type": "string"}},
                "contents": {"type": "array", "items": {"$ref": "#/definitions/types.ContentPayload"}},
                "pending": {"type": "boolean"},
                "error": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "channelhub API",
	Description:      "HTTP API for publishing data channels and subscribing receivers to them.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
