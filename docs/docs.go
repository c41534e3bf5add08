// Package docs registers the OpenAPI document served under /swagger/.
// Regenerate with: swag init -g cmd/api/main.go
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
        "/auth/login": {
            "post": {
                "description": "Authenticate with email and password. Returns a JWT whose subject is the user id.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Log in",
                "parameters": [
                    {
                        "description": "Login credentials",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/controllers.LoginRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "data contains token, token_type and user", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "401": {"description": "error.code: unauthorized", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "500": {"description": "error.code: internal_error", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "description": "Reports the status of the service and its dependencies.",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "data.status: ok", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "503": {"description": "data.status: degraded", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/webinars/{webinarID}/participations": {
            "get": {
                "description": "Returns the seats booked in the webinar, paginated.",
                "produces": ["application/json"],
                "tags": ["participations"],
                "summary": "List the participations of a webinar",
                "parameters": [
                    {"type": "string", "description": "Webinar ID", "name": "webinarID", "in": "path", "required": true},
                    {"type": "integer", "description": "Page number (default 1)", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Page size (default 20, max 100)", "name": "page_size", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.ListParticipationsSuccessResponse"}},
                    "404": {"description": "error.code: not_found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "500": {"description": "error.code: internal_error", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Books a seat for the authenticated user and notifies the webinar organizer. Fails when the user already holds a seat or the webinar is full. A booking whose notification could not be sent still returns 201 with notification \"failed\".",
                "produces": ["application/json"],
                "tags": ["participations"],
                "summary": "Book a seat in a webinar",
                "parameters": [
                    {"type": "string", "description": "Webinar ID", "name": "webinarID", "in": "path", "required": true}
                ],
                "responses": {
                    "201": {"description": "Seat booked", "schema": {"$ref": "#/definitions/controllers.BookSeatSuccessResponse"}},
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "401": {"description": "error.code: unauthorized", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "404": {"description": "error.code: not_found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "409": {"description": "error.code: conflict (already participating or no seats available)", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "500": {"description": "error.code: internal_error", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        }
    },
    "definitions": {
        "controllers.BookSeatResponse": {
            "type": "object",
            "properties": {
                "notification": {"type": "string", "enum": ["sent", "failed"]},
                "user_id": {"type": "string"},
                "webinar_id": {"type": "string"}
            }
        },
        "controllers.BookSeatSuccessResponse": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/controllers.BookSeatResponse"},
                "error": {"$ref": "#/definitions/helpers.APIError"}
            }
        },
        "controllers.ListParticipationsResponse": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/domain.Participation"}},
                "pagination": {"$ref": "#/definitions/helpers.PaginationMeta"}
            }
        },
        "controllers.ListParticipationsSuccessResponse": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/controllers.ListParticipationsResponse"},
                "error": {"$ref": "#/definitions/helpers.APIError"}
            }
        },
        "controllers.LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "domain.Participation": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string"},
                "id": {"type": "string"},
                "notification": {"type": "string", "enum": ["sent", "failed"]},
                "user_id": {"type": "string"},
                "webinar_id": {"type": "string"}
            }
        },
        "helpers.APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "helpers.APIResponse": {
            "type": "object",
            "properties": {
                "data": {},
                "error": {"$ref": "#/definitions/helpers.APIError"}
            }
        },
        "helpers.PaginationMeta": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total": {"type": "integer"},
                "total_pages": {"type": "integer"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and the JWT.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Webinars API",
	Description:      "Seat booking for webinars.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
