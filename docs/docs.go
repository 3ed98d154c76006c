// Package docs holds the Swagger document served at /docs.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/": {
            "get": {
                "description": "Returns liveness, the WhatsApp bot status and the number of users seen",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.HealthResponse"}}
                }
            }
        },
        "/api/status": {
            "get": {
                "description": "Returns WhatsApp session, process and cache details",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Service status",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.StatusResponse"}}
                }
            }
        },
        "/api/analytics": {
            "get": {
                "description": "Returns user, uptime and cache counters",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Usage analytics",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.AnalyticsResponse"}}
                }
            }
        },
        "/api/chat": {
            "post": {
                "description": "Sends a message through the AI pipeline and returns the reply",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Chat"],
                "summary": "Chat with the assistant",
                "parameters": [
                    {"description": "Chat message", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.ChatRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ChatResponse"}},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}},
                    "503": {"description": "AI service unavailable", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}},
                    "504": {"description": "AI service timed out", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/api/webhook": {
            "post": {
                "description": "Accepts any JSON payload for future integrations. The payload is not processed.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Integrations"],
                "summary": "Webhook receiver",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SuccessResponse"}},
                    "400": {"description": "Body is not JSON", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/api/send": {
            "post": {
                "description": "Sends a text message to a phone number. Requires the bot to be ready.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Messaging"],
                "summary": "Send a WhatsApp message",
                "parameters": [
                    {"description": "Recipient and text", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.SendRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SuccessResponse"}},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}},
                    "503": {"description": "Bot not ready", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/api/cache/clear": {
            "post": {
                "produces": ["application/json"],
                "tags": ["Cache"],
                "summary": "Clear the reply cache",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SuccessResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "dto.AnalyticsResponse": {
            "type": "object",
            "properties": {
                "botStatus": {"type": "string"},
                "cacheHits": {"type": "integer"},
                "cacheMisses": {"type": "integer"},
                "timestamp": {"type": "string"},
                "totalUsers": {"type": "integer"},
                "uptime": {"type": "number"}
            }
        },
        "dto.CacheStats": {
            "type": "object",
            "properties": {
                "hits": {"type": "integer"},
                "keys": {"type": "integer"},
                "misses": {"type": "integer"}
            }
        },
        "dto.CacheStatus": {
            "type": "object",
            "properties": {
                "keys": {"type": "integer"},
                "stats": {"$ref": "#/definitions/dto.CacheStats"}
            }
        },
        "dto.ChatRequest": {
            "type": "object",
            "required": ["message"],
            "properties": {
                "message": {"type": "string"},
                "sessionId": {"type": "string"}
            }
        },
        "dto.ChatResponse": {
            "type": "object",
            "properties": {
                "cached": {"type": "boolean"},
                "reply": {"type": "string"},
                "sessionId": {"type": "string"},
                "success": {"type": "boolean"},
                "timestamp": {"type": "string"}
            }
        },
        "dto.HealthResponse": {
            "type": "object",
            "properties": {
                "activeUsers": {"type": "integer"},
                "botStatus": {"type": "string"},
                "status": {"type": "string"},
                "timestamp": {"type": "string"},
                "version": {"type": "string"}
            }
        },
        "dto.MemoryStats": {
            "type": "object",
            "properties": {
                "alloc": {"type": "integer"},
                "goroutines": {"type": "integer"},
                "heapInUse": {"type": "integer"},
                "numGC": {"type": "integer"},
                "sys": {"type": "integer"},
                "totalAlloc": {"type": "integer"}
            }
        },
        "dto.SendRequest": {
            "type": "object",
            "required": ["message", "number"],
            "properties": {
                "message": {"type": "string"},
                "number": {"type": "string"}
            }
        },
        "dto.ServerStatus": {
            "type": "object",
            "properties": {
                "environment": {"type": "string"},
                "memory": {"$ref": "#/definitions/dto.MemoryStats"},
                "uptime": {"type": "number"}
            }
        },
        "dto.StatusResponse": {
            "type": "object",
            "properties": {
                "cache": {"$ref": "#/definitions/dto.CacheStatus"},
                "server": {"$ref": "#/definitions/dto.ServerStatus"},
                "whatsapp": {"$ref": "#/definitions/dto.WhatsAppStatus"}
            }
        },
        "dto.SuccessResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "success": {"type": "boolean"}
            }
        },
        "dto.WhatsAppStatus": {
            "type": "object",
            "properties": {
                "connectedUsers": {"type": "integer"},
                "status": {"type": "string"}
            }
        },
        "middleware.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "details": {"type": "string"},
                "message": {"type": "string"},
                "success": {"type": "boolean"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:3000",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "WhatsApp AI Gateway API",
	Description:      "AI replies for WhatsApp chats and a web chat endpoint, with a TTL reply cache.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
