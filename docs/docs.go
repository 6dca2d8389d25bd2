// Package docs registers the OpenAPI document served at /swagger.
// Regenerate with: swag init -g cmd/server/main.go
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/sync-github": {
            "post": {
                "security": [{"ClerkAuth": []}],
                "produces": ["application/json"],
                "tags": ["Sync"],
                "summary": "Sync the caller's GitHub profile and repositories",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SyncResponse"}},
                    "400": {"description": "GitHub account not linked", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "409": {"description": "A sync for this user is running", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/portfolio": {
            "get": {
                "security": [{"ClerkAuth": []}],
                "produces": ["application/json"],
                "tags": ["Portfolio"],
                "summary": "Get the caller's synced portfolio",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.PortfolioResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Nothing synced yet", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "500": {"description": "Read policy misconfigured", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/portfolio/generations": {
            "get": {
                "security": [{"ClerkAuth": []}],
                "produces": ["application/json"],
                "tags": ["Generation"],
                "summary": "List the caller's portfolio generations",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.GenerationListResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"ClerkAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Generation"],
                "summary": "Start a portfolio generation",
                "parameters": [
                    {"description": "Template and prompt", "name": "request", "in": "body", "schema": {"$ref": "#/definitions/dto.StartGenerationRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.GenerationResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Profile not synced", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "409": {"description": "Generation already in progress", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/portfolio/generations/{id}/status": {
            "put": {
                "security": [{"ClerkAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Generation"],
                "summary": "Record the outcome of a portfolio generation",
                "parameters": [
                    {"type": "string", "description": "Generation ID", "name": "id", "in": "path", "required": true},
                    {"description": "Outcome", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CompleteGenerationRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.GenerationResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "409": {"description": "Generation already finished", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/repositories/{id}/selection": {
            "put": {
                "security": [{"ClerkAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Portfolio"],
                "summary": "Show or hide a repository on the portfolio",
                "parameters": [
                    {"type": "integer", "description": "GitHub repository ID", "name": "id", "in": "path", "required": true},
                    {"description": "Selection", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.SelectionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SelectionResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/auth/me": {
            "get": {
                "security": [{"ClerkAuth": []}],
                "produces": ["application/json"],
                "tags": ["Authentication"],
                "summary": "Get current user information",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.MeResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "dto.StartGenerationRequest": {
            "type": "object",
            "properties": {"template_id": {"type": "string"}, "custom_prompt": {"type": "string"}}
        },
        "dto.CompleteGenerationRequest": {
            "type": "object",
            "required": ["status"],
            "properties": {
                "status": {"type": "string", "enum": ["ready", "failed"]},
                "deployment_url": {"type": "string"},
                "failure_reason": {"type": "string"}
            }
        },
        "dto.GenerationResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "user_id": {"type": "string"},
                "github_username": {"type": "string"},
                "status": {"type": "string", "enum": ["generating", "ready", "failed"]},
                "template_id": {"type": "string"},
                "custom_prompt": {"type": "string"},
                "deployment_url": {"type": "string"},
                "failure_reason": {"type": "string"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "dto.GenerationListResponse": {
            "type": "object",
            "properties": {
                "generations": {"type": "array", "items": {"$ref": "#/definitions/dto.GenerationResponse"}}
            }
        },
        "dto.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "dto.SyncResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "profile": {"type": "object"},
                "reposCount": {"type": "integer"}
            }
        },
        "dto.SelectionRequest": {
            "type": "object",
            "required": ["selected"],
            "properties": {"selected": {"type": "boolean"}}
        },
        "dto.SelectionResponse": {
            "type": "object",
            "properties": {"id": {"type": "integer"}, "selected": {"type": "boolean"}}
        },
        "dto.ProfileResponse": {
            "type": "object",
            "properties": {
                "user_id": {"type": "string"},
                "username": {"type": "string"},
                "full_name": {"type": "string"},
                "avatar_url": {"type": "string"},
                "bio": {"type": "string"},
                "location": {"type": "string"},
                "followers_count": {"type": "integer"},
                "following_count": {"type": "integer"},
                "github_id": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "dto.RepositoryResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "description": {"type": "string"},
                "stars_count": {"type": "integer"},
                "forks_count": {"type": "integer"},
                "language": {"type": "string"},
                "html_url": {"type": "string"},
                "selected": {"type": "boolean"},
                "updated_at": {"type": "string"}
            }
        },
        "dto.PortfolioResponse": {
            "type": "object",
            "properties": {
                "profile": {"$ref": "#/definitions/dto.ProfileResponse"},
                "repositories": {"type": "array", "items": {"$ref": "#/definitions/dto.RepositoryResponse"}},
                "selected_count": {"type": "integer"}
            }
        },
        "dto.MeResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "email": {"type": "string"},
                "username": {"type": "string"},
                "first_name": {"type": "string"},
                "last_name": {"type": "string"},
                "profile_synced": {"type": "boolean"},
                "repository_count": {"type": "integer"}
            }
        }
    },
    "securityDefinitions": {
        "ClerkAuth": {
            "description": "Clerk session JWT",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Gitfolio Core API",
	Description:      "Syncs a signed-in user's GitHub profile and repositories into a portfolio store",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
