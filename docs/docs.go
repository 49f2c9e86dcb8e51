// Package docs registers the OpenAPI definition served by the swagger UI.
// Regenerate with: swag init -g cmd/api/main.go -o docs
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
        "/users/register": {
            "post": {
                "tags": ["users"],
                "summary": "Register a new user",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/users/login": {
            "post": {
                "tags": ["users"],
                "summary": "Log in",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/groups": {
            "get": {
                "tags": ["groups"],
                "summary": "List the authenticated user's groups",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["groups"],
                "summary": "Create a group",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/categories": {
            "get": {
                "tags": ["categories"],
                "summary": "List categories visible to the authenticated user",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["categories"],
                "summary": "Create a category",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/categories/global": {
            "post": {
                "tags": ["categories"],
                "summary": "Create a global category",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/expenses": {
            "get": {
                "tags": ["expenses"],
                "summary": "List expenses paid by the authenticated user",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["expenses"],
                "summary": "Create an expense",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/expenses/{id}": {
            "get": {
                "tags": ["expenses"],
                "summary": "Get expense by ID",
                "responses": {"200": {"description": "OK"}}
            },
            "delete": {
                "tags": ["expenses"],
                "summary": "Delete a standalone expense",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/settlements": {
            "get": {
                "tags": ["settlements"],
                "summary": "List the authenticated user's settlements",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/settlements/group/{groupId}": {
            "get": {
                "tags": ["settlements"],
                "summary": "List settlements for a group",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/activities": {
            "get": {
                "tags": ["activities"],
                "summary": "List the authenticated user's activity feed",
                "responses": {"200": {"description": "OK"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Divvy API",
	Description:      "Expense splitting backend: groups, expenses, splits and settlements.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
