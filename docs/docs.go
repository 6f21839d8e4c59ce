// Package docs registers the OpenAPI document served under /swagger.
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
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/health": {
            "get": {"tags": ["system"], "summary": "Database and registration store status", "responses": {"200": {"description": "OK"}, "503": {"description": "A dependency is down"}}}
        },
        "/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Registration step one",
                "description": "Organizers are staged and continue at /auth/register/organizer, other roles get an account and a token.",
                "parameters": [{"in": "body", "name": "input", "required": true, "schema": {"$ref": "#/definitions/RegisterInput"}}],
                "responses": {"201": {"description": "Account created"}, "202": {"description": "Staged, continue with the application"}, "422": {"description": "Validation failed"}}
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Log in",
                "parameters": [{"in": "body", "name": "input", "required": true, "schema": {"$ref": "#/definitions/LoginInput"}}],
                "responses": {"200": {"description": "Token issued"}, "401": {"description": "Invalid email or password"}}
            }
        },
        "/auth/register/organizer": {
            "get": {"tags": ["auth"], "summary": "Current registration step", "responses": {"200": {"description": "OK"}}},
            "post": {
                "tags": ["auth"],
                "summary": "Registration step two: submit the organizer application",
                "parameters": [{"in": "body", "name": "input", "required": true, "schema": {"$ref": "#/definitions/ApplicationInput"}}],
                "responses": {"201": {"description": "Submitted"}, "400": {"description": "Registration data not found"}, "409": {"description": "Duplicate pending application"}, "429": {"description": "Submission in progress"}}
            },
            "delete": {"tags": ["auth"], "summary": "Go back and drop the staged registration", "responses": {"204": {"description": "Reset"}}}
        },
        "/me": {
            "get": {"tags": ["users"], "security": [{"BearerAuth": []}], "summary": "Current profile", "responses": {"200": {"description": "OK"}}},
            "patch": {"tags": ["users"], "security": [{"BearerAuth": []}], "summary": "Update display name", "responses": {"200": {"description": "OK"}}}
        },
        "/dashboard": {
            "get": {"tags": ["users"], "security": [{"BearerAuth": []}], "summary": "Dashboard with pending application and next action", "responses": {"200": {"description": "OK"}}}
        },
        "/organizer-applications": {
            "post": {
                "tags": ["applications"],
                "security": [{"BearerAuth": []}],
                "summary": "Apply as a signed in user",
                "parameters": [{"in": "body", "name": "input", "required": true, "schema": {"$ref": "#/definitions/ApplicationInput"}}],
                "responses": {"201": {"description": "Submitted"}, "409": {"description": "Duplicate pending application"}}
            }
        },
        "/organizer-applications/mine": {
            "get": {"tags": ["applications"], "security": [{"BearerAuth": []}], "summary": "Own applications, newest first", "responses": {"200": {"description": "OK"}}}
        },
        "/organizer-applications/{id}/attachment": {
            "post": {
                "tags": ["applications"],
                "security": [{"BearerAuth": []}],
                "summary": "Attach a PDF, PNG or JPEG document to a pending application",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"in": "path", "name": "id", "type": "integer", "required": true},
                    {"in": "formData", "name": "file", "type": "file", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "413": {"description": "Too large"}, "415": {"description": "Unsupported type"}}
            }
        },
        "/admin/organizer-applications": {
            "get": {"tags": ["admin"], "security": [{"BearerAuth": []}], "summary": "All applications with applicant and reviewer", "responses": {"200": {"description": "OK"}, "403": {"description": "Not an admin"}}}
        },
        "/admin/organizer-applications/{id}/approve": {
            "post": {
                "tags": ["admin"],
                "security": [{"BearerAuth": []}],
                "summary": "Approve and promote the applicant to organizer",
                "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}, {"in": "body", "name": "input", "schema": {"$ref": "#/definitions/ReviewNotes"}}],
                "responses": {"200": {"description": "Reviewed, full list reloaded"}, "409": {"description": "Application already reviewed"}}
            }
        },
        "/admin/organizer-applications/{id}/reject": {
            "post": {
                "tags": ["admin"],
                "security": [{"BearerAuth": []}],
                "summary": "Reject",
                "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}, {"in": "body", "name": "input", "schema": {"$ref": "#/definitions/ReviewNotes"}}],
                "responses": {"200": {"description": "Reviewed, full list reloaded"}, "409": {"description": "Application already reviewed"}}
            }
        }
    },
    "definitions": {
        "RegisterInput": {
            "type": "object",
            "required": ["email", "password", "name", "role"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string", "minLength": 8},
                "name": {"type": "string", "minLength": 2},
                "role": {"type": "string", "enum": ["organizer", "coach", "player", "guest"]}
            }
        },
        "LoginInput": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "ApplicationInput": {
            "type": "object",
            "required": ["application_reason"],
            "properties": {
                "application_reason": {"type": "string", "minLength": 10, "maxLength": 500},
                "experience_description": {"type": "string", "maxLength": 1000}
            }
        },
        "ReviewNotes": {
            "type": "object",
            "properties": {"admin_notes": {"type": "string", "maxLength": 1000}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Tournament Platform API",
	Description:      "Accounts, roles and organizer applications.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
