// Package docs holds the OpenAPI document served at /spec.
// Regenerate with: swag init -g cmd/librarium/main.go
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
        "/v1/authors": {
            "get": {
                "produces": ["application/json"],
                "tags": ["authors"],
                "summary": "List all authors by name",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object"}}
                }
            }
        },
        "/v1/authors/top": {
            "get": {
                "produces": ["application/json"],
                "tags": ["authors"],
                "summary": "Rank authors",
                "parameters": [
                    {"enum": ["popularity", "rating", "trending"], "type": "string", "description": "Ranking tab", "name": "tab", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"type": "object"}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object"}}
                }
            }
        },
        "/v1/books": {
            "get": {
                "produces": ["application/json"],
                "tags": ["books"],
                "summary": "List books with rating statistics",
                "parameters": [
                    {"type": "string", "description": "Search title, isbn, publisher or author", "name": "search", "in": "query"},
                    {"type": "array", "items": {"type": "integer"}, "collectionFormat": "multi", "description": "Category ids", "name": "categories", "in": "query"},
                    {"enum": ["OR", "AND"], "type": "string", "description": "How categories combine", "name": "category_logic", "in": "query"},
                    {"type": "integer", "description": "Author id", "name": "author_id", "in": "query"},
                    {"type": "integer", "description": "Earliest publication year", "name": "year_from", "in": "query"},
                    {"type": "integer", "description": "Latest publication year", "name": "year_to", "in": "query"},
                    {"enum": ["available", "rented", "reserved"], "type": "string", "description": "Availability status", "name": "availability", "in": "query"},
                    {"type": "string", "description": "Store location", "name": "location", "in": "query"},
                    {"type": "number", "description": "Lowest average rating", "name": "rating_from", "in": "query"},
                    {"type": "number", "description": "Highest average rating", "name": "rating_to", "in": "query"},
                    {"enum": ["rating", "votes", "recent", "alphabetical"], "type": "string", "description": "Sort order", "name": "sort", "in": "query"},
                    {"type": "integer", "description": "Page number", "name": "page", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"type": "object"}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object"}}
                }
            }
        },
        "/v1/books/by-author": {
            "get": {
                "produces": ["application/json"],
                "tags": ["books"],
                "summary": "List an author's book titles",
                "parameters": [
                    {"type": "integer", "description": "Author id", "name": "author_id", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"type": "object"}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object"}}
                }
            }
        },
        "/v1/healthcheck": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Report service status",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}}
                }
            }
        },
        "/v1/ratings": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["ratings"],
                "summary": "Submit a rating",
                "parameters": [
                    {"description": "Rating", "name": "rating", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateRatingRequestBody"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"type": "object"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object"}},
                    "409": {"description": "Conflict", "schema": {"type": "object"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"type": "object"}},
                    "429": {"description": "Too Many Requests", "schema": {"type": "object"}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object"}}
                }
            }
        }
    },
    "definitions": {
        "dto.CreateRatingRequestBody": {
            "type": "object",
            "properties": {
                "author_id": {"type": "integer"},
                "book_id": {"type": "integer"},
                "rating": {"type": "integer"},
                "review": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Librarium API",
	Description:      "Book catalog with author rankings and anonymous ratings.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
