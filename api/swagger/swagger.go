package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Study Planner API",
        "description": "Semester study planning service merging local plans with platform data",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "tags": [
        {"name": "Auth", "description": "Session lifecycle"},
        {"name": "Plan", "description": "Merged study plan and placements"},
        {"name": "Modules", "description": "Module catalog search"},
        {"name": "System", "description": "Runtime statistics"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Exchange a platform access token for a session",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Platform rejected the token"}
                }
            }
        },
        "/auth/refresh": {
            "post": {
                "tags": ["Auth"],
                "summary": "Rotate the refresh token",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RefreshTokenRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid or expired refresh token"}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["Auth"],
                "summary": "Revoke the current session",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/plan": {
            "get": {
                "tags": ["Plan"],
                "summary": "Get the merged study plan",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "Platform unavailable"}
                }
            }
        },
        "/plan/semesters": {
            "post": {
                "tags": ["Plan"],
                "summary": "Add a semester to the plan",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AddSemesterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Semester already planned"}
                }
            }
        },
        "/plan/placements": {
            "put": {
                "tags": ["Plan"],
                "summary": "Place a module into a semester category",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/PlacementRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Placement rejected"},
                    "412": {"description": "Target does not accept the module"}
                }
            },
            "delete": {
                "tags": ["Plan"],
                "summary": "Remove a module from a semester",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RemovePlacementRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Placement not found"}
                }
            }
        },
        "/plan/drop-targets": {
            "get": {
                "tags": ["Plan"],
                "summary": "Evaluate drop targets for a dragged module",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "moduleId", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/plan/export": {
            "get": {
                "tags": ["Plan"],
                "summary": "Export the merged plan",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "Rendered document"},
                    "403": {"description": "Exports disabled"}
                }
            }
        },
        "/system/stats": {
            "get": {
                "tags": ["System"],
                "summary": "Aggregate runtime statistics",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/SystemMetrics"}}
                }
            }
        },
        "/modules": {
            "get": {
                "tags": ["Modules"],
                "summary": "Search the module catalog",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "q", "in": "query", "type": "string"},
                    {"name": "early", "in": "query", "type": "boolean"},
                    {"name": "alternative", "in": "query", "type": "boolean"},
                    {"name": "passed", "in": "query", "type": "boolean"},
                    {"name": "failed", "in": "query", "type": "boolean"},
                    {"name": "notTaken", "in": "query", "type": "boolean"},
                    {"name": "mySemester", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "properties": {
                "platform_token": {"type": "string"}
            },
            "required": ["platform_token"]
        },
        "RefreshTokenRequest": {
            "type": "object",
            "properties": {
                "refresh_token": {"type": "string"}
            },
            "required": ["refresh_token"]
        },
        "AddSemesterRequest": {
            "type": "object",
            "properties": {
                "remoteSemesterId": {"type": "string"},
                "startDate": {"type": "string"}
            }
        },
        "PlacementRequest": {
            "type": "object",
            "properties": {
                "semesterId": {"type": "string"},
                "moduleId": {"type": "string"},
                "category": {"type": "string", "enum": ["STANDARD", "EARLY", "ALTERNATIVE", "REASSESSMENT"]}
            },
            "required": ["semesterId", "moduleId", "category"]
        },
        "RemovePlacementRequest": {
            "type": "object",
            "properties": {
                "semesterId": {"type": "string"},
                "moduleId": {"type": "string"}
            },
            "required": ["semesterId", "moduleId"]
        },
        "SemesterModule": {
            "type": "object",
            "properties": {
                "moduleId": {"type": "string"},
                "title": {"type": "string"},
                "credits": {"type": "integer"},
                "planned": {"type": "boolean"},
                "grade": {"type": "number"},
                "published": {"type": "boolean"},
                "passed": {"type": "boolean"}
            }
        },
        "Semester": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "startDate": {"type": "string"},
                "isActive": {"type": "boolean"},
                "offset": {"type": "integer"},
                "offsetLabel": {"type": "string"},
                "totalCredits": {"type": "integer"},
                "modules": {"type": "object"}
            }
        },
        "SystemMetrics": {
            "type": "object",
            "properties": {
                "cache_hit_ratio": {"type": "number"},
                "cache_hits": {"type": "integer"},
                "cache_misses": {"type": "integer"},
                "requests_total": {"type": "integer"},
                "average_request_duration_ms": {"type": "number"},
                "platform_call_count": {"type": "integer"},
                "average_platform_call_ms": {"type": "number"},
                "goroutines": {"type": "integer"},
                "generated_at": {"type": "string"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
