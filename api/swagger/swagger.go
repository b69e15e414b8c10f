package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Ministry Attendance API",
        "description": "Attendance tracking and engagement reporting across the ministry hierarchy",
        "version": "1.0.0"
    },
    "basePath": "/api",
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
        {"name": "Authentication", "description": "Login and session info"},
        {"name": "Hierarchy", "description": "Region/university/group option lists"},
        {"name": "Events", "description": "Attendance-bearing events"},
        {"name": "Members", "description": "Marking rosters"},
        {"name": "Attendance", "description": "Marking, browsing and date availability"},
        {"name": "Engagement", "description": "Drill-down analytics and exports"},
        {"name": "Contributions", "description": "Financial rollups"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate user",
                "responses": {
                    "200": {"description": "Token issued", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/regions": {
            "get": {
                "tags": ["Hierarchy"],
                "summary": "List regions",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/universities": {
            "get": {
                "tags": ["Hierarchy"],
                "summary": "List universities of a region",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "regionId", "in": "query", "type": "integer", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/small-groups": {
            "get": {
                "tags": ["Hierarchy"],
                "summary": "List small groups of a university",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "universityId", "in": "query", "type": "integer", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/alumni-small-groups": {
            "get": {
                "tags": ["Hierarchy"],
                "summary": "List alumni small groups of a region",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "regionId", "in": "query", "type": "integer", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/events": {
            "get": {
                "tags": ["Events"],
                "summary": "List events visible under the caller's scope",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "eventType", "in": "query", "type": "string"},
                    {"name": "regionId", "in": "query", "type": "integer"},
                    {"name": "universityId", "in": "query", "type": "integer"},
                    {"name": "smallGroupId", "in": "query", "type": "integer"},
                    {"name": "alumniGroupId", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/members": {
            "get": {
                "tags": ["Members"],
                "summary": "List members for marking",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/attendance": {
            "get": {
                "tags": ["Attendance"],
                "summary": "Browse attendance records",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "eventId", "in": "query", "type": "integer", "required": true},
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "dateFrom", "in": "query", "type": "string"},
                    {"name": "dateTo", "in": "query", "type": "string"},
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "pageSize", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Attendance"],
                "summary": "Record attendance for a roster",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "201": {"description": "Per-record results", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/attendance/{id}": {
            "put": {
                "tags": ["Attendance"],
                "summary": "Update one attendance record's status",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}],
                "responses": {
                    "200": {"description": "Updated record", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/attendance/dates": {
            "get": {
                "tags": ["Attendance"],
                "summary": "Distinct attendance dates with quick-range availability",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/attendance/student-analytics": {
            "get": {
                "tags": ["Attendance"],
                "summary": "Per-member attendance statistics",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/engagement/analytics": {
            "get": {
                "tags": ["Engagement"],
                "summary": "Engagement dataset for the deepest scope in the query",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/engagement/regions": {
            "get": {
                "tags": ["Engagement"],
                "summary": "National overview, one row per region",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/engagement/universities": {
            "get": {
                "tags": ["Engagement"],
                "summary": "Region expansion, one row per university",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "regionId", "in": "query", "type": "integer", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/engagement/small-groups": {
            "get": {
                "tags": ["Engagement"],
                "summary": "University expansion, one row per small group",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "universityId", "in": "query", "type": "integer", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/engagement/members": {
            "get": {
                "tags": ["Engagement"],
                "summary": "Small-group expansion, one row per member",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "smallGroupId", "in": "query", "type": "integer", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/engagement/export-details": {
            "get": {
                "tags": ["Engagement"],
                "summary": "Detail rows backing report exports",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/engagement/export": {
            "get": {
                "tags": ["Engagement"],
                "summary": "Download the engagement report document",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "format", "in": "query", "type": "string"}],
                "produces": ["application/pdf", "text/csv"],
                "responses": {"200": {"description": "Report document"}}
            }
        },
        "/contributions/analytics": {
            "get": {
                "tags": ["Contributions"],
                "summary": "Contribution totals under the caller's scope",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        }
    },
    "definitions": {
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
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
