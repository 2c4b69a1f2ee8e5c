package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Legal Intake API",
        "description": "Client intake, issue taxonomy, document-generation mapping and case workflow.",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Taxonomy", "description": "Issue categories and options"},
        {"name": "Intakes", "description": "Client intake submissions and issue metadata"},
        {"name": "DocGen", "description": "Document-generation input and events"},
        {"name": "Cases", "description": "Case dashboard and workflow"},
        {"name": "Activities", "description": "Append-only case activity log"},
        {"name": "Notes", "description": "Case notes"}
    ],
    "paths": {
        "/health": {
            "get": {"summary": "Health check", "responses": {"200": {"description": "OK"}}}
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {"200": {"description": "Ready"}, "503": {"description": "Database unreachable"}}
            }
        },
        "/metrics/summary": {
            "get": {
                "summary": "In-process metrics summary",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/api/v1/taxonomy/categories": {
            "get": {
                "tags": ["Taxonomy"],
                "summary": "List issue categories",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "active", "in": "query", "type": "boolean", "default": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Taxonomy"],
                "summary": "Create an issue category",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateCategoryRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Duplicate code", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/taxonomy/categories/{code}": {
            "get": {
                "tags": ["Taxonomy"],
                "summary": "Get a category with its options",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "code", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "delete": {
                "tags": ["Taxonomy"],
                "summary": "Delete an unreferenced category",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "code", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "204": {"description": "Deleted"},
                    "409": {"description": "Referenced by intake data", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/taxonomy/categories/{code}/options": {
            "get": {
                "tags": ["Taxonomy"],
                "summary": "List the options of a category",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "code", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/api/v1/taxonomy/categories/{code}/options/{option}": {
            "delete": {
                "tags": ["Taxonomy"],
                "summary": "Delete an unreferenced option",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "code", "in": "path", "required": true, "type": "string"},
                    {"name": "option", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"},
                    "409": {"description": "Referenced by intake data", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/taxonomy/options": {
            "post": {
                "tags": ["Taxonomy"],
                "summary": "Create an option under a category",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateOptionRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/api/v1/intakes": {
            "post": {
                "tags": ["Intakes"],
                "summary": "Submit a client intake",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubmitIntakeRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation failed or unknown category", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/intakes/{id}": {
            "get": {
                "tags": ["Intakes"],
                "summary": "Get an intake with its issue data",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/api/v1/intakes/{id}/issues/{category}": {
            "put": {
                "tags": ["Intakes"],
                "summary": "Replace the issue metadata of one category",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "category", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SaveIssueMetadataRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Unknown category", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/intakes/{id}/docgen": {
            "get": {
                "tags": ["DocGen"],
                "summary": "Build the document-generation input for an intake",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/api/v1/cases": {
            "get": {
                "tags": ["Cases"],
                "summary": "List cases",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "assignedTo", "in": "query", "type": "string"},
                    {"name": "priority", "in": "query", "type": "boolean"},
                    {"name": "archived", "in": "query", "type": "boolean"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "pageSize", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/api/v1/cases/{id}": {
            "get": {
                "tags": ["Cases"],
                "summary": "Get a case",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/api/v1/cases/{id}/status": {
            "post": {
                "tags": ["Cases"],
                "summary": "Change the workflow status of a case",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ChangeStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Unknown status", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/cases/{id}/assign": {
            "post": {
                "tags": ["Cases"],
                "summary": "Assign or unassign the responsible attorney",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AssignCaseRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/api/v1/cases/{id}/priority": {
            "post": {
                "tags": ["Cases"],
                "summary": "Flag or unflag a case as priority",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SetPriorityRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/api/v1/cases/{id}/archive": {
            "post": {
                "tags": ["Cases"],
                "summary": "Archive a case",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}, "409": {"description": "Already archived"}}
            }
        },
        "/api/v1/cases/{id}/unarchive": {
            "post": {
                "tags": ["Cases"],
                "summary": "Return an archived case to the dashboard",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}, "409": {"description": "Not archived"}}
            }
        },
        "/api/v1/cases/{id}/docgen/load": {
            "post": {
                "tags": ["DocGen"],
                "summary": "Load a case into document generation",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/api/v1/cases/{id}/docgen/generated": {
            "post": {
                "tags": ["DocGen"],
                "summary": "Record that documents were generated for a case",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/api/v1/cases/{id}/activities": {
            "get": {
                "tags": ["Activities"],
                "summary": "List the activity trail of a case",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "type", "in": "query", "type": "array", "items": {"type": "string"}, "collectionFormat": "multi"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/api/v1/cases/{id}/activities/export": {
            "get": {
                "tags": ["Activities"],
                "summary": "Download the activity trail of a case",
                "produces": ["text/csv", "application/pdf"],
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"], "default": "csv"}
                ],
                "responses": {
                    "200": {"description": "File", "schema": {"type": "file"}},
                    "412": {"description": "Export disabled or trail too long"}
                }
            }
        },
        "/api/v1/activities": {
            "get": {
                "tags": ["Activities"],
                "summary": "List activities across cases",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "type", "in": "query", "type": "array", "items": {"type": "string"}, "collectionFormat": "multi"},
                    {"name": "limit", "in": "query", "type": "integer", "default": 200},
                    {"name": "since", "in": "query", "type": "string", "format": "date-time"},
                    {"name": "cursor", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/cases/{id}/notes": {
            "get": {
                "tags": ["Notes"],
                "summary": "List the notes of a case",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "includeDeleted", "in": "query", "type": "boolean"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Notes"],
                "summary": "Add a note to a case",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/NoteRequest"}}
                ],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/api/v1/notes/{id}": {
            "get": {
                "tags": ["Notes"],
                "summary": "Get a note",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "patch": {
                "tags": ["Notes"],
                "summary": "Edit the content of a note",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/NoteRequest"}}
                ],
                "responses": {"200": {"description": "OK"}, "409": {"description": "Note is deleted"}}
            },
            "delete": {
                "tags": ["Notes"],
                "summary": "Soft-delete a note",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/notes/{id}/pin": {
            "post": {
                "tags": ["Notes"],
                "summary": "Pin a note",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/notes/{id}/unpin": {
            "post": {
                "tags": ["Notes"],
                "summary": "Unpin a note",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "definitions": {
        "CreateCategoryRequest": {
            "type": "object",
            "required": ["code", "name"],
            "properties": {
                "code": {"type": "string"},
                "name": {"type": "string"},
                "display_order": {"type": "integer"},
                "is_active": {"type": "boolean"}
            }
        },
        "CreateOptionRequest": {
            "type": "object",
            "required": ["category_code", "code", "name"],
            "properties": {
                "category_code": {"type": "string"},
                "code": {"type": "string"},
                "name": {"type": "string"},
                "display_order": {"type": "integer"}
            }
        },
        "SubmitIntakeRequest": {
            "type": "object",
            "required": ["client_name", "issues"],
            "properties": {
                "client_name": {"type": "string"},
                "client_email": {"type": "string"},
                "client_phone": {"type": "string"},
                "property_address": {"type": "string"},
                "schema_version": {"type": "string", "enum": ["v1", "v2", "compat"]},
                "issues": {
                    "type": "object",
                    "description": "Field bag per category code",
                    "additionalProperties": {"type": "object"}
                }
            }
        },
        "SaveIssueMetadataRequest": {
            "type": "object",
            "properties": {
                "details": {"type": "string"},
                "first_noticed": {"type": "string"},
                "severity": {"type": "string", "enum": ["mild", "moderate", "severe"]},
                "repair_history": {"type": "string"},
                "photos": {"type": "array", "items": {"type": "string"}}
            }
        },
        "ChangeStatusRequest": {
            "type": "object",
            "required": ["status"],
            "properties": {
                "status": {
                    "type": "string",
                    "enum": ["new", "in_review", "docs_in_progress", "docs_generated", "sent_to_client", "filed", "closed", "on_hold"]
                }
            }
        },
        "AssignCaseRequest": {
            "type": "object",
            "properties": {
                "attorney_ref": {"type": "string", "x-nullable": true}
            }
        },
        "SetPriorityRequest": {
            "type": "object",
            "required": ["is_priority"],
            "properties": {
                "is_priority": {"type": "boolean"}
            }
        },
        "NoteRequest": {
            "type": "object",
            "required": ["content"],
            "properties": {
                "content": {"type": "string"}
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
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"},
                "details": {"type": "object"}
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
