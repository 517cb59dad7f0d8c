package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Campus Pulse Wellbeing API",
        "description": "Student wellbeing tracking with stress trend analysis and high-stress alerting",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Students", "description": "Student roster management"},
        {"name": "Modules", "description": "Module catalogue"},
        {"name": "Surveys", "description": "Weekly wellbeing surveys"},
        {"name": "Attendance", "description": "Weekly attendance records"},
        {"name": "Submissions", "description": "Assignment submission records"},
        {"name": "Analysis", "description": "Stress, attendance and grade analysis"},
        {"name": "Alerts", "description": "High-stress alert engine"},
        {"name": "Exports", "description": "CSV/PDF dataset exports"}
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
                    "200": {"description": "Ready"},
                    "503": {"description": "Degraded"}
                }
            }
        },
        "/api/v1/students": {
            "get": {
                "tags": ["Students"],
                "summary": "List students",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "include_inactive", "in": "query", "type": "boolean"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "page_size", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Students"],
                "summary": "Create student",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateStudentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Duplicate student number"}
                }
            }
        },
        "/api/v1/students/{id}": {
            "get": {
                "tags": ["Students"],
                "summary": "Get student",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            },
            "put": {
                "tags": ["Students"],
                "summary": "Update student",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateStudentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Students"],
                "summary": "Delete student permanently",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/api/v1/students/{id}/deactivate": {
            "post": {
                "tags": ["Students"],
                "summary": "Soft-delete student",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "204": {"description": "Deactivated"}
                }
            }
        },
        "/api/v1/modules": {
            "get": {
                "tags": ["Modules"],
                "summary": "List modules",
                "parameters": [
                    {"name": "include_inactive", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/modules/{id}": {
            "get": {
                "tags": ["Modules"],
                "summary": "Get module",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/modules/{id}/enrolments": {
            "get": {
                "tags": ["Modules"],
                "summary": "List module enrolments",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/surveys": {
            "get": {
                "tags": ["Surveys"],
                "summary": "List survey responses",
                "parameters": [
                    {"name": "student_id", "in": "query", "type": "integer"},
                    {"name": "module_id", "in": "query", "type": "integer"},
                    {"name": "week_number", "in": "query", "type": "integer"},
                    {"name": "include_inactive", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Surveys"],
                "summary": "Record survey response",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SurveyRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/surveys/{id}": {
            "get": {
                "tags": ["Surveys"],
                "summary": "Get survey response",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Surveys"],
                "summary": "Update survey response",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SurveyRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Surveys"],
                "summary": "Delete survey response permanently",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/api/v1/attendance": {
            "get": {
                "tags": ["Attendance"],
                "summary": "List attendance records",
                "parameters": [
                    {"name": "student_id", "in": "query", "type": "integer"},
                    {"name": "module_id", "in": "query", "type": "integer"},
                    {"name": "week_number", "in": "query", "type": "integer"},
                    {"name": "include_inactive", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Attendance"],
                "summary": "Record attendance",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AttendanceRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/submissions": {
            "get": {
                "tags": ["Submissions"],
                "summary": "List submission records",
                "parameters": [
                    {"name": "student_id", "in": "query", "type": "integer"},
                    {"name": "module_id", "in": "query", "type": "integer"},
                    {"name": "include_inactive", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Submissions"],
                "summary": "Record submission",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubmissionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/analysis/students/{id}/stress-trend": {
            "get": {
                "tags": ["Analysis"],
                "summary": "Weekly stress curve for one student",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "module_id", "in": "query", "type": "integer"},
                    {"name": "include_inactive", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/analysis/students/{id}/attendance": {
            "get": {
                "tags": ["Analysis"],
                "summary": "Mean attendance rate for one student",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "module_id", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/analysis/attendance": {
            "get": {
                "tags": ["Analysis"],
                "summary": "Mean attendance rate per student",
                "parameters": [
                    {"name": "module_id", "in": "query", "type": "integer"},
                    {"name": "include_inactive", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/analysis/stress-grade": {
            "get": {
                "tags": ["Analysis"],
                "summary": "Per-module stress/grade comparison with Pearson correlation",
                "parameters": [
                    {"name": "module_ids", "in": "query", "type": "string", "description": "Comma separated module ids"},
                    {"name": "include_inactive", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/analysis/grade-distribution": {
            "get": {
                "tags": ["Analysis"],
                "summary": "Grade histogram buckets",
                "parameters": [
                    {"name": "module_id", "in": "query", "type": "integer"},
                    {"name": "include_inactive", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/analysis/stress-grade/scatter": {
            "get": {
                "tags": ["Analysis"],
                "summary": "Raw stress/grade scatter points",
                "parameters": [
                    {"name": "module_id", "in": "query", "type": "integer"},
                    {"name": "include_inactive", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/analysis/system": {
            "get": {
                "tags": ["Analysis"],
                "summary": "Instrumentation snapshot",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/alerts": {
            "get": {
                "tags": ["Alerts"],
                "summary": "List alerts",
                "parameters": [
                    {"name": "student_id", "in": "query", "type": "integer"},
                    {"name": "module_id", "in": "query", "type": "integer"},
                    {"name": "resolved", "in": "query", "type": "boolean"},
                    {"name": "include_inactive", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/alerts/generate": {
            "post": {
                "tags": ["Alerts"],
                "summary": "Run the consecutive-week detector and materialize alerts",
                "parameters": [
                    {"name": "payload", "in": "body", "schema": {"$ref": "#/definitions/GenerateAlertsRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/alerts/events": {
            "get": {
                "tags": ["Alerts"],
                "summary": "Dry-run the detector without writing alerts",
                "parameters": [
                    {"name": "threshold", "in": "query", "type": "integer"},
                    {"name": "module_id", "in": "query", "type": "integer"},
                    {"name": "include_inactive", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/alerts/{id}/resolve": {
            "post": {
                "tags": ["Alerts"],
                "summary": "Mark alert as handled",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/exports/alerts": {
            "get": {
                "tags": ["Exports"],
                "summary": "Download the alert set as CSV or PDF",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "Document"}
                }
            }
        },
        "/api/v1/exports/students/{id}/stress-trend": {
            "get": {
                "tags": ["Exports"],
                "summary": "Download one student's stress curve as CSV or PDF",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "Document"}
                }
            }
        }
    },
    "definitions": {
        "CreateStudentRequest": {
            "type": "object",
            "required": ["student_number", "full_name"],
            "properties": {
                "student_number": {"type": "string"},
                "full_name": {"type": "string"},
                "email": {"type": "string"},
                "course_name": {"type": "string"},
                "year_of_study": {"type": "integer"}
            }
        },
        "UpdateStudentRequest": {
            "type": "object",
            "required": ["student_number", "full_name"],
            "properties": {
                "student_number": {"type": "string"},
                "full_name": {"type": "string"},
                "email": {"type": "string"},
                "course_name": {"type": "string"},
                "year_of_study": {"type": "integer"},
                "is_active": {"type": "boolean"}
            }
        },
        "SurveyRequest": {
            "type": "object",
            "required": ["student_id", "week_number", "stress_level"],
            "properties": {
                "student_id": {"type": "integer"},
                "module_id": {"type": "integer"},
                "week_number": {"type": "integer"},
                "stress_level": {"type": "integer", "minimum": 1, "maximum": 5},
                "hours_slept": {"type": "number"},
                "mood_comment": {"type": "string"}
            }
        },
        "AttendanceRequest": {
            "type": "object",
            "required": ["student_id", "module_id", "week_number"],
            "properties": {
                "student_id": {"type": "integer"},
                "module_id": {"type": "integer"},
                "week_number": {"type": "integer"},
                "attended_sessions": {"type": "integer"},
                "total_sessions": {"type": "integer"},
                "attendance_rate": {"type": "number", "minimum": 0, "maximum": 1}
            }
        },
        "SubmissionRequest": {
            "type": "object",
            "required": ["student_id", "module_id", "assessment_name"],
            "properties": {
                "student_id": {"type": "integer"},
                "module_id": {"type": "integer"},
                "assessment_name": {"type": "string"},
                "due_date": {"type": "string"},
                "submitted_date": {"type": "string"},
                "is_submitted": {"type": "boolean"},
                "is_late": {"type": "boolean"}
            }
        },
        "GenerateAlertsRequest": {
            "type": "object",
            "properties": {
                "threshold": {"type": "integer", "minimum": 1, "maximum": 5},
                "module_id": {"type": "integer"},
                "include_inactive": {"type": "boolean"},
                "clear_old": {"type": "boolean"}
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
