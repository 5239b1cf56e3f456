package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Tutoring Scheduler API",
        "description": "Term calendars, tutor availability and appointment booking",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Terms", "description": "Tutoring terms"},
        {"name": "Calendar", "description": "Bookable dates of a term"},
        {"name": "Tutors", "description": "Tutor matching and slot pickers"},
        {"name": "Appointments", "description": "Booking, rescheduling and cancellation"}
    ],
    "paths": {
        "/terms": {
            "get": {
                "tags": ["Terms"],
                "summary": "List terms",
                "parameters": [
                    {"name": "published", "in": "query", "type": "boolean"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "sort", "in": "query", "type": "string", "enum": ["name", "start_date", "end_date", "created_at"]},
                    {"name": "order", "in": "query", "type": "string", "enum": ["asc", "desc"]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/terms/{id}": {
            "get": {
                "tags": ["Terms"],
                "summary": "Get term",
                "parameters": [
                    {"$ref": "#/parameters/TermID"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/terms/{id}/calendar/disabled-dates": {
            "get": {
                "tags": ["Calendar"],
                "summary": "Dates without any available tutor",
                "parameters": [
                    {"$ref": "#/parameters/TermID"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/terms/{id}/calendar/days/{date}": {
            "get": {
                "tags": ["Calendar"],
                "summary": "Calendar cell state",
                "parameters": [
                    {"$ref": "#/parameters/TermID"},
                    {"name": "date", "in": "path", "required": true, "type": "string", "format": "date"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/terms/{id}/calendar/refresh": {
            "post": {
                "tags": ["Calendar"],
                "summary": "Drop cached calendar data for a term",
                "parameters": [
                    {"$ref": "#/parameters/TermID"}
                ],
                "responses": {
                    "204": {"description": "Refreshed"}
                }
            }
        },
        "/terms/{id}/tutors": {
            "get": {
                "tags": ["Tutors"],
                "summary": "Tutors teaching a course on a date",
                "parameters": [
                    {"$ref": "#/parameters/TermID"},
                    {"name": "course", "in": "query", "required": true, "type": "string"},
                    {"name": "date", "in": "query", "required": true, "type": "string", "format": "date"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/terms/{id}/tutors/{userId}/start-times": {
            "get": {
                "tags": ["Tutors"],
                "summary": "Bookable start times",
                "parameters": [
                    {"$ref": "#/parameters/TermID"},
                    {"$ref": "#/parameters/TutorID"},
                    {"$ref": "#/parameters/StudentID"},
                    {"$ref": "#/parameters/SlotDate"},
                    {"$ref": "#/parameters/AppointmentID"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/terms/{id}/tutors/{userId}/end-times": {
            "get": {
                "tags": ["Tutors"],
                "summary": "End times offered for a start time",
                "parameters": [
                    {"$ref": "#/parameters/TermID"},
                    {"$ref": "#/parameters/TutorID"},
                    {"$ref": "#/parameters/StudentID"},
                    {"$ref": "#/parameters/SlotDate"},
                    {"name": "start", "in": "query", "required": true, "type": "string", "example": "10:00"},
                    {"$ref": "#/parameters/AppointmentID"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/terms/{id}/tutors/{userId}/location": {
            "get": {
                "tags": ["Tutors"],
                "summary": "Location a slot resolves to",
                "parameters": [
                    {"$ref": "#/parameters/TermID"},
                    {"$ref": "#/parameters/TutorID"},
                    {"$ref": "#/parameters/StudentID"},
                    {"$ref": "#/parameters/SlotDate"},
                    {"name": "start", "in": "query", "type": "string"},
                    {"name": "end", "in": "query", "required": true, "type": "string"},
                    {"$ref": "#/parameters/AppointmentID"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/appointments": {
            "post": {
                "tags": ["Appointments"],
                "summary": "Book an appointment",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AppointmentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "412": {"description": "Term not open for booking", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Rejected; meta.violations lists the broken rules", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/appointments/validate": {
            "post": {
                "tags": ["Appointments"],
                "summary": "Check an appointment against the booking rules",
                "parameters": [
                    {"$ref": "#/parameters/AppointmentID"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AppointmentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/appointments/{id}": {
            "put": {
                "tags": ["Appointments"],
                "summary": "Move or edit an appointment",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AppointmentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Rejected", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Appointments"],
                "summary": "Cancel an appointment",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "204": {"description": "Cancelled"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/users/{id}/appointments": {
            "get": {
                "tags": ["Appointments"],
                "summary": "Appointments of a user",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "role", "in": "query", "required": true, "type": "string", "enum": ["TUTOR", "STUDENT"]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "parameters": {
        "TermID": {"name": "id", "in": "path", "required": true, "type": "integer"},
        "TutorID": {"name": "userId", "in": "path", "required": true, "type": "string"},
        "StudentID": {"name": "student_id", "in": "query", "required": true, "type": "string"},
        "SlotDate": {"name": "date", "in": "query", "required": true, "type": "string", "format": "date"},
        "AppointmentID": {"name": "appointment_id", "in": "query", "type": "integer"}
    },
    "definitions": {
        "AppointmentRequest": {
            "type": "object",
            "required": ["term_id", "tutor_id", "tutee_id", "date"],
            "properties": {
                "term_id": {"type": "integer"},
                "tutor_id": {"type": "string"},
                "tutee_id": {"type": "string"},
                "date": {"type": "string", "format": "date"},
                "start_time": {"type": "string", "example": "09:00"},
                "end_time": {"type": "string", "example": "10:00"},
                "location": {"type": "string"},
                "course": {"type": "string"},
                "purpose": {"type": "string"}
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
