package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "SMA Analytics API",
        "description": "On-demand attendance, grade and fee analytics for schools",
        "version": "1.0.0"
    },
    "basePath": "/",
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
        {
            "name": "Analytics",
            "description": "Statistical aggregations computed from school records"
        },
        {
            "name": "System",
            "description": "Probes and metrics"
        }
    ],
    "paths": {
        "/health": {
            "get": {
                "tags": [
                    "System"
                ],
                "summary": "Health check",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/ready": {
            "get": {
                "tags": [
                    "System"
                ],
                "summary": "Readiness check",
                "responses": {
                    "200": {
                        "description": "Ready"
                    },
                    "503": {
                        "description": "Record store unavailable"
                    }
                }
            }
        },
        "/metrics": {
            "get": {
                "tags": [
                    "System"
                ],
                "summary": "Prometheus metrics",
                "produces": [
                    "text/plain"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/v1/analytics/attendance": {
            "get": {
                "tags": [
                    "Analytics"
                ],
                "summary": "Per-date attendance of a class",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "classId",
                        "in": "query",
                        "type": "string",
                        "required": true,
                        "description": "Class ID"
                    },
                    {
                        "name": "startDate",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "YYYY-MM-DD or RFC3339"
                    },
                    {
                        "name": "endDate",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "YYYY-MM-DD or RFC3339"
                    },
                    {
                        "name": "period",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "month, quarter or year"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK, data is DailyAttendance[]",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Invalid parameters",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Entity not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "500": {
                        "description": "Store unavailable",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "description": "Roles: SUPERADMIN, ADMIN, TEACHER"
            }
        },
        "/api/v1/analytics/grades": {
            "get": {
                "tags": [
                    "Analytics"
                ],
                "summary": "Grade statistics of a class for an exam type",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "classId",
                        "in": "query",
                        "type": "string",
                        "required": true,
                        "description": "Class ID"
                    },
                    {
                        "name": "examType",
                        "in": "query",
                        "type": "string",
                        "required": true,
                        "description": "Exam type"
                    },
                    {
                        "name": "subject",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "Subject ID"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK, data is GradeStats",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Invalid parameters",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Entity not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "500": {
                        "description": "Store unavailable",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "description": "Roles: SUPERADMIN, ADMIN, TEACHER"
            }
        },
        "/api/v1/analytics/teacher-performance": {
            "get": {
                "tags": [
                    "Analytics"
                ],
                "summary": "Attendance and grading summary of a teacher",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "teacherId",
                        "in": "query",
                        "type": "string",
                        "required": true,
                        "description": "Teacher ID"
                    },
                    {
                        "name": "startDate",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "YYYY-MM-DD or RFC3339"
                    },
                    {
                        "name": "endDate",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "YYYY-MM-DD or RFC3339"
                    },
                    {
                        "name": "period",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "month, quarter or year"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK, data is TeacherPerformance",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Invalid parameters",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Entity not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "500": {
                        "description": "Store unavailable",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "description": "Roles: SUPERADMIN, ADMIN, the teacher"
            }
        },
        "/api/v1/analytics/school-performance": {
            "get": {
                "tags": [
                    "Analytics"
                ],
                "summary": "Monthly attendance, grade and fee trends of a school",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "schoolId",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "School ID, defaults to the caller's school"
                    },
                    {
                        "name": "year",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "Calendar year"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK, data is SchoolPerformance",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Invalid parameters",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Entity not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "500": {
                        "description": "Store unavailable",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "description": "Roles: SUPERADMIN, ADMIN"
            }
        },
        "/api/v1/analytics/class-averages": {
            "get": {
                "tags": [
                    "Analytics"
                ],
                "summary": "Grade statistics of a class for a subject and exam type",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "classId",
                        "in": "query",
                        "type": "string",
                        "required": true,
                        "description": "Class ID"
                    },
                    {
                        "name": "subject",
                        "in": "query",
                        "type": "string",
                        "required": true,
                        "description": "Subject ID"
                    },
                    {
                        "name": "examType",
                        "in": "query",
                        "type": "string",
                        "required": true,
                        "description": "Exam type"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK, data is GradeStats",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Invalid parameters",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Entity not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "500": {
                        "description": "Store unavailable",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "description": "Roles: SUPERADMIN, ADMIN, TEACHER"
            }
        },
        "/api/v1/analytics/student-vs-class": {
            "get": {
                "tags": [
                    "Analytics"
                ],
                "summary": "Compare a student with their class",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "studentId",
                        "in": "query",
                        "type": "string",
                        "required": true,
                        "description": "Student ID"
                    },
                    {
                        "name": "subject",
                        "in": "query",
                        "type": "string",
                        "required": true,
                        "description": "Subject ID"
                    },
                    {
                        "name": "examType",
                        "in": "query",
                        "type": "string",
                        "required": true,
                        "description": "Exam type"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK, data is StudentComparison",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Invalid parameters",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Entity not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "500": {
                        "description": "Store unavailable",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "description": "Roles: SUPERADMIN, ADMIN, TEACHER, the student"
            }
        },
        "/api/v1/analytics/system": {
            "get": {
                "tags": [
                    "Analytics"
                ],
                "summary": "Instrumentation snapshot",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [],
                "responses": {
                    "200": {
                        "description": "OK, data is SystemMetrics",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Invalid parameters",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Entity not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "500": {
                        "description": "Store unavailable",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "description": "Roles: SUPERADMIN"
            }
        },
        "/api/v1/analytics/school-performance/export": {
            "get": {
                "tags": [
                    "Analytics"
                ],
                "summary": "Download the school performance report",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "schoolId",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "School ID"
                    },
                    {
                        "name": "year",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "Calendar year"
                    },
                    {
                        "name": "format",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "csv or pdf"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Report file",
                        "schema": {
                            "type": "file"
                        }
                    },
                    "400": {
                        "description": "Invalid parameters",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Entity not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "500": {
                        "description": "Store unavailable",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "description": "Roles: SUPERADMIN, ADMIN",
                "produces": [
                    "text/csv",
                    "application/pdf"
                ]
            }
        }
    },
    "definitions": {
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "success": {
                    "type": "boolean"
                },
                "data": {
                    "type": "object"
                },
                "message": {
                    "type": "string"
                },
                "code": {
                    "type": "string"
                }
            }
        },
        "DailyAttendance": {
            "type": "object",
            "properties": {
                "date": {
                    "type": "string"
                },
                "totalStudents": {
                    "type": "integer"
                },
                "presentCount": {
                    "type": "integer"
                },
                "attendancePercentage": {
                    "type": "number"
                }
            }
        },
        "GradeStats": {
            "type": "object",
            "properties": {
                "average": {
                    "type": "number"
                },
                "median": {
                    "type": "number"
                },
                "highest": {
                    "type": "number"
                },
                "lowest": {
                    "type": "number"
                },
                "count": {
                    "type": "integer"
                }
            }
        },
        "ClassAttendance": {
            "type": "object",
            "properties": {
                "classId": {
                    "type": "string"
                },
                "avgAttendancePct": {
                    "type": "number",
                    "x-nullable": true
                }
            }
        },
        "TeacherPerformance": {
            "type": "object",
            "properties": {
                "teacherId": {
                    "type": "string"
                },
                "classCount": {
                    "type": "integer"
                },
                "attendanceByClass": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/ClassAttendance"
                    }
                },
                "averageGradeGiven": {
                    "type": "number",
                    "x-nullable": true
                },
                "totalGradesGiven": {
                    "type": "integer"
                }
            }
        },
        "MonthlyAttendance": {
            "type": "object",
            "properties": {
                "year": {
                    "type": "integer"
                },
                "month": {
                    "type": "integer"
                },
                "avgAttendancePct": {
                    "type": "number"
                }
            }
        },
        "ExamTypeStats": {
            "type": "object",
            "properties": {
                "examType": {
                    "type": "string"
                },
                "averageMarks": {
                    "type": "number"
                },
                "count": {
                    "type": "integer"
                }
            }
        },
        "MonthlyCollection": {
            "type": "object",
            "properties": {
                "year": {
                    "type": "integer"
                },
                "month": {
                    "type": "integer"
                },
                "totalCollected": {
                    "type": "number"
                }
            }
        },
        "SchoolPerformance": {
            "type": "object",
            "properties": {
                "schoolId": {
                    "type": "string"
                },
                "year": {
                    "type": "integer"
                },
                "attendanceMonthly": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/MonthlyAttendance"
                    }
                },
                "gradeStats": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/ExamTypeStats"
                    }
                },
                "feeCollections": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/MonthlyCollection"
                    }
                }
            }
        },
        "StudentComparison": {
            "type": "object",
            "properties": {
                "studentId": {
                    "type": "string"
                },
                "studentScore": {
                    "type": "number",
                    "x-nullable": true
                },
                "classAverage": {
                    "type": "number",
                    "x-nullable": true
                },
                "studentsCounted": {
                    "type": "integer"
                }
            }
        },
        "SystemMetrics": {
            "type": "object",
            "properties": {
                "requestsTotal": {
                    "type": "integer"
                },
                "averageRequestDurationMs": {
                    "type": "number"
                },
                "storeQueryCount": {
                    "type": "integer"
                },
                "averageStoreQueryMs": {
                    "type": "number"
                },
                "storeQueryFailures": {
                    "type": "integer"
                },
                "goroutines": {
                    "type": "integer"
                },
                "generatedAt": {
                    "type": "string",
                    "format": "date-time"
                }
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
