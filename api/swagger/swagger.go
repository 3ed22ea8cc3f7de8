package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Clinic Readiness API",
        "description": "Readiness assessments, goal generation and progress tracking for a clinician's caseload.",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Children", "description": "Clinician caseload"},
        {"name": "Assessments", "description": "Readiness questionnaire and finalization"},
        {"name": "Goals", "description": "Generated goals, edits and trial sessions"},
        {"name": "Behavior", "description": "Behavior logs and reinforcer tracking"},
        {"name": "Readiness", "description": "Readiness summaries and dashboard"}
    ],
    "parameters": {
        "Clinician": {"name": "X-Clinician-ID", "in": "header", "type": "string", "required": true},
        "ChildID": {"name": "id", "in": "path", "type": "string", "required": true},
        "GoalID": {"name": "goalId", "in": "path", "type": "string", "required": true}
    },
    "responses": {
        "Envelope": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
        "Error": {"description": "Error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
    },
    "paths": {
        "/dashboard": {
            "get": {
                "tags": ["Readiness"],
                "summary": "Clinician caseload dashboard",
                "parameters": [{"$ref": "#/parameters/Clinician"}],
                "responses": {"200": {"$ref": "#/responses/Envelope"}}
            }
        },
        "/children": {
            "get": {
                "tags": ["Children"],
                "summary": "List children",
                "parameters": [
                    {"$ref": "#/parameters/Clinician"},
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"$ref": "#/responses/Envelope"}}
            },
            "post": {
                "tags": ["Children"],
                "summary": "Add a child to the caseload",
                "parameters": [
                    {"$ref": "#/parameters/Clinician"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateChildRequest"}}
                ],
                "responses": {"201": {"$ref": "#/responses/Envelope"}, "400": {"$ref": "#/responses/Error"}}
            }
        },
        "/children/{id}": {
            "get": {
                "tags": ["Children"],
                "summary": "Get a child record",
                "parameters": [{"$ref": "#/parameters/Clinician"}, {"$ref": "#/parameters/ChildID"}],
                "responses": {"200": {"$ref": "#/responses/Envelope"}, "403": {"$ref": "#/responses/Error"}, "404": {"$ref": "#/responses/Error"}}
            },
            "delete": {
                "tags": ["Children"],
                "summary": "Remove a child",
                "parameters": [{"$ref": "#/parameters/Clinician"}, {"$ref": "#/parameters/ChildID"}],
                "responses": {"204": {"description": "Deleted"}, "404": {"$ref": "#/responses/Error"}}
            }
        },
        "/children/{id}/questions": {
            "get": {
                "tags": ["Assessments"],
                "summary": "Question bank",
                "parameters": [{"$ref": "#/parameters/Clinician"}, {"$ref": "#/parameters/ChildID"}],
                "responses": {"200": {"$ref": "#/responses/Envelope"}}
            }
        },
        "/children/{id}/assessments": {
            "get": {
                "tags": ["Assessments"],
                "summary": "List assessments",
                "parameters": [{"$ref": "#/parameters/Clinician"}, {"$ref": "#/parameters/ChildID"}],
                "responses": {"200": {"$ref": "#/responses/Envelope"}}
            }
        },
        "/children/{id}/assessments/draft/responses": {
            "put": {
                "tags": ["Assessments"],
                "summary": "Record an answer on the draft assessment",
                "parameters": [
                    {"$ref": "#/parameters/Clinician"},
                    {"$ref": "#/parameters/ChildID"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SetResponseRequest"}}
                ],
                "responses": {"200": {"$ref": "#/responses/Envelope"}, "400": {"$ref": "#/responses/Error"}}
            }
        },
        "/children/{id}/assessments/finalize": {
            "post": {
                "tags": ["Assessments"],
                "summary": "Finalize the draft and generate goals",
                "parameters": [{"$ref": "#/parameters/Clinician"}, {"$ref": "#/parameters/ChildID"}],
                "responses": {"200": {"$ref": "#/responses/Envelope"}, "409": {"$ref": "#/responses/Error"}}
            }
        },
        "/children/{id}/goals": {
            "get": {
                "tags": ["Goals"],
                "summary": "List goals with statements",
                "parameters": [{"$ref": "#/parameters/Clinician"}, {"$ref": "#/parameters/ChildID"}],
                "responses": {"200": {"$ref": "#/responses/Envelope"}}
            }
        },
        "/children/{id}/goals/archive": {
            "get": {
                "tags": ["Goals"],
                "summary": "Archived goal sets",
                "parameters": [{"$ref": "#/parameters/Clinician"}, {"$ref": "#/parameters/ChildID"}],
                "responses": {"200": {"$ref": "#/responses/Envelope"}}
            }
        },
        "/children/{id}/goals/{goalId}": {
            "patch": {
                "tags": ["Goals"],
                "summary": "Edit goal fields",
                "parameters": [
                    {"$ref": "#/parameters/Clinician"},
                    {"$ref": "#/parameters/ChildID"},
                    {"$ref": "#/parameters/GoalID"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GoalPatch"}}
                ],
                "responses": {"200": {"$ref": "#/responses/Envelope"}, "404": {"$ref": "#/responses/Error"}}
            }
        },
        "/children/{id}/goals/{goalId}/status": {
            "put": {
                "tags": ["Goals"],
                "summary": "Set goal status",
                "parameters": [
                    {"$ref": "#/parameters/Clinician"},
                    {"$ref": "#/parameters/ChildID"},
                    {"$ref": "#/parameters/GoalID"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GoalStatusRequest"}}
                ],
                "responses": {"200": {"$ref": "#/responses/Envelope"}, "400": {"$ref": "#/responses/Error"}}
            }
        },
        "/children/{id}/goals/{goalId}/sessions": {
            "post": {
                "tags": ["Goals"],
                "summary": "Record a trial session",
                "parameters": [
                    {"$ref": "#/parameters/Clinician"},
                    {"$ref": "#/parameters/ChildID"},
                    {"$ref": "#/parameters/GoalID"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SessionInput"}}
                ],
                "responses": {"201": {"$ref": "#/responses/Envelope"}, "400": {"$ref": "#/responses/Error"}}
            }
        },
        "/children/{id}/behaviors": {
            "get": {
                "tags": ["Behavior"],
                "summary": "Behavior logs with the current penalty",
                "parameters": [{"$ref": "#/parameters/Clinician"}, {"$ref": "#/parameters/ChildID"}],
                "responses": {"200": {"$ref": "#/responses/Envelope"}}
            },
            "post": {
                "tags": ["Behavior"],
                "summary": "Record a behavior log",
                "parameters": [
                    {"$ref": "#/parameters/Clinician"},
                    {"$ref": "#/parameters/ChildID"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BehaviorLogRequest"}}
                ],
                "responses": {"201": {"$ref": "#/responses/Envelope"}, "400": {"$ref": "#/responses/Error"}}
            }
        },
        "/children/{id}/reinforcers": {
            "post": {
                "tags": ["Behavior"],
                "summary": "Record reinforcer trials",
                "parameters": [
                    {"$ref": "#/parameters/Clinician"},
                    {"$ref": "#/parameters/ChildID"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ReinforcerRequest"}}
                ],
                "responses": {"200": {"$ref": "#/responses/Envelope"}, "400": {"$ref": "#/responses/Error"}}
            }
        },
        "/children/{id}/reinforcers/top": {
            "get": {
                "tags": ["Behavior"],
                "summary": "Best reinforcers by success rate",
                "parameters": [
                    {"$ref": "#/parameters/Clinician"},
                    {"$ref": "#/parameters/ChildID"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"$ref": "#/responses/Envelope"}}
            }
        },
        "/children/{id}/readiness": {
            "get": {
                "tags": ["Readiness"],
                "summary": "Current readiness",
                "parameters": [{"$ref": "#/parameters/Clinician"}, {"$ref": "#/parameters/ChildID"}],
                "responses": {"200": {"$ref": "#/responses/Envelope"}}
            }
        },
        "/children/{id}/readiness/history": {
            "get": {
                "tags": ["Readiness"],
                "summary": "Readiness timeline",
                "parameters": [{"$ref": "#/parameters/Clinician"}, {"$ref": "#/parameters/ChildID"}],
                "responses": {"200": {"$ref": "#/responses/Envelope"}}
            }
        }
    },
    "definitions": {
        "CreateChildRequest": {
            "type": "object",
            "required": ["name", "age", "grade"],
            "properties": {
                "name": {"type": "string"},
                "age": {"type": "integer"},
                "grade": {"type": "string"}
            }
        },
        "SetResponseRequest": {
            "type": "object",
            "required": ["domain", "question_id"],
            "properties": {
                "domain": {"type": "string", "enum": ["Communication", "Social", "Adaptive", "Academic", "Behavior"]},
                "question_id": {"type": "string"},
                "value": {"type": "string"}
            }
        },
        "GoalPatch": {
            "type": "object",
            "properties": {
                "condition": {"type": "string"},
                "behavior": {"type": "string"},
                "criteria": {"type": "string"},
                "mastery_rule": {"type": "string"},
                "generalization": {"type": "boolean"},
                "maintenance_flag": {"type": "boolean"}
            }
        },
        "GoalStatusRequest": {
            "type": "object",
            "required": ["status"],
            "properties": {
                "status": {"type": "string", "enum": ["Active", "Mastered", "Maintenance"]}
            }
        },
        "SessionInput": {
            "type": "object",
            "required": ["trials_total"],
            "properties": {
                "date": {"type": "string", "format": "date-time"},
                "trials_correct": {"type": "integer"},
                "trials_total": {"type": "integer"},
                "notes": {"type": "string"}
            }
        },
        "BehaviorLogRequest": {
            "type": "object",
            "required": ["type", "frequency"],
            "properties": {
                "date": {"type": "string", "format": "date-time"},
                "type": {"type": "string"},
                "frequency": {"type": "integer"},
                "antecedent": {"type": "string"},
                "behavior_description": {"type": "string"},
                "consequence": {"type": "string"}
            }
        },
        "ReinforcerRequest": {
            "type": "object",
            "required": ["name", "attempts"],
            "properties": {
                "name": {"type": "string"},
                "successes": {"type": "integer"},
                "attempts": {"type": "integer"}
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
                "violations": {"type": "array", "items": {"$ref": "#/definitions/Violation"}}
            }
        },
        "Violation": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "rule": {"type": "string"},
                "param": {"type": "string"}
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
