// Package docs registers the OpenAPI description served under /swagger
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/indices/vector": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["indices"],
                "summary": "Compute vector-borne indices",
                "parameters": [{"in": "body", "name": "counters", "required": true, "schema": {"$ref": "#/definitions/indices.VectorBorneCounters"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/indices.Report"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/indices/rodent": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["indices"],
                "summary": "Compute rodent-borne indices",
                "parameters": [{"in": "body", "name": "counters", "required": true, "schema": {"$ref": "#/definitions/indices.RodentBorneCounters"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/indices.Report"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/forms/vector": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["forms"],
                "summary": "Compute vector-borne indices from raw form text",
                "parameters": [{"in": "body", "name": "form", "required": true, "schema": {"type": "object", "additionalProperties": {"type": "string"}}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/indices.Report"}}}
            }
        },
        "/forms/rodent": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["forms"],
                "summary": "Compute rodent-borne indices from raw form text",
                "parameters": [{"in": "body", "name": "form", "required": true, "schema": {"type": "object", "additionalProperties": {"type": "string"}}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/indices.Report"}}}
            }
        },
        "/risk": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["risk"],
                "summary": "Assess computed indices against the risk thresholds",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/types.RiskRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/indices.Report"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/thresholds": {
            "get": {
                "produces": ["application/json"],
                "tags": ["risk"],
                "summary": "Active risk thresholds",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/types.ThresholdsResponse"}}}
            }
        }
    },
    "definitions": {
        "indices.VectorBorneCounters": {
            "type": "object",
            "properties": {
                "housesSurveyed": {"type": "integer", "minimum": 0},
                "positiveHouses": {"type": "integer", "minimum": 0},
                "containersInspected": {"type": "integer", "minimum": 0},
                "positiveContainers": {"type": "integer", "minimum": 0}
            }
        },
        "indices.RodentBorneCounters": {
            "type": "object",
            "properties": {
                "areasInspected": {"type": "integer", "minimum": 0},
                "rodentSightings": {"type": "integer", "minimum": 0},
                "trapsSet": {"type": "integer", "minimum": 0},
                "rodentsCaught": {"type": "integer", "minimum": 0},
                "waterSamplesCollected": {"type": "integer", "minimum": 0},
                "contaminatedSamples": {"type": "integer", "minimum": 0}
            }
        },
        "indices.ComputedIndices": {
            "type": "object",
            "properties": {
                "houseIndex": {"type": "number"},
                "containerIndex": {"type": "number"},
                "breteauIndex": {"type": "number"},
                "rodentIndex": {"type": "number"},
                "trapSuccessRate": {"type": "number"},
                "waterContaminationRate": {"type": "number"}
            }
        },
        "indices.RiskAssessment": {
            "type": "object",
            "properties": {
                "houseIndexHighRisk": {"type": "boolean"},
                "breteauIndexHighRisk": {"type": "boolean"},
                "rodentIndexHighRisk": {"type": "boolean"},
                "waterContaminationHighRisk": {"type": "boolean"}
            }
        },
        "indices.Thresholds": {
            "type": "object",
            "properties": {
                "houseIndex": {"type": "number"},
                "breteauIndex": {"type": "number"},
                "rodentIndex": {"type": "number"},
                "waterContamination": {"type": "number"}
            }
        },
        "indices.Report": {
            "type": "object",
            "properties": {
                "domain": {"type": "string", "enum": ["vector", "rodent"]},
                "indices": {"type": "object", "additionalProperties": {"type": "number"}},
                "display": {"type": "object", "additionalProperties": {"type": "string"}},
                "risk": {"$ref": "#/definitions/indices.RiskAssessment"},
                "flags": {"type": "array", "items": {"type": "string"}},
                "warnings": {"type": "array", "items": {"type": "string"}}
            }
        },
        "types.RiskRequest": {
            "type": "object",
            "required": ["domain"],
            "properties": {
                "domain": {"type": "string", "enum": ["vector", "rodent"]},
                "indices": {"$ref": "#/definitions/indices.ComputedIndices"}
            }
        },
        "types.ThresholdsResponse": {
            "type": "object",
            "properties": {
                "thresholds": {"$ref": "#/definitions/indices.Thresholds"},
                "comparison": {"type": "string"}
            }
        },
        "errors.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "message": {"type": "string"},
                "category": {"type": "string"},
                "fields": {"type": "object", "additionalProperties": {"type": "string"}},
                "request_id": {"type": "string"},
                "timestamp": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Epidemiological Index API",
	Description:      "Computes vector-borne and rodent-borne surveillance indices and flags high-risk values.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
