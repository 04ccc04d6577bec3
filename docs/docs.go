// Package docs registers the OpenAPI description served at /swagger.
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
		"/health": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"system"
				],
				"summary": "Health check",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				}
			}
		},
		"/api/v1/status": {
			"get": {
				"description": "Lifecycle state, last transport error, shutdown notice and retry schedule.",
				"produces": [
					"application/json"
				],
				"tags": [
					"monitor"
				],
				"summary": "Connection status",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/service.Status"
						}
					}
				}
			}
		},
		"/api/v1/neurons": {
			"get": {
				"description": "Neurons in server order, with rendered heartbeat text and pulse highlight.",
				"produces": [
					"application/json"
				],
				"tags": [
					"monitor"
				],
				"summary": "Neuron table",
				"responses": {
					"200": {
						"description": "count, initial_load, neurons",
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					}
				}
			}
		},
		"/api/v1/pulses": {
			"get": {
				"description": "Identities whose heartbeat highlight is currently lit.",
				"produces": [
					"application/json"
				],
				"tags": [
					"monitor"
				],
				"summary": "Pulsing neurons",
				"responses": {
					"200": {
						"description": "count, pulsing",
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					}
				}
			}
		},
		"/api/v1/events": {
			"get": {
				"description": "Entries of the capped in-memory log, oldest first. Times accept RFC3339, 'YYYY-MM-DD HH:MM:SS' or 'YYYY-MM-DD'; a date-only 'to' covers the whole day. 'limit' keeps the newest matches.",
				"produces": [
					"application/json"
				],
				"tags": [
					"events"
				],
				"summary": "List event log",
				"parameters": [
					{
						"type": "string",
						"description": "Start of range, inclusive",
						"name": "from",
						"in": "query"
					},
					{
						"type": "string",
						"description": "End of range, inclusive. Date-only treated as end of day.",
						"name": "to",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Entry tag",
						"name": "type",
						"in": "query",
						"enum": [
							"snapshot",
							"neuron_registered",
							"neuron_removed",
							"neuron_heartbeat",
							"provisioning_sent",
							"provisioning_response",
							"model_state_changed",
							"cortex_shutdown_notice"
						]
					},
					{
						"type": "string",
						"description": "Message kind",
						"name": "kind",
						"in": "query",
						"enum": [
							"snapshot",
							"event"
						]
					},
					{
						"type": "string",
						"description": "Neuron the event refers to",
						"name": "neuron_id",
						"in": "query"
					},
					{
						"type": "integer",
						"description": "Keep only the newest N matches",
						"name": "limit",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "count, events",
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				}
			}
		}
	},
	"definitions": {
		"neuronwatch.ShutdownNotice": {
			"type": "object",
			"properties": {
				"at": {
					"type": "string"
				},
				"reason": {
					"type": "string"
				},
				"seen": {
					"type": "boolean"
				}
			}
		},
		"service.Status": {
			"type": "object",
			"properties": {
				"attempts": {
					"type": "integer"
				},
				"connection_id": {
					"type": "string"
				},
				"initial_load": {
					"type": "boolean"
				},
				"last_error": {
					"type": "string"
				},
				"log_size": {
					"type": "integer"
				},
				"malformed_frames": {
					"type": "integer"
				},
				"next_retry_at": {
					"type": "string"
				},
				"shutdown": {
					"$ref": "#/definitions/neuronwatch.ShutdownNotice"
				},
				"state": {
					"type": "string",
					"enum": [
						"connecting",
						"open",
						"polling",
						"closed",
						"error"
					]
				}
			}
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "neuronwatch API",
	Description:      "Read-only view of a cortex neuron stream: connection status, neuron table, heartbeat pulses and the recent event log.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
