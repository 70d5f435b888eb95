package api

import "github.com/gofiber/fiber/v2"

// openAPIDocument describes the public routes of the agent API.
func openAPIDocument() fiber.Map {
	jsonBody := func(schema string) fiber.Map {
		return fiber.Map{"application/json": fiber.Map{"schema": fiber.Map{"$ref": "#/components/schemas/" + schema}}}
	}
	response := func(description, schema string) fiber.Map {
		return fiber.Map{"description": description, "content": jsonBody(schema)}
	}
	health := fiber.Map{"get": fiber.Map{
		"summary":   "Health check",
		"responses": fiber.Map{"200": fiber.Map{"description": "Service is healthy"}},
	}}

	return fiber.Map{
		"openapi": "3.0.3",
		"info": fiber.Map{
			"title":       ServiceName,
			"version":     Version,
			"description": "Generates IPL tweets for cricket moments",
		},
		"paths": fiber.Map{
			"/v1/tweets": fiber.Map{"post": fiber.Map{
				"summary":     "Generate tweets for a cricket moment",
				"requestBody": fiber.Map{"required": true, "content": jsonBody("TweetRequest")},
				"responses": fiber.Map{
					"200": response("Generated tweets", "TweetResponse"),
					"400": response("Malformed JSON body", "Error"),
					"422": response("Invalid request", "Error"),
					"500": response("No tweet could be generated", "Error"),
				},
			}},
			"/v1/health": health,
			"/health":    health,
		},
		"components": fiber.Map{"schemas": fiber.Map{
			"TweetRequest": fiber.Map{
				"type":     "object",
				"required": []string{"cricket_moment"},
				"properties": fiber.Map{
					"cricket_moment":      fiber.Map{"type": "string"},
					"tweet_type":          fiber.Map{"type": "string", "enum": []string{"standard", "one_liner"}, "default": "standard"},
					"generate_both_types": fiber.Map{"type": "boolean", "default": false},
				},
			},
			"TweetResponse": fiber.Map{
				"type": "object",
				"properties": fiber.Map{
					"tweets": fiber.Map{"type": "array", "items": fiber.Map{
						"type": "object",
						"properties": fiber.Map{
							"content":    fiber.Map{"type": "string"},
							"tweet_type": fiber.Map{"type": "string"},
						},
					}},
					"request_id": fiber.Map{"type": "string", "format": "uuid"},
					"status":     fiber.Map{"type": "string", "enum": []string{"success", "partial"}},
				},
			},
			"Error": fiber.Map{
				"type":       "object",
				"properties": fiber.Map{"detail": fiber.Map{"type": "string"}},
			},
		}},
	}
}
