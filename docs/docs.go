// Package docs registra el documento swagger de la API (escrito a mano a partir
// de las anotaciones de internal/domain/meals/handler.go; mantenerlos en sync).
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
        "/meals": {
            "get": {
                "description": "Lista las comidas del usuario autenticado, de la más reciente a la más antigua.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "meals"
                ],
                "summary": "Listar comidas",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/meals.mealListEnvelope"
                        }
                    },
                    "401": {
                        "description": "unauthorized",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "500": {
                        "description": "internal error",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            },
            "post": {
                "description": "Registra una comida del usuario autenticado. Autenticación: header X-Debug-User-ID (dev) o Authorization Bearer (prod).",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "meals"
                ],
                "summary": "Registrar comida",
                "parameters": [
                    {
                        "description": "Datos de la comida; date en RFC3339 o YYYY-MM-DD",
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/meals.mealRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/meals.mealResponse"
                        }
                    },
                    "400": {
                        "description": "invalid json / validación",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "401": {
                        "description": "unauthorized",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "500": {
                        "description": "internal error",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/meals/metrics": {
            "get": {
                "description": "Totales de comidas dentro/fuera de la dieta y la mejor racha dentro de la dieta (de la más reciente a la más antigua).",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "meals"
                ],
                "summary": "Métricas de dieta",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/meals.metricsResponse"
                        }
                    },
                    "401": {
                        "description": "unauthorized",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "500": {
                        "description": "internal error",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/meals/{mealID}": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "meals"
                ],
                "summary": "Ver comida",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID de la comida (UUID)",
                        "name": "mealID",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/meals.mealEnvelope"
                        }
                    },
                    "400": {
                        "description": "invalid meal id",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "401": {
                        "description": "unauthorized",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "404": {
                        "description": "meal not found",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            },
            "put": {
                "description": "Reemplaza nombre, descripción, fecha y flag de dieta. id y dueño no cambian.",
                "consumes": [
                    "application/json"
                ],
                "tags": [
                    "meals"
                ],
                "summary": "Reemplazar comida",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID de la comida (UUID)",
                        "name": "mealID",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Datos completos de la comida",
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/meals.mealRequest"
                        }
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "400": {
                        "description": "invalid json / validación",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "401": {
                        "description": "unauthorized",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "404": {
                        "description": "meal not found",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "500": {
                        "description": "internal error",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            },
            "delete": {
                "tags": [
                    "meals"
                ],
                "summary": "Borrar comida",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID de la comida (UUID)",
                        "name": "mealID",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "400": {
                        "description": "invalid meal id",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "401": {
                        "description": "unauthorized",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "404": {
                        "description": "meal not found",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "500": {
                        "description": "internal error",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "meals.mealEnvelope": {
            "type": "object",
            "properties": {
                "meal": {
                    "$ref": "#/definitions/meals.mealResponse"
                }
            }
        },
        "meals.mealListEnvelope": {
            "type": "object",
            "properties": {
                "meals": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/meals.mealResponse"
                    }
                }
            }
        },
        "meals.mealRequest": {
            "type": "object",
            "properties": {
                "date": {
                    "description": "RFC3339 o YYYY-MM-DD",
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "is_on_diet": {
                    "type": "boolean"
                },
                "name": {
                    "type": "string"
                }
            }
        },
        "meals.mealResponse": {
            "type": "object",
            "properties": {
                "created_at": {
                    "type": "string"
                },
                "date": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "id": {
                    "type": "string"
                },
                "is_on_diet": {
                    "type": "boolean"
                },
                "name": {
                    "type": "string"
                },
                "updated_at": {
                    "type": "string"
                },
                "user_id": {
                    "type": "string"
                }
            }
        },
        "meals.metricsResponse": {
            "type": "object",
            "properties": {
                "best_on_diet_sequence": {
                    "type": "integer"
                },
                "total_meals": {
                    "type": "integer"
                },
                "total_meals_off_diet": {
                    "type": "integer"
                },
                "total_meals_on_diet": {
                    "type": "integer"
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
	Title:            "Daily Diet API",
	Description:      "Registro de comidas y métricas de dieta por usuario.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
