// Package docs registers the OpenAPI description served under /swagger.
// It is kept in step with the handler annotations by hand; running
// go generate ./cmd/mts_backend replaces it with swag's output.
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
        "/accounts": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["accounts"],
                "summary": "List the caller's accounts",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ListAccountsResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["accounts"],
                "summary": "Open an account",
                "parameters": [
                    {"description": "Account details", "name": "account", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateAccountRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.AccountResponse"}},
                    "409": {"description": "Account already exists for this currency"}
                }
            }
        },
        "/accounts/{accountID}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["accounts"],
                "summary": "Get an account by ID",
                "parameters": [
                    {"type": "string", "description": "Account ID", "name": "accountID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.AccountResponse"}}
                }
            }
        },
        "/accounts/{accountID}/balance": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["accounts"],
                "summary": "Get an account balance",
                "parameters": [
                    {"type": "string", "description": "Account ID", "name": "accountID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.AccountBalanceResponse"}}
                }
            }
        },
        "/convert": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["exchange rates"],
                "summary": "Quote a currency conversion",
                "parameters": [
                    {"type": "string", "description": "Source currency name", "name": "from", "in": "query", "required": true},
                    {"type": "string", "description": "Destination currency name", "name": "to", "in": "query", "required": true},
                    {"type": "string", "description": "Amount in the source currency", "name": "amount", "in": "query", "required": true},
                    {"type": "string", "description": "RFC3339 point in time", "name": "asOf", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ConversionResponse"}},
                    "422": {"description": "Exchange rate not found"}
                }
            }
        },
        "/currencies": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["currencies"],
                "summary": "List all currencies",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.CurrencyResponse"}}}
                }
            }
        },
        "/currencies/{name}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["currencies"],
                "summary": "Get a currency by name",
                "parameters": [
                    {"maxLength": 32, "type": "string", "description": "Currency name", "name": "name", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.CurrencyResponse"}}
                }
            }
        },
        "/rates": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["exchange rates"],
                "summary": "List exchange rates",
                "parameters": [
                    {"type": "string", "description": "Quote currency name", "name": "currency", "in": "query"},
                    {"type": "string", "description": "Base currency name", "name": "base", "in": "query"},
                    {"type": "string", "description": "Only rates effective strictly before this RFC3339 time", "name": "before", "in": "query"},
                    {"type": "integer", "default": 100, "description": "Maximum number of rates", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.ExchangeRateResponse"}}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["exchange rates"],
                "summary": "Ingest an exchange rate",
                "description": "Requires a token with the rates:ingest scope.",
                "parameters": [
                    {"description": "Exchange rate", "name": "rate", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.IngestRateRequest"}}
                ],
                "responses": {
                    "200": {"description": "Rate already present, skipped", "schema": {"$ref": "#/definitions/dto.IngestRateResponse"}},
                    "201": {"description": "Rate stored", "schema": {"$ref": "#/definitions/dto.IngestRateResponse"}},
                    "403": {"description": "Token lacks the rates:ingest scope"}
                }
            }
        },
        "/transfers": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["transfers"],
                "summary": "List transfers sent by the caller",
                "parameters": [
                    {"type": "integer", "default": 20, "description": "Page size", "name": "limit", "in": "query"},
                    {"type": "string", "description": "Token for the next page", "name": "nextToken", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ListTransfersResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["transfers"],
                "summary": "Transfer money between accounts",
                "parameters": [
                    {"description": "Transfer details", "name": "transfer", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateTransferRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.TransferResponse"}},
                    "403": {"description": "Sender account not owned by caller"},
                    "422": {"description": "Insufficient balance or exchange rate not found"}
                }
            }
        },
        "/transfers/{transferID}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["transfers"],
                "summary": "Get a transfer by ID",
                "parameters": [
                    {"type": "string", "description": "Transfer ID", "name": "transferID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.TransferResponse"}}
                }
            }
        }
    },
    "definitions": {
        "dto.AccountBalanceResponse": {
            "type": "object",
            "properties": {"accountID": {"type": "string"}, "balance": {"type": "string"}}
        },
        "dto.AccountResponse": {
            "type": "object",
            "properties": {
                "accountID": {"type": "string"},
                "balance": {"type": "string"},
                "createdAt": {"type": "string"},
                "currencyID": {"type": "string"},
                "userID": {"type": "string"}
            }
        },
        "dto.ConversionResponse": {
            "type": "object",
            "properties": {
                "amount": {"type": "string"},
                "asOf": {"type": "string"},
                "convertedAmount": {"type": "string"},
                "from": {"type": "string"},
                "to": {"type": "string"}
            }
        },
        "dto.CreateAccountRequest": {
            "type": "object",
            "required": ["currency"],
            "properties": {"balance": {"type": "number"}, "currency": {"type": "string", "maxLength": 32}}
        },
        "dto.CreateTransferRequest": {
            "type": "object",
            "required": ["receiverAccountID", "senderAccountID"],
            "properties": {
                "amount": {"type": "number"},
                "receiverAccountID": {"type": "string"},
                "senderAccountID": {"type": "string"}
            }
        },
        "dto.CurrencyResponse": {
            "type": "object",
            "properties": {"createdAt": {"type": "string"}, "currencyID": {"type": "string"}, "name": {"type": "string"}}
        },
        "dto.ExchangeRateResponse": {
            "type": "object",
            "properties": {
                "baseCurrencyID": {"type": "string"},
                "createdAt": {"type": "string"},
                "currencyID": {"type": "string"},
                "dateEffective": {"type": "string"},
                "exchangeRateID": {"type": "string"},
                "rate": {"type": "number"}
            }
        },
        "dto.IngestRateRequest": {
            "type": "object",
            "required": ["baseCurrency", "effectiveDate", "quoteCurrency"],
            "properties": {
                "baseCurrency": {"type": "string", "maxLength": 32},
                "effectiveDate": {"type": "string"},
                "quoteCurrency": {"type": "string", "maxLength": 32},
                "rate": {"type": "number"}
            }
        },
        "dto.IngestRateResponse": {
            "type": "object",
            "properties": {"ingested": {"type": "boolean"}}
        },
        "dto.ListAccountsResponse": {
            "type": "object",
            "properties": {"accounts": {"type": "array", "items": {"$ref": "#/definitions/dto.AccountResponse"}}}
        },
        "dto.ListTransfersResponse": {
            "type": "object",
            "properties": {
                "nextToken": {"type": "string"},
                "transfers": {"type": "array", "items": {"$ref": "#/definitions/dto.TransferResponse"}}
            }
        },
        "dto.TransferResponse": {
            "type": "object",
            "properties": {
                "amount": {"type": "string"},
                "convertedAmount": {"type": "string"},
                "createdAt": {"type": "string"},
                "receiverAccountID": {"type": "string"},
                "senderAccountID": {"type": "string"},
                "transferID": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Money Transfer Service API",
	Description:      "Multi-currency accounts, exchange rates and transfers.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
