// Package docs holds the OpenAPI document served by gin-swagger. Keep it in
// step with the swag annotations on the handlers.
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
                "summary": "List accounts",
                "parameters": [
                    {"type": "integer", "default": 20, "description": "Limit number of results", "name": "limit", "in": "query"},
                    {"type": "integer", "default": 0, "description": "Offset for pagination", "name": "offset", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ListAccountsResponse"}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["accounts"],
                "summary": "Create an account",
                "parameters": [
                    {"description": "Account details", "name": "account", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateAccountRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.AccountResponse"}},
                    "409": {"description": "Caller already has an account"}
                }
            }
        },
        "/accounts/{accountID}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["accounts"],
                "summary": "Get an account by ID",
                "parameters": [{"type": "integer", "description": "Account ID", "name": "accountID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.AccountResponse"}},
                    "404": {"description": "Account not found"}
                }
            }
        },
        "/accounts/{accountID}/balance": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["accounts"],
                "summary": "Get the balance of an account",
                "parameters": [{"type": "integer", "description": "Account ID", "name": "accountID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.AccountBalanceResponse"}},
                    "404": {"description": "Account not found"}
                }
            }
        },
        "/accounts/{accountID}/status": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["accounts"],
                "summary": "Activate or deactivate an account",
                "parameters": [
                    {"type": "integer", "description": "Account ID", "name": "accountID", "in": "path", "required": true},
                    {"description": "New status", "name": "status", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.ChangeAccountStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.AccountResponse"}},
                    "403": {"description": "Caller is not an admin"}
                }
            }
        },
        "/ledger/audit": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "Reconcile balances with the transaction log",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.AuditReportResponse"}},
                    "403": {"description": "Caller may not audit balances"}
                }
            }
        },
        "/me/account": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["accounts"],
                "summary": "Get the caller's account",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.AccountResponse"}}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["accounts"],
                "summary": "Update the caller's account",
                "parameters": [
                    {"description": "New account details", "name": "account", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateAccountRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.AccountResponse"}}}
            }
        },
        "/ownership": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["roles"],
                "summary": "Get the ledger owner",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.OwnerResponse"}}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["roles"],
                "summary": "Transfer ledger ownership",
                "parameters": [
                    {"description": "New owner", "name": "ownership", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.TransferOwnershipRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.OwnerResponse"}}}
            }
        },
        "/principals/{principal}/account": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["accounts"],
                "summary": "Get the account owned by a principal",
                "parameters": [{"type": "string", "description": "Principal", "name": "principal", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.AccountResponse"}}}
            }
        },
        "/roles/{principal}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["roles"],
                "summary": "Get the role of a principal",
                "parameters": [{"type": "string", "description": "Principal", "name": "principal", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.RoleResponse"}}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["roles"],
                "summary": "Grant a role",
                "parameters": [
                    {"type": "string", "description": "Principal", "name": "principal", "in": "path", "required": true},
                    {"description": "Role to grant", "name": "role", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.GrantRoleRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.RoleResponse"}}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["roles"],
                "summary": "Revoke a role",
                "parameters": [{"type": "string", "description": "Principal", "name": "principal", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/transactions": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "Read the audit trail",
                "parameters": [
                    {"type": "integer", "description": "Only transactions touching this account", "name": "accountID", "in": "query"},
                    {"type": "integer", "default": 50, "description": "Page size", "name": "limit", "in": "query"},
                    {"type": "string", "description": "Token from the previous page", "name": "nextToken", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ListTransactionsResponse"}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "Record a transaction",
                "parameters": [
                    {"description": "Transaction details", "name": "transaction", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.RecordTransactionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.TransactionResponse"}},
                    "422": {"description": "Invalid amount, same account, inactive account, insufficient balance or balance overflow"}
                }
            }
        },
        "/transactions/{transactionID}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "Get a transaction by ID",
                "parameters": [{"type": "integer", "description": "Transaction ID", "name": "transactionID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.TransactionResponse"}}}
            }
        }
    },
    "definitions": {
        "domain.BalanceMismatch": {
            "type": "object",
            "properties": {
                "accountID": {"type": "integer"},
                "computed": {"type": "integer"},
                "stored": {"type": "integer"}
            }
        },
        "dto.AccountBalanceResponse": {
            "type": "object",
            "properties": {
                "accountID": {"type": "integer"},
                "balance": {"type": "integer"}
            }
        },
        "dto.AccountResponse": {
            "type": "object",
            "properties": {
                "accountID": {"type": "integer"},
                "accountType": {"type": "string", "enum": ["PERSONAL", "BUSINESS"]},
                "createdAt": {"type": "string"},
                "createdBy": {"type": "string"},
                "isActive": {"type": "boolean"},
                "lastUpdatedAt": {"type": "string"},
                "lastUpdatedBy": {"type": "string"},
                "name": {"type": "string"},
                "ownerPrincipal": {"type": "string"}
            }
        },
        "dto.AuditReportResponse": {
            "type": "object",
            "properties": {
                "accountCount": {"type": "integer"},
                "checkedAt": {"type": "string"},
                "consistent": {"type": "boolean"},
                "mismatches": {"type": "array", "items": {"$ref": "#/definitions/domain.BalanceMismatch"}},
                "transactionCount": {"type": "integer"}
            }
        },
        "dto.ChangeAccountStatusRequest": {
            "type": "object",
            "required": ["isActive"],
            "properties": {"isActive": {"type": "boolean"}}
        },
        "dto.CreateAccountRequest": {
            "type": "object",
            "required": ["accountType", "name"],
            "properties": {
                "accountType": {"type": "string", "enum": ["PERSONAL", "BUSINESS"]},
                "name": {"type": "string", "maxLength": 128}
            }
        },
        "dto.GrantRoleRequest": {
            "type": "object",
            "required": ["role"],
            "properties": {"role": {"type": "string", "enum": ["NONE", "ADMIN", "ACCOUNTANT", "AUDITOR"]}}
        },
        "dto.ListAccountsResponse": {
            "type": "object",
            "properties": {"accounts": {"type": "array", "items": {"$ref": "#/definitions/dto.AccountResponse"}}}
        },
        "dto.ListTransactionsResponse": {
            "type": "object",
            "properties": {
                "nextToken": {"type": "string"},
                "transactions": {"type": "array", "items": {"$ref": "#/definitions/dto.TransactionResponse"}}
            }
        },
        "dto.OwnerResponse": {
            "type": "object",
            "properties": {"owner": {"type": "string"}}
        },
        "dto.RecordTransactionRequest": {
            "type": "object",
            "required": ["transactionType"],
            "properties": {
                "amount": {"type": "integer"},
                "description": {"type": "string", "maxLength": 512},
                "fromAccountID": {"type": "integer"},
                "toAccountID": {"type": "integer"},
                "transactionType": {"type": "string", "enum": ["DEPOSIT", "WITHDRAWAL", "TRANSFER"]}
            }
        },
        "dto.RoleResponse": {
            "type": "object",
            "properties": {
                "principal": {"type": "string"},
                "role": {"type": "string"}
            }
        },
        "dto.TransactionResponse": {
            "type": "object",
            "properties": {
                "amount": {"type": "integer"},
                "description": {"type": "string"},
                "fromAccountID": {"type": "integer"},
                "recordedBy": {"type": "string"},
                "timestamp": {"type": "string"},
                "toAccountID": {"type": "integer"},
                "transactionID": {"type": "integer"},
                "transactionType": {"type": "string"}
            }
        },
        "dto.TransferOwnershipRequest": {
            "type": "object",
            "required": ["newOwner"],
            "properties": {"newOwner": {"type": "string"}}
        },
        "dto.UpdateAccountRequest": {
            "type": "object",
            "required": ["accountType", "name"],
            "properties": {
                "accountType": {"type": "string", "enum": ["PERSONAL", "BUSINESS"]},
                "name": {"type": "string", "maxLength": 128}
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
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Permissioned Ledger API",
	Description:      "Role-gated account registry and transaction ledger.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
