// Package testutil provides test utilities and fixtures for unit tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// SampleSpecYAML is a complete OpenAPI 3.0 document covering every section of
// a rendered page: tagged operations over three tags, a path parameter, request
// bodies, a callback, five component schemas (one without properties) and
// top-level fields that are not rendered.
const SampleSpecYAML = `openapi: 3.0.0
info:
  title: Sample Full API
  version: 1.0.0
  description: ""
  contact:
    name: ""
    email: ""
  license:
    name: MIT
    url: https://opensource.org/licenses/MIT

servers:
  - url: https://api.example.com/v1
    description: Production server

tags:
  - name: users
    description: Operations about users
  - name: products
    description: Product catalog endpoints
  - name: orders
    description: Order management

paths:
  /users:
    get:
      summary: List all users
      description: ""
      tags:
        - users
      operationId: listUsers
      responses:
        '200':
          description: OK
          content:
            application/json:
              schema:
                type: array
                items:
                  $ref: '#/components/schemas/User'
  /users/{userId}:
    get:
      summary: Get a user
      operationId: getUser
      tags:
        - users
      parameters:
        - name: userId
          in: path
          required: true
          schema:
            type: string
      responses:
        '200':
          description: User found
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/User'
        '404':
          description: Not found
    delete:
      summary: Delete a user
      operationId: deleteUser
      tags:
        - users
      responses:
        '204':
          description: User deleted

  /products:
    post:
      summary: Add a new product
      operationId: addProduct
      tags:
        - products
      requestBody:
        required: true
        content:
          application/json:
            schema:
              $ref: '#/components/schemas/Product'
      responses:
        '201':
          description: Product created

  /orders:
    get:
      summary: Get all orders
      operationId: getOrders
      tags:
        - orders
      responses:
        '200':
          description: List of orders
          content:
            application/json:
              schema:
                type: array
                items:
                  $ref: '#/components/schemas/Order'

    post:
      summary: Create an order
      operationId: createOrder
      tags:
        - orders
      requestBody:
        required: true
        content:
          application/json:
            schema:
              $ref: '#/components/schemas/NewOrder'
      responses:
        '201':
          description: Order created
      callbacks:
        onOrderCreated:
          '{$request.body#/callbackUrl}':
            post:
              summary: Callback after order creation
              requestBody:
                required: true
                content:
                  application/json:
                    schema:
                      type: object
                      properties:
                        orderId:
                          type: string
              responses:
                '200':
                  description: Acknowledged

components:
  schemas:
    User:
      type: object
      required:
        - id
        - name
        - email
      properties:
        id:
          type: string
        name:
          type: string
        email:
          type: string
        role:
          type: string
          enum: [admin, user, guest]

    Product:
      type: object
      required: [id, name, price]
      properties:
        id:
          type: string
        name:
          type: string
        description:
          type: string
        price:
          type: number
          format: float

    Order:
      type: object
      required: [id, userId, items]
      properties:
        id:
          type: string
        userId:
          type: string
        items:
          type: array
          items:
            $ref: '#/components/schemas/OrderItem'

    OrderItem:
      type: object
      required: [productId, quantity]
      properties:
        productId:
          type: string
        quantity:
          type: integer

    NewOrder:
      allOf:
        - $ref: '#/components/schemas/Order'
        - type: object
          properties:
            callbackUrl:
              type: string
              format: uri

security:
  - api_key: []

securitySchemes:
  api_key:
    type: apiKey
    in: header
    name: X-API-Key
`

// PetstoreJSON is a small OpenAPI 3.0 document in JSON with an untagged
// operation, a path-level key that is not a method and a "trace" operation.
const PetstoreJSON = `{
  "openapi": "3.0.3",
  "info": {"title": "Petstore", "description": "Pets & <friends>", "version": "1.0.0"},
  "paths": {
    "/pets": {
      "parameters": [{"name": "limit", "in": "query"}],
      "get": {
        "operationId": "listPets",
        "parameters": [{"name": "limit", "in": "query", "schema": {"type": "integer"}}],
        "responses": {"200": {"description": "A list of pets"}, "default": {}}
      },
      "trace": {"summary": "Trace pets"}
    },
    "/pets/{petId}": {
      "get": {
        "summary": "Info for a specific pet",
        "tags": ["pets"],
        "parameters": [{"name": "petId", "in": "path", "required": true, "description": "The id of the pet"}]
      }
    }
  },
  "components": {
    "schemas": {
      "Pet": {
        "type": "object",
        "description": "A pet",
        "required": ["id"],
        "properties": {"id": {"type": "integer"}, "tag": {"type": ["string", "null"]}}
      }
    }
  }
}`

// Swagger2YAML is a Swagger 2.0 document whose schemas live under "definitions".
const Swagger2YAML = `swagger: "2.0"
info:
  title: Legacy API
  version: "1"
paths:
  /items:
    get:
      tags: [items]
      summary: List items
      parameters:
        - name: q
          in: query
          type: string
      responses:
        "200":
          description: OK
definitions:
  Item:
    type: object
    properties:
      id:
        type: integer
`

// WriteTempFile writes content to a file with the given name in a temporary
// directory and returns its path.
// The file is automatically cleaned up when the test completes (via t.TempDir).
func WriteTempFile(t *testing.T, name, content string) string {
	t.Helper()

	tmpFile := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(tmpFile, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write temporary file: %v", err)
	}

	return tmpFile
}
