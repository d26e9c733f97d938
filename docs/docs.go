// Package docs registra la especificación OpenAPI de la API para swag.
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
        "/auth/login": {
            "post": {
                "tags": [
                    "auth"
                ],
                "summary": "Entrar",
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.LoginRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.LoginResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/products": {
            "get": {
                "tags": [
                    "products"
                ],
                "summary": "Listar produtos",
                "produces": [
                    "application/json"
                ],
                "description": "Catálogo completo, os mais recentes primeiro.",
                "parameters": [],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/dto.ProductResponse"
                            }
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "products"
                ],
                "summary": "Criar produto",
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.CreateProductRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/dto.CreateProductResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            },
            "put": {
                "tags": [
                    "products"
                ],
                "summary": "Atualizar produto",
                "produces": [
                    "application/json"
                ],
                "description": "Sobrescreve todos os campos editáveis, estoque incluído.",
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.UpdateProductRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.ProductResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            },
            "patch": {
                "tags": [
                    "products"
                ],
                "summary": "Ajustar estoque",
                "produces": [
                    "application/json"
                ],
                "description": "add soma a quantidade; remove subtrai com piso em zero.",
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.AdjustStockRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.ProductResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            },
            "delete": {
                "tags": [
                    "products"
                ],
                "summary": "Excluir produto",
                "produces": [
                    "application/json"
                ],
                "description": "O id vem da query (?id=) ou do corpo {id}.",
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "description": "ID do produto",
                        "name": "id",
                        "in": "query"
                    },
                    {
                        "in": "body",
                        "name": "body",
                        "required": false,
                        "schema": {
                            "$ref": "#/definitions/dto.DeleteProductRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.MessageResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/products/sku": {
            "post": {
                "tags": [
                    "products"
                ],
                "summary": "Buscar produto por SKU",
                "produces": [
                    "application/json"
                ],
                "description": "Usado pelo leitor de código de barras do caixa.",
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.SKULookupRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.ProductResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/products/{id}": {
            "get": {
                "tags": [
                    "products"
                ],
                "summary": "Obter produto por ID",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "description": "ID do produto",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.ProductResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/decrement-stock": {
            "post": {
                "tags": [
                    "stock"
                ],
                "summary": "Baixar estoque (lote)",
                "produces": [
                    "application/json"
                ],
                "description": "Todas as linhas ou nenhuma. Produtos sem controle de estoque são aceitos sem alteração.",
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.DecrementStockRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.DecrementStockResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/dto.StockErrorResponse"
                        }
                    }
                }
            }
        },
        "/replenishment-list": {
            "get": {
                "tags": [
                    "stock"
                ],
                "summary": "Lista de reposição",
                "produces": [
                    "application/json"
                ],
                "description": "Produtos no mínimo ou abaixo com a quantidade sugerida de compra, priorizados pelas vendas dos últimos 30 dias.",
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "parameters": [],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/dto.ReplenishmentSuggestionDTO"
                            }
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/checkout": {
            "post": {
                "tags": [
                    "sales"
                ],
                "summary": "Finalizar venda",
                "produces": [
                    "application/json"
                ],
                "description": "Baixa o estoque e registra a venda numa única transação. O total é recalculado no servidor.\nRepetir a mesma chave de idempotência devolve a venda original (200, replayed=true).",
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Chave de idempotência",
                        "name": "Idempotency-Key",
                        "in": "header"
                    },
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.CheckoutRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.CheckoutResponse"
                        }
                    },
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/dto.CheckoutResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/dto.StockErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/dto.StockErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/sales": {
            "get": {
                "tags": [
                    "sales"
                ],
                "summary": "Listar vendas",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "default": 100,
                        "description": "Máximo de vendas (até 100)",
                        "name": "limit",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/dto.SaleResponse"
                            }
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "sales"
                ],
                "summary": "Registrar venda",
                "produces": [
                    "application/json"
                ],
                "description": "Registra uma venda já cobrada sem mexer no estoque. Preços conferidos com o catálogo.",
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.CreateSaleRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/dto.CreateSaleResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            },
            "delete": {
                "tags": [
                    "sales"
                ],
                "summary": "Excluir todas as vendas",
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "parameters": [],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.DeleteSalesResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/sales/export": {
            "get": {
                "tags": [
                    "sales"
                ],
                "summary": "Exportar vendas do dia (CSV)",
                "produces": [
                    "text/csv"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Dia (AAAA-MM-DD). Padrão: hoje",
                        "name": "date",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "file"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/sales/{id}": {
            "get": {
                "tags": [
                    "sales"
                ],
                "summary": "Obter venda",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID da venda",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.SaleResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/sales/{id}/receipt": {
            "get": {
                "tags": [
                    "sales"
                ],
                "summary": "Recibo da venda (PDF)",
                "produces": [
                    "application/pdf"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID da venda",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "file"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/dashboard/summary": {
            "get": {
                "tags": [
                    "dashboard"
                ],
                "summary": "Resumo de vendas",
                "produces": [
                    "application/json"
                ],
                "description": "KPIs do período: total, pedidos, ticket médio, mais vendido, participação por produto,\npor forma de pagamento e série diária. Sem datas usa o mês corrente.",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Início (AAAA-MM-DD)",
                        "name": "from",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Fim inclusive (AAAA-MM-DD)",
                        "name": "to",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.DashboardSummaryDTO"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/check-expiry": {
            "get": {
                "tags": [
                    "alerts"
                ],
                "summary": "Verificar validade",
                "produces": [
                    "application/json"
                ],
                "description": "Produtos com estoque que vencem nos próximos dias; envia um único alerta por WhatsApp.",
                "security": [
                    {
                        "CronSecret": []
                    }
                ],
                "parameters": [],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.ExpiryCheckResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "502": {
                        "description": "Bad Gateway",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/check-low-stock": {
            "get": {
                "tags": [
                    "alerts"
                ],
                "summary": "Verificar estoque baixo",
                "produces": [
                    "application/json"
                ],
                "description": "Executa a verificação de forma síncrona, respeitando o intervalo entre avisos.",
                "security": [
                    {
                        "CronSecret": []
                    }
                ],
                "parameters": [],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.LowStockReportDTO"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "502": {
                        "description": "Bad Gateway",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "dto.ErrorResponse": {
            "type": "object",
            "properties": {
                "success": {
                    "type": "boolean"
                },
                "code": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                }
            }
        },
        "dto.MessageResponse": {
            "type": "object",
            "properties": {
                "success": {
                    "type": "boolean"
                },
                "message": {
                    "type": "string"
                }
            }
        },
        "dto.StockErrorResponse": {
            "type": "object",
            "properties": {
                "success": {
                    "type": "boolean"
                },
                "code": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                },
                "sku": {
                    "type": "string"
                },
                "disponivel": {
                    "type": "integer"
                },
                "solicitado": {
                    "type": "integer"
                }
            }
        },
        "dto.LoginRequest": {
            "type": "object",
            "properties": {
                "username": {
                    "type": "string"
                },
                "password": {
                    "type": "string"
                }
            }
        },
        "dto.LoginResponse": {
            "type": "object",
            "properties": {
                "token": {
                    "type": "string"
                },
                "username": {
                    "type": "string"
                },
                "role": {
                    "type": "string"
                },
                "expiresIn": {
                    "type": "integer"
                }
            }
        },
        "dto.CreateProductRequest": {
            "type": "object",
            "properties": {
                "nome": {
                    "type": "string"
                },
                "marca": {
                    "type": "string"
                },
                "categoria": {
                    "type": "string"
                },
                "preco": {
                    "type": "number"
                },
                "estoque": {
                    "type": "integer",
                    "x-nullable": true,
                    "description": "null = sem controle de estoque"
                },
                "sku": {
                    "type": "string"
                },
                "validade": {
                    "type": "string"
                }
            }
        },
        "dto.UpdateProductRequest": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "nome": {
                    "type": "string"
                },
                "marca": {
                    "type": "string"
                },
                "categoria": {
                    "type": "string"
                },
                "preco": {
                    "type": "number"
                },
                "estoque": {
                    "type": "integer",
                    "x-nullable": true,
                    "description": "null = sem controle de estoque"
                },
                "sku": {
                    "type": "string"
                },
                "validade": {
                    "type": "string"
                }
            }
        },
        "dto.AdjustStockRequest": {
            "type": "object",
            "properties": {
                "productId": {
                    "type": "integer"
                },
                "quantity": {
                    "type": "integer"
                },
                "type": {
                    "type": "string",
                    "enum": [
                        "add",
                        "remove"
                    ]
                }
            }
        },
        "dto.DeleteProductRequest": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                }
            }
        },
        "dto.SKULookupRequest": {
            "type": "object",
            "properties": {
                "sku": {
                    "type": "string"
                }
            }
        },
        "dto.ProductResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "nome": {
                    "type": "string"
                },
                "marca": {
                    "type": "string"
                },
                "categoria": {
                    "type": "string"
                },
                "preco": {
                    "type": "number"
                },
                "estoque": {
                    "type": "integer",
                    "x-nullable": true,
                    "description": "null = sem controle de estoque"
                },
                "sku": {
                    "type": "string"
                },
                "validade": {
                    "type": "string"
                },
                "createdAt": {
                    "type": "string"
                },
                "updatedAt": {
                    "type": "string"
                }
            }
        },
        "dto.CreateProductResponse": {
            "type": "object",
            "properties": {
                "message": {
                    "type": "string"
                },
                "product": {
                    "$ref": "#/definitions/dto.ProductResponse"
                }
            }
        },
        "dto.DecrementStockItem": {
            "type": "object",
            "properties": {
                "sku": {
                    "type": "string"
                },
                "quantidade": {
                    "type": "integer"
                }
            }
        },
        "dto.DecrementStockRequest": {
            "type": "object",
            "properties": {
                "itens": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.DecrementStockItem"
                    }
                }
            }
        },
        "dto.StockChangeDTO": {
            "type": "object",
            "properties": {
                "sku": {
                    "type": "string"
                },
                "nome": {
                    "type": "string"
                },
                "estoqueAnterior": {
                    "type": "integer"
                },
                "estoqueAtual": {
                    "type": "integer"
                },
                "quantidadeVendida": {
                    "type": "integer"
                }
            }
        },
        "dto.DecrementStockResponse": {
            "type": "object",
            "properties": {
                "success": {
                    "type": "boolean"
                },
                "message": {
                    "type": "string"
                },
                "produtos": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.StockChangeDTO"
                    }
                }
            }
        },
        "dto.CheckoutItem": {
            "type": "object",
            "properties": {
                "sku": {
                    "type": "string"
                },
                "quantidade": {
                    "type": "integer"
                }
            }
        },
        "dto.CheckoutRequest": {
            "type": "object",
            "properties": {
                "itens": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.CheckoutItem"
                    }
                },
                "total": {
                    "type": "number"
                },
                "paymentMethod": {
                    "type": "string"
                },
                "idempotencyKey": {
                    "type": "string"
                }
            }
        },
        "dto.SaleItemResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "saleId": {
                    "type": "string"
                },
                "productSku": {
                    "type": "string"
                },
                "productName": {
                    "type": "string"
                },
                "price": {
                    "type": "number"
                },
                "quantity": {
                    "type": "integer"
                }
            }
        },
        "dto.SaleResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "total": {
                    "type": "number"
                },
                "paymentMethod": {
                    "type": "string"
                },
                "createdAt": {
                    "type": "string"
                },
                "items": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.SaleItemResponse"
                    }
                }
            }
        },
        "dto.CheckoutResponse": {
            "type": "object",
            "properties": {
                "success": {
                    "type": "boolean"
                },
                "replayed": {
                    "type": "boolean"
                },
                "sale": {
                    "$ref": "#/definitions/dto.SaleResponse"
                },
                "produtos": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.StockChangeDTO"
                    }
                }
            }
        },
        "dto.SaleProductRef": {
            "type": "object",
            "properties": {
                "sku": {
                    "type": "string"
                },
                "nome": {
                    "type": "string"
                }
            }
        },
        "dto.CreateSaleItem": {
            "type": "object",
            "properties": {
                "produto": {
                    "$ref": "#/definitions/dto.SaleProductRef"
                },
                "preco": {
                    "type": "number"
                },
                "quantidade": {
                    "type": "integer"
                }
            }
        },
        "dto.CreateSaleRequest": {
            "type": "object",
            "properties": {
                "items": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.CreateSaleItem"
                    }
                },
                "total": {
                    "type": "number"
                },
                "paymentMethod": {
                    "type": "string"
                }
            }
        },
        "dto.CreateSaleResponse": {
            "type": "object",
            "properties": {
                "success": {
                    "type": "boolean"
                },
                "sale": {
                    "$ref": "#/definitions/dto.SaleResponse"
                }
            }
        },
        "dto.DeleteSalesResponse": {
            "type": "object",
            "properties": {
                "success": {
                    "type": "boolean"
                },
                "message": {
                    "type": "string"
                },
                "deleted": {
                    "type": "integer"
                }
            }
        },
        "dto.ReplenishmentSuggestionDTO": {
            "type": "object",
            "properties": {
                "prioridade": {
                    "type": "integer"
                },
                "productId": {
                    "type": "integer"
                },
                "sku": {
                    "type": "string"
                },
                "nome": {
                    "type": "string"
                },
                "categoria": {
                    "type": "string"
                },
                "estoqueAtual": {
                    "type": "integer"
                },
                "estoqueMinimo": {
                    "type": "integer"
                },
                "estoqueIdeal": {
                    "type": "integer"
                },
                "quantidadeSugerida": {
                    "type": "integer"
                },
                "vendidosNoPeriodo": {
                    "type": "integer"
                }
            }
        },
        "dto.ProductShareDTO": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "quantidade": {
                    "type": "integer"
                },
                "amount": {
                    "type": "number"
                },
                "value": {
                    "type": "integer"
                }
            }
        },
        "dto.PaymentShareDTO": {
            "type": "object",
            "properties": {
                "paymentMethod": {
                    "type": "string"
                },
                "quantidade": {
                    "type": "integer"
                },
                "amount": {
                    "type": "number"
                },
                "value": {
                    "type": "integer"
                }
            }
        },
        "dto.DailySalesDTO": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "string"
                },
                "quantidade": {
                    "type": "integer"
                },
                "amount": {
                    "type": "number"
                }
            }
        },
        "dto.DashboardSummaryDTO": {
            "type": "object",
            "properties": {
                "from": {
                    "type": "string"
                },
                "to": {
                    "type": "string"
                },
                "totalVendas": {
                    "type": "number"
                },
                "totalPedidos": {
                    "type": "integer"
                },
                "ticketMedio": {
                    "type": "number"
                },
                "produtoMaisVendido": {
                    "type": "string"
                },
                "vendasPorProduto": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.ProductShareDTO"
                    }
                },
                "vendasPorPagamento": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.PaymentShareDTO"
                    }
                },
                "vendasPorDia": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.DailySalesDTO"
                    }
                }
            }
        },
        "dto.ExpiringProductDTO": {
            "type": "object",
            "properties": {
                "sku": {
                    "type": "string"
                },
                "nome": {
                    "type": "string"
                },
                "marca": {
                    "type": "string"
                },
                "validade": {
                    "type": "string"
                },
                "diasRestantes": {
                    "type": "integer"
                },
                "estoque": {
                    "type": "integer"
                }
            }
        },
        "dto.ExpiryCheckResponse": {
            "type": "object",
            "properties": {
                "success": {
                    "type": "boolean"
                },
                "message": {
                    "type": "string"
                },
                "productsCount": {
                    "type": "integer"
                },
                "produtos": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.ExpiringProductDTO"
                    }
                },
                "enviado": {
                    "type": "boolean"
                },
                "whatsappMessageId": {
                    "type": "string"
                },
                "timestamp": {
                    "type": "string"
                },
                "executionTime": {
                    "type": "string"
                }
            }
        },
        "dto.LowStockItemDTO": {
            "type": "object",
            "properties": {
                "productId": {
                    "type": "integer"
                },
                "sku": {
                    "type": "string"
                },
                "nome": {
                    "type": "string"
                },
                "categoria": {
                    "type": "string"
                },
                "estoqueAtual": {
                    "type": "integer"
                },
                "estoqueMinimo": {
                    "type": "integer"
                }
            }
        },
        "dto.LowStockReportDTO": {
            "type": "object",
            "properties": {
                "success": {
                    "type": "boolean"
                },
                "produtos": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.LowStockItemDTO"
                    }
                },
                "notificados": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.LowStockItemDTO"
                    }
                },
                "suprimidos": {
                    "type": "integer"
                },
                "enviado": {
                    "type": "boolean"
                },
                "whatsappMessageId": {
                    "type": "string"
                }
            }
        }
    },
    "securityDefinitions": {
        "Bearer": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        },
        "CronSecret": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo información de la API exportada para poder cambiarla en tiempo de ejecución.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "PDV API",
	Description:      "Ponto de venda: catálogo, estoque, checkout, vendas e alertas por WhatsApp.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
