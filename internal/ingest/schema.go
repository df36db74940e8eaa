package ingest

// JSON Schemas for the raw input record sets. Validation runs before
// decoding so a missing required field surfaces as an input-shape error
// with the dataset name, not as a zero value deep in the pipeline.

func recordArraySchema(required []string, properties map[string]any) map[string]any {
	return map[string]any{
		"type": "array",
		"items": map[string]any{
			"type":     "object",
			"required": required,
			"properties": properties,
		},
	}
}

var customerSchema = recordArraySchema(
	[]string{"id", "email"},
	map[string]any{
		"id":        map[string]any{"type": "integer"},
		"email":     map[string]any{"type": "string"},
		"firstname": map[string]any{"type": "string"},
		"lastname":  map[string]any{"type": "string"},
		"taxvat":    map[string]any{"type": "string"},
		"created_at": map[string]any{"type": "string"},
		"addresses": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"telephone": map[string]any{"type": "string"},
					"postcode":  map[string]any{"type": "string"},
				},
			},
		},
	},
)

var orderSchema = recordArraySchema(
	[]string{"entity_id", "customer_email", "created_at", "grand_total", "status"},
	map[string]any{
		"entity_id":      map[string]any{"type": []any{"integer", "string"}},
		"customer_email": map[string]any{"type": "string"},
		"created_at":     map[string]any{"type": "string"},
		"grand_total":    map[string]any{"type": "number"},
		"status":         map[string]any{"type": "string"},
		"payment_method": map[string]any{"type": "string"},
	},
)

var itemSchema = recordArraySchema(
	[]string{"order_id", "customer_email", "sku"},
	map[string]any{
		"order_id":       map[string]any{"type": []any{"integer", "string"}},
		"customer_email": map[string]any{"type": "string"},
		"sku":            map[string]any{"type": "string"},
		"qty_ordered":    map[string]any{"type": "number"},
		"qty_invoiced":   map[string]any{"type": []any{"number", "null"}},
		"row_total":      map[string]any{"type": "number"},
		"product_type":   map[string]any{"type": "string"},
		"parent_item_id": map[string]any{"type": []any{"integer", "null"}},
	},
)

var catalogSchema = recordArraySchema(
	[]string{"sku"},
	map[string]any{
		"sku":          map[string]any{"type": "string"},
		"product_name": map[string]any{"type": "string"},
		"categories":   map[string]any{"type": "string"},
		"brand":        map[string]any{"type": "string"},
	},
)
