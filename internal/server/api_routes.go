package server

import (
	"net/http"

	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/utils"
)

// tableFilterParams documents the filter query parameters shared by the
// rows and export endpoints.
var tableFilterParams = map[string]string{
	"exec_id":      "string - Executive ID; repeat the parameter for several",
	"category":     "string - Transaction category; repeat the parameter for several",
	"risky_email":  "bool - Only rows with a risky email",
	"nsfw":         "bool - Only rows with an NSFW chat",
	"over_limit":   "bool - Only rows over the spending limit",
	"personal_use": "bool - Only rows flagged as personal use",
	"raw":          "bool - Show unmasked text (operator token required)",
}

// GetAPIRoutes returns documentation about all API routes.
// Each endpoint lists its method, a description, its parameters and an
// example response.
func (s *Server) GetAPIRoutes(w http.ResponseWriter, r *http.Request) {
	routes := map[string]interface{}{}

	routes["authentication"] = map[string]interface{}{
		"POST /api/auth/token": map[string]interface{}{
			"description": "Exchange the operator passphrase for a raw display token",
			"headers": map[string]string{
				"Content-Type": "application/json",
			},
			"body": map[string]interface{}{
				"passphrase": "string - Operator passphrase",
			},
			"response": map[string]interface{}{
				"success": true,
				"data": map[string]interface{}{
					"token":      "eyJhbGciOiJIUzI1NiIs...",
					"token_type": "Bearer",
					"expires_at": "2024-01-01T12:30:00Z",
				},
			},
			"rate_limit": "Throttled per client; 429 with Retry-After when exceeded",
		},
	}

	routes["table"] = map[string]interface{}{
		"GET /api/table/summary": map[string]interface{}{
			"description": "Summary metrics of the loaded table",
			"response": map[string]interface{}{
				"success": true,
				"data": map[string]interface{}{
					"snapshot_id":       "uuid",
					"rows":              1200,
					"executives":        12,
					"risky_emails":      37,
					"nsfw_chats":        9,
					"defaulted_columns": []string{"category"},
				},
			},
		},
		"GET /api/table/options": map[string]interface{}{
			"description": "Distinct executive IDs and categories for the filter controls",
			"response": map[string]interface{}{
				"success": true,
				"data": map[string]interface{}{
					"exec_ids":   []string{"E001", "E002"},
					"categories": []string{"Meals", "Travel"},
				},
			},
		},
		"GET /api/table/rows": map[string]interface{}{
			"description": "Filtered rows of the table, paginated",
			"query": mergeParams(tableFilterParams, map[string]string{
				"page":      "int - Page number (default 1)",
				"page_size": "int - Rows per page (default 50, max 1000)",
			}),
			"headers": map[string]string{
				"Authorization": "Bearer {operator_token} - Required when raw=true",
			},
		},
		"GET /api/table/export": map[string]interface{}{
			"description": "CSV download of the filtered rows with the display columns",
			"query":       tableFilterParams,
			"response":    s.Config.Export.FileName,
		},
		"POST /api/table/reload": map[string]interface{}{
			"description": "Discard the cached table and read the source again",
		},
	}

	routes["demo"] = map[string]interface{}{
		"GET /api/demo/messages": map[string]interface{}{
			"description": "Built-in sample messages with their risk flags",
			"query": map[string]string{
				"nsfw":           "bool - Only NSFW messages",
				"personal":       "bool - Only personal-use messages",
				"credit_card":    "bool - Only credit-card messages",
				"large_spending": "bool - Only large-spending messages",
				"raw":            "bool - Include the unmasked message (operator token required)",
			},
		},
		"GET /api/demo/messages/{index}": map[string]interface{}{
			"description": "Flag breakdown of one sample message",
			"query": map[string]string{
				"raw": "bool - Include the unmasked message (operator token required)",
			},
		},
		"GET /api/demo/export": map[string]interface{}{
			"description": "CSV download of the full demo dataset, raw and masked",
			"headers": map[string]string{
				"Authorization": "Bearer {operator_token}",
			},
			"response": s.Config.Export.DemoFileName,
		},
	}

	routes["enrichment"] = map[string]interface{}{
		"POST /api/enrich": map[string]interface{}{
			"description": "Mask and flag an arbitrary text",
			"body": map[string]interface{}{
				"text": "string - Text to analyze",
			},
			"response": map[string]interface{}{
				"success": true,
				"data": map[string]interface{}{
					"masked_message":      "What the **** is that?",
					"nsfw_flag":           true,
					"personal_use_flag":   false,
					"credit_card_flag":    false,
					"large_spending_flag": false,
					"sentiment":           "neutral",
				},
			},
		},
	}

	routes["system"] = map[string]interface{}{
		"GET /health": map[string]interface{}{
			"description": "Health check; 503 when the source file is missing",
			"response": map[string]interface{}{
				"success": true,
				"data": map[string]string{
					"status":  "healthy",
					"version": s.Config.App.Version,
				},
			},
		},
		"GET /version":    "Application name, version and environment",
		"GET /metrics":    "Prometheus metrics",
		"GET /api/routes": "This document",
	}

	utils.JSON(w, http.StatusOK, routes)
}

func mergeParams(base, extra map[string]string) map[string]string {
	merged := make(map[string]string, len(base)+len(extra))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range extra {
		merged[k] = v
	}
	return merged
}
