package api

import (
	"github.com/caretide/triage/internal/config"
	"github.com/caretide/triage/pkg/openapi"
)

// buildSpec assembles and serializes the OpenAPI document.
func buildSpec(cfg *config.Config) ([]byte, error) {
	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	spec.AddServer(cfg.API.BasePath)

	spec.Components.AddSchemas(map[string]*openapi.Schema{
		"Ticket": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":                {Type: "integer", Format: "int64"},
				"external_id":       {Type: "string"},
				"subject":           {Type: "string"},
				"summary":           {Type: "string"},
				"conversation":      {Type: "string"},
				"likelihood":        {Type: "string", Enum: []any{"likely", "possible"}},
				"issue_description": {Type: "string"},
				"opened_at":         {Type: "string", Format: "date"},
				"created_at":        {Type: "string", Format: "date-time"},
			},
		},
		"Category": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":   {Type: "integer", Format: "int64"},
				"name": {Type: "string"},
			},
		},
		"Annotation": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":           {Type: "integer", Format: "int64"},
				"ticket_id":    {Type: "integer", Format: "int64"},
				"user_id":      {Type: "integer", Format: "int64"},
				"is_app_issue": {Type: "boolean"},
				"rationale":    {Type: "string"},
				"created_at":   {Type: "string", Format: "date-time"},
			},
		},
		"AnnotationRequest": {
			Type:     "object",
			Required: []string{"ticket_id", "is_app_issue"},
			Properties: map[string]*openapi.Schema{
				"ticket_id":    {Type: "integer", Format: "int64"},
				"is_app_issue": {Type: "boolean"},
				"rationale":    {Type: "string"},
			},
		},
		"Review": {
			Type:        "object",
			Description: "A ticket positioned within the filtered review sequence.",
			Properties: map[string]*openapi.Schema{
				"ticket":     openapi.SchemaRef("Ticket"),
				"categories": {Type: "array", Items: openapi.SchemaRef("Category")},
				"position":   {Type: "integer"},
				"total":      {Type: "integer"},
				"latest":     openapi.SchemaRef("Annotation"),
			},
		},
		"ImportResult": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"archive_key": {Type: "string"},
				"imported":    {Type: "integer"},
				"duplicates":  {Type: "integer"},
				"skipped":     {Type: "integer"},
			},
		},
		"DashboardReport": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"range":   {Type: "object"},
				"summary": {Type: "array", Items: &openapi.Schema{Type: "object"}},
				"series":  {Type: "array", Items: &openapi.Schema{Type: "object"}},
			},
		},
	})

	filterParams := []*openapi.Parameter{
		openapi.QueryParam("category_id", "string", "Category id or \"all\"", false),
		openapi.QueryParam("status", "string", "unlabeled, positive, negative, or all", false),
	}

	spec.Paths["/tickets"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "List tickets",
			Tags:       []string{"tickets"},
			Parameters: filterParams,
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Paged tickets", "Ticket"),
				400: openapi.ResponseRef("BadRequest"),
			},
		},
	}

	spec.Paths["/tickets/review"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "Resolve the current review ticket",
			Tags:    []string{"tickets"},
			Parameters: append(
				[]*openapi.Parameter{
					openapi.QueryParam("ticket_id", "integer", "Explicit ticket to review", false),
				},
				filterParams...,
			),
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Review payload", "Review"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
	}

	spec.Paths["/tickets/next"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:     "Advance to the next ticket",
			Description: "Returns the id after the current one in the filtered sequence, wrapping to the first.",
			Tags:        []string{"tickets"},
			Parameters: append(
				[]*openapi.Parameter{
					openapi.QueryParam("ticket_id", "integer", "Current ticket", false),
				},
				filterParams...,
			),
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Next ticket id", "Ticket"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
	}

	spec.Paths["/tickets/{id}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Ticket detail",
			Tags:       []string{"tickets"},
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "Ticket id")},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Ticket with categories and history", "Ticket"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
	}

	spec.Paths["/annotations"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:     "Record a verdict",
			Tags:        []string{"annotations"},
			RequestBody: openapi.RequestBodyJSON("AnnotationRequest", true),
			Responses: map[int]*openapi.Response{
				201: openapi.ResponseJSON("Recorded annotation", "Annotation"),
				400: openapi.ResponseRef("BadRequest"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
	}

	spec.Paths["/annotations/ticket/{id}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Annotation history for a ticket",
			Tags:       []string{"annotations"},
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "Ticket id")},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Annotations, newest first", "Annotation"),
			},
		},
	}

	spec.Paths["/categories"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "List categories",
			Tags:    []string{"categories"},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Taxonomy in id order", "Category"),
			},
		},
	}

	spec.Paths["/dashboard"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "Aggregated counts and time series",
			Tags:    []string{"dashboard"},
			Parameters: []*openapi.Parameter{
				openapi.QueryParam("start_date", "string", "Range start (YYYY-MM-DD)", false),
				openapi.QueryParam("end_date", "string", "Range end (YYYY-MM-DD)", false),
				openapi.QueryParam("category_id", "string", "Category id or \"all\"", false),
			},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Dashboard payload", "DashboardReport"),
				400: openapi.ResponseRef("BadRequest"),
			},
		},
	}

	spec.Paths["/imports"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:     "Import a ticket export",
			Description: "Multipart upload of a gzip-compressed JSONL export under the \"file\" part.",
			Tags:        []string{"imports"},
			Responses: map[int]*openapi.Response{
				201: openapi.ResponseJSON("Import counts", "ImportResult"),
				400: openapi.ResponseRef("BadRequest"),
			},
		},
	}

	spec.Paths["/imports/replay"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary: "Replay an archived export",
			Tags:    []string{"imports"},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Import counts", "ImportResult"),
				400: openapi.ResponseRef("BadRequest"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
	}

	return openapi.MarshalJSON(spec)
}
