package api

import (
	"github.com/JaimeStill/segmenter/internal/config"
	"github.com/JaimeStill/segmenter/pkg/openapi"
)

func buildDocument(cfg *config.Config, domain *Domain) *openapi.Document {
	doc := openapi.NewDocument(&cfg.API.OpenAPI, cfg.Version)
	doc.AddServer(cfg.API.BasePath)
	doc.AddTag("segments", "Assign customers to clusters with the deployed artifact bundle")
	doc.AddTag("profiles", "Authored descriptions and strategies per cluster")

	doc.Components.AddSchemas(schemas(domain))

	doc.Path("/segments").Post = &openapi.Operation{
		OperationID: "segment",
		Summary:     "Segment a customer",
		Description: "Provide either features keyed by name or values in schema order.",
		Tags:        []string{"segments"},
		RequestBody: openapi.RequestBodyJSON("SegmentRequest", true),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Assessment", "Assessment"),
			400: openapi.ResponseRef("BadRequest"),
			422: openapi.ResponseRef("UnprocessableEntity"),
		},
	}
	doc.Path("/segments/batch").Post = &openapi.Operation{
		OperationID: "segmentBatch",
		Summary:     "Segment many customers",
		Description: "Rows are processed independently; a failing row carries an error instead of an assessment.",
		Tags:        []string{"segments"},
		RequestBody: openapi.RequestBodyJSON("BatchRequest", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseList("Per-row results", "BatchResult"),
			400: openapi.ResponseRef("BadRequest"),
		},
	}
	doc.Path("/schema").Get = &openapi.Operation{
		OperationID: "schema",
		Summary:     "Describe the deployed feature schema",
		Tags:        []string{"segments"},
		Responses:   map[int]*openapi.Response{200: openapi.ResponseJSON("Schema", "Schema")},
	}
	doc.Path("/profiles").Get = &openapi.Operation{
		OperationID: "listProfiles",
		Summary:     "List cluster profiles",
		Tags:        []string{"profiles"},
		Responses:   map[int]*openapi.Response{200: openapi.ResponseList("Profiles ordered by cluster ID", "Profile")},
	}
	doc.Path("/profiles/{id}").Get = &openapi.Operation{
		OperationID: "findProfile",
		Summary:     "Find a cluster profile",
		Tags:        []string{"profiles"},
		Parameters:  []*openapi.Parameter{openapi.PathParam("id", "integer", "Cluster ID")},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Profile", "Profile"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	}

	return doc
}

func schemas(domain *Domain) map[string]*openapi.Schema {
	number := &openapi.Schema{Type: "number"}
	numbers := openapi.ArrayOf(number)
	row := openapi.FixedArrayOf(number, len(domain.Info.Fields))

	features := &openapi.Schema{Type: "object", Properties: map[string]*openapi.Schema{}}
	for _, f := range domain.Info.Fields {
		features.Properties[f.Key] = &openapi.Schema{
			Type:        "number",
			Description: f.Label,
			Minimum:     f.Min,
			Maximum:     f.Max,
		}
		features.Required = append(features.Required, f.Key)
	}

	values := openapi.FixedArrayOf(number, len(domain.Info.Fields))
	values.Description = "Feature values in schema order"

	return map[string]*openapi.Schema{
		"SegmentRequest": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"features": features,
				"values":   values,
			},
		},
		"BatchRequest": {
			Type:       "object",
			Properties: map[string]*openapi.Schema{"rows": openapi.ArrayOf(row)},
			Required:   []string{"rows"},
		},
		"Profile": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":          {Type: "integer"},
				"name":        {Type: "string"},
				"description": {Type: "string"},
				"risk_tier":   {Type: "string", Enum: []any{"low", "moderate", "high"}},
				"color":       {Type: "string", Pattern: "^#[0-9a-fA-F]{6}$"},
				"strategies":  openapi.ArrayOf(&openapi.Schema{Type: "string"}),
			},
		},
		"Assessment": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":          {Type: "string", Format: "uuid"},
				"cluster":     {Type: "integer"},
				"profile":     openapi.SchemaRef("Profile"),
				"variant":     {Type: "string"},
				"inputs":      numbers,
				"scaled":      numbers,
				"reduced":     numbers,
				"distances":   numbers,
				"assessed_at": {Type: "string", Format: "date-time"},
			},
		},
		"BatchResult": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"row":        {Type: "integer"},
				"assessment": openapi.SchemaRef("Assessment"),
				"error":      {Type: "string"},
			},
		},
		"Schema": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"name":     {Type: "string"},
				"version":  {Type: "string"},
				"clusters": {Type: "integer"},
				"fields": openapi.ArrayOf(&openapi.Schema{
					Type: "object",
					Properties: map[string]*openapi.Schema{
						"key":   {Type: "string"},
						"label": {Type: "string"},
						"help":  {Type: "string"},
						"min":   number,
						"max":   number,
						"step":  number,
					},
				}),
			},
		},
	}
}
