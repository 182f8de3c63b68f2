package client

const (
	// API version prefix
	apiV1Prefix = "/api/v1"

	// Health endpoints
	endpointPing = "/ping"

	// Dataset metadata endpoints
	endpointSummary     = apiV1Prefix + "/dataset/summary"
	endpointFields      = apiV1Prefix + "/dataset/fields"
	endpointFieldValues = apiV1Prefix + "/dataset/fields/%s/values" // GET

	// Aggregation endpoints (POST, filter in body)
	endpointAggregate      = apiV1Prefix + "/query/aggregate"
	endpointCrosstab       = apiV1Prefix + "/query/crosstab"
	endpointMinistryStats  = apiV1Prefix + "/query/ministry-stats"
	endpointMinistryStatus = apiV1Prefix + "/query/ministry-status"
	endpointLawTypes       = apiV1Prefix + "/query/law-types"
	endpointTopLaws        = apiV1Prefix + "/query/top-laws"
	endpointSystemStats    = apiV1Prefix + "/query/system-stats"

	// Record-level endpoints
	endpointSearch      = apiV1Prefix + "/procedures/search"
	endpointProcedureID = apiV1Prefix + "/procedures/%s" // GET
	endpointExport      = apiV1Prefix + "/export"
)
