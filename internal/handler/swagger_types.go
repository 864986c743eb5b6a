package handler

import "porttariff/internal/domain"

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Request Types ---

// CalculateTariffsRequest represents the calculate tariffs request body.
type CalculateTariffsRequest struct {
	VesselInfo    string   `json:"vessel_info" binding:"required" example:"Vessel Name: SUDESTADA\nGross Tonnage: 51300\nPort: Durban\nDays Alongside: 3.39"`
	RequestedDues []string `json:"requested_dues" example:"Port Dues,Light Dues"`
	Debug         bool     `json:"debug" example:"false"`
}

// QueryTariffsRequest represents a free-text due request such as "calculate pilotage".
type QueryTariffsRequest struct {
	VesselInfo string `json:"vessel_info" binding:"required" example:"Vessel Name: SUDESTADA\nPort: Durban"`
	Query      string `json:"query" binding:"required" example:"calculate pilotage and towage"`
}

// --- Response Types ---

// CalculateTariffsResponse represents the calculated dues, keyed by due name
// in calculation order.
type CalculateTariffsResponse struct {
	Results *domain.ResultSet `json:"results" swaggertype:"object,string" example:"Port Dues:ZAR 199549.22,Light Dues:ZAR 45000.00"`
}

// QueryTariffsResponse represents the outcome of a free-text due request.
type QueryTariffsResponse struct {
	Matched   bool              `json:"matched" example:"true"`
	Dues      []string          `json:"dues,omitempty" example:"Pilotage Dues,Towage Dues"`
	Message   string            `json:"message,omitempty" example:"❌ No matching dues found for 'anchorage'."`
	Available []string          `json:"available,omitempty" example:"Light Dues,Port Dues"`
	Results   *domain.ResultSet `json:"results,omitempty" swaggertype:"object,string"`
}

// DuesResponse lists the dues that can be calculated.
type DuesResponse struct {
	Dues []string `json:"dues" example:"Light Dues,Port Dues,Towage Dues,VTS Dues,Pilotage Dues,Running of Vessel Lines Dues"`
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status      string `json:"status" example:"ok"`
	RulesLoaded *bool  `json:"rules_loaded,omitempty" example:"true"`
	Error       string `json:"error,omitempty" example:"database not reachable"`
}

// --- Generic Response Wrappers ---

// Response wraps a successful response with data.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}
