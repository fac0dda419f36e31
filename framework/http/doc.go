// Package http provides Laravel-compatible request and response helpers.
//
// # Request
//
// Request wraps *http.Request with a fluent API mirroring Laravel's
// Illuminate\Http\Request.
//
//	req := gohttp.NewRequest(r).WithMaxBodyBytes(1 << 20)
//
//	// Ordered validation payload from a JSON body
//	payload, err := req.Payload()
//
//	// Query string, route params, headers
//	page  := req.Query("page", "1")
//	name  := req.RouteParam("name")
//	token := req.BearerToken()
//
//	req.IsJSON()   // Accept: application/json OR Content-Type: application/json
//	req.Method()   // "GET", "POST", ...
//	req.Path()     // "/api/validate"
//
// # Response
//
// Response wraps http.ResponseWriter with helpers matching Laravel's
// response() helper and JsonResponse.
//
//	res := gohttp.NewResponse(w)
//
//	res.JSON(200, data)           // raw JSON with status
//	res.Success(data)             // 200 {"data": ...}
//	res.Error(413, "too big")     // {"message": "too big"}
//	res.NotFound()                // 404 {"message": "Not found."}
//	res.ServerError()             // 500 {"message": "Server Error."}
//
//	// Validation outcome
//	res.Validated(result)         // 200 {"status": true}
//	                              // 422 {"status": false, "message": "...", "errors": {"field": ["msg"]}}
package http
