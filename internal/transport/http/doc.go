// Package http implements the HTTP request handlers of the histviz service.
// Handlers stay thin: they decode and validate the request, call the summary
// or health service, and format the response.
//
// # Routes
//
//	GET  /dates                     date directories under the data directory
//	GET  /datasets?date=D           dataset files for a date (top level when D is empty)
//	GET  /columns/{dataset}?date=D  value columns of a dataset
//	POST /histogram                 binned summary of one column
//	POST /histogram/export          the same summary as a CSV attachment
//	POST /scatterplot               raw (time, value) series of one column
//	GET  /api/health[/ready|/live]  health probes
//	GET  /api/version               build information
//
// # Error Handling
//
// Failures are RFC 7807 Problem Details rendered by errors.ErrorHandler:
//
//	{
//	    "type": "/errors/dataset/column-not-found",
//	    "title": "Not Found",
//	    "status": 404,
//	    "detail": "Column \"temp\" not found",
//	    "field": "element",
//	    "instance": "/histogram"
//	}
//
// An empty result is not a failure. It is answered with HTTP 200 and a body
// of the form {"error": "Filtered dataframe is empty"}, which the web client
// checks for before drawing a chart.
package http
