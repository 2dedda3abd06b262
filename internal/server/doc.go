// Package server serves the instruction page editor over HTTP.
//
// Routes:
//
//	GET  /          empty form with a live preview
//	POST /          form round-trip: add or remove rows, refresh the preview
//	POST /preview   rendered page for the submitted form
//	POST /download  rendered page as an attachment, HTML or PDF
//	GET  /healthz   liveness probe
//
// The form carries no script: every edit is a plain form submission, and the
// preview is the rendered page embedded in an iframe srcdoc.
package server
