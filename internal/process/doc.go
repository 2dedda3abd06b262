// Package process terminates the headless browser tree started for PDF export.
package process
