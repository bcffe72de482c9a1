// Package codeblock extracts fenced code blocks from generated answers
// and resolves the file each block targets via its first-line marker.
package codeblock
