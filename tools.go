//go:build tools

package tools

// This file tracks versions of CLI tool dependencies.
// It is not compiled into the binary.
//
// - github.com/pressly/goose/v3/cmd/goose (see the tool block in go.mod)
// - github.com/matryer/moq generates the *_mock_test.go files:
//   go run github.com/matryer/moq@latest -out <name>_mock_test.go -pkg <pkg> . <iface>
