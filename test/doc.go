// Package test holds the docker backed integration tests, run them with
// `go test -tags integration_test ./test/...`.
package test
