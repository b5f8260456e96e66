// Package pb holds the generated bindings for runner.proto, the contract
// between lecternd and the model-runner sidecar.
//
// Regenerate after editing runner.proto:
//
//	go generate ./pkg/pb
//
// Requires protoc with protoc-gen-go and protoc-gen-go-grpc on PATH.
package pb

//go:generate protoc --go_out=. --go_opt=paths=source_relative --go-grpc_out=. --go-grpc_opt=paths=source_relative runner.proto
